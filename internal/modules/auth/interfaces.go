package auth

import (
	"context"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

// AdminRepository is the subset of admin storage the login flow reads.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type TokenIssuer interface {
	GenerateToken(adminID int64, username, role string) (string, error)
}
