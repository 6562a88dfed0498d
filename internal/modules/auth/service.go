package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

type Service struct {
	admins AdminRepository
	tokens TokenIssuer
}

func NewService(admins AdminRepository, tokens TokenIssuer) *Service {
	return &Service{admins: admins, tokens: tokens}
}

// Login checks the admin credentials and issues a bearer token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	username = strings.TrimSpace(username)

	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		logrus.WithField("username", username).Warn("[AUTH] admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(admin.ID, admin.Username, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logrus.WithField("admin_id", admin.ID).Info("[AUTH] admin logged in")
	return &LoginResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Role:     string(admin.Role),
		Token:    token,
	}, nil
}
