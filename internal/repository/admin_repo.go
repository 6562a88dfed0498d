package repository

import (
	"context"
	"strings"
	"time"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

type adminModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:128;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password;not null"`
	Role         string    `gorm:"column:role;size:32;not null;default:admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (adminModel) TableName() string { return "admins" }

func toDomainAdmin(m adminModel) *domain.Admin {
	return &domain.Admin{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var m adminModel
	tx := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&m)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainAdmin(m), nil
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	role := string(a.Role)
	if role == "" {
		role = string(domain.RoleAdmin)
	}
	m := adminModel{
		Username:     strings.TrimSpace(a.Username),
		PasswordHash: a.PasswordHash,
		Role:         role,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*a = *toDomainAdmin(m)
	return nil
}
