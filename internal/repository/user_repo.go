package repository

import (
	"context"
	"strings"
	"time"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;size:255"`
	LastName     *string   `gorm:"column:last_name;size:255"`
	Phone        *string   `gorm:"column:phone;size:64"`
	Role         string    `gorm:"column:role;size:32;not null;default:user"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Phone:        m.Phone,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	role := string(u.Role)
	if role == "" {
		role = string(domain.RoleUser)
	}

	return userModel{
		ID:           u.ID,
		Email:        normalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Create inserts u inside a savepoint, so a unique violation leaves an
// enclosing transaction usable for a follow-up lookup.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainUser(m), nil
}
