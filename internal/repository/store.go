package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle.
// Inside Transaction every repository is bound to the same transaction.
type Store struct {
	db *gorm.DB

	Users      *UserRepository
	Admins     *AdminRepository
	Locations  *LocationRepository
	Workspaces *WorkspaceRepository
	Bookings   *BookingRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Admins:     NewAdminRepository(db),
		Locations:  NewLocationRepository(db),
		Workspaces: NewWorkspaceRepository(db),
		Bookings:   NewBookingRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn in a transaction; fn's error or a panic rolls it back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
