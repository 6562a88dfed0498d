package booking

import (
	"context"

	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

type repoStore struct {
	s *repository.Store
}

func NewStore(s *repository.Store) Store {
	return &repoStore{s: s}
}

func (r *repoStore) Users() UserDirectory         { return r.s.Users }
func (r *repoStore) Workspaces() WorkspaceCatalog { return r.s.Workspaces }
func (r *repoStore) Bookings() BookingStore       { return r.s.Bookings }

func (r *repoStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return r.s.Transaction(ctx, func(tx *repository.Store) error {
		return fn(&repoStore{s: tx})
	})
}
