package booking

import (
	"context"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

// UserDirectory finds and creates customer accounts keyed by email.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// WorkspaceCatalog reads workspace pricing and inventory.
type WorkspaceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Workspace, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Workspace, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	CountActiveOverlapping(ctx context.Context, workspaceID int64, start, end domain.Date) (int64, error)
	Update(ctx context.Context, id int64, u domain.BookingUpdate) error
	Delete(ctx context.Context, id int64) error
	GetView(ctx context.Context, id int64) (*domain.BookingView, error)
	ListViews(ctx context.Context) ([]domain.BookingView, error)
}

// Store hands out collaborators bound to one database handle. Inside
// Transaction they are all bound to the same transaction.
type Store interface {
	Users() UserDirectory
	Workspaces() WorkspaceCatalog
	Bookings() BookingStore
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// Notifier delivers advisory messages about review outcomes.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, to string, b domain.BookingView) error
	NotifyBookingCancelled(ctx context.Context, to string, b domain.BookingView, reason string) error
}
