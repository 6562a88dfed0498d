package booking

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/yomiyu15/Workingspacebackend/internal/database"
	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

func setupTestStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_%s?mode=memory&cache=shared", dsnReplacer.Replace(t.Name()))
	db, err := database.Connect(dsn, database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, repository.AutoMigrate(db))
	return repository.NewStore(db)
}

func setupTestService(t *testing.T, notifs Notifier) (*Service, *repository.Store) {
	t.Helper()
	store := setupTestStore(t)
	svc := NewService(NewStore(store), notifs, Options{Currency: "ETB"})
	t.Cleanup(svc.Wait)
	return svc, store
}

func ptr[T any](v T) *T { return &v }

func seedWorkspace(t *testing.T, store *repository.Store, w domain.Workspace) *domain.Workspace {
	t.Helper()
	loc := &domain.Location{Name: "Bole Innovation Hub", City: "Addis Ababa"}
	require.NoError(t, store.Locations.EnsureByName(context.Background(), loc))

	if w.Name == "" {
		w.Name = "Hot Desk"
	}
	w.IsActive = true
	w.LocationID = &loc.ID
	require.NoError(t, store.Workspaces.Create(context.Background(), &w))
	return &w
}

func bookingRequest(workspaceID int64, start, end string) CreateBookingRequest {
	return CreateBookingRequest{
		UserName:    "Abebe Kebede",
		Email:       "abebe@example.com",
		Phone:       "+251911223344",
		WorkspaceID: workspaceID,
		StartDate:   start,
		EndDate:     end,
	}
}

func countBookings(t *testing.T, store *repository.Store) int64 {
	t.Helper()
	n, err := store.Bookings.Count(context.Background())
	require.NoError(t, err)
	return n
}

func countUsers(t *testing.T, store *repository.Store, email string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, store.DB().Table("users").Where("email = ?", email).Count(&n).Error)
	return n
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBookingConfirmed(ctx context.Context, to string, b domain.BookingView) error {
	args := m.Called(ctx, to, b)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBookingCancelled(ctx context.Context, to string, b domain.BookingView, reason string) error {
	args := m.Called(ctx, to, b, reason)
	return args.Error(0)
}
