package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yomiyu15/Workingspacebackend/internal/database"
	"github.com/yomiyu15/Workingspacebackend/internal/domain"
)

func setupTestDB(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name), database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, AutoMigrate(db))
	return NewStore(db)
}

func ptr[T any](v T) *T { return &v }

func seedBooking(t *testing.T, s *Store, userID, workspaceID int64, start, end string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	sd, err := domain.ParseDate(start)
	require.NoError(t, err)
	ed, err := domain.ParseDate(end)
	require.NoError(t, err)

	b := &domain.Booking{
		UserID:        userID,
		WorkspaceID:   workspaceID,
		StartDate:     sd,
		EndDate:       ed,
		DurationUnit:  domain.DurationDay,
		TotalPrice:    100,
		Currency:      "ETB",
		Status:        status,
		PaymentStatus: domain.DefaultPaymentStatus,
		Source:        domain.DefaultBookingSource,
	}
	require.NoError(t, s.Bookings.Create(context.Background(), b))
	return b
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := &domain.User{Email: " Abebe@Example.com ", PasswordHash: "x", FirstName: "Abebe"}
	require.NoError(t, s.Users.Create(ctx, u))
	assert.Equal(t, "abebe@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)

	err := s.Users.Create(ctx, &domain.User{Email: "abebe@example.com", PasswordHash: "y"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), err.Error())

	got, err := s.Users.GetByEmail(ctx, "ABEBE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DuplicateInsideTransactionKeepsTxUsable(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, s.Users.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "x"}))

	err := s.Transaction(ctx, func(tx *Store) error {
		err := tx.Users.Create(ctx, &domain.User{Email: "dup@example.com", PasswordHash: "y"})
		if !IsUniqueViolation(err) {
			return fmt.Errorf("expected unique violation, got %v", err)
		}
		_, err = tx.Users.GetByEmail(ctx, "dup@example.com")
		return err
	})
	assert.NoError(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestWorkspaceRepository_JoinsLocation(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	loc := &domain.Location{Name: "CMC Tech Park", City: "Addis Ababa", SupportPhone: "+251911000003"}
	require.NoError(t, s.Locations.EnsureByName(ctx, loc))

	active := &domain.Workspace{Name: "Desk", PriceDay: ptr(100.0), LocationID: &loc.ID, IsActive: true, Amenities: domain.Tags{"Wi-Fi"}}
	require.NoError(t, s.Workspaces.Create(ctx, active))
	inactive := &domain.Workspace{Name: "Closed Room", IsActive: false}
	require.NoError(t, s.Workspaces.Create(ctx, inactive))

	got, err := s.Workspaces.GetByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWorkspaceCategory, got.Category)
	assert.Equal(t, domain.DefaultLeadTime, got.LeadTime)
	assert.Equal(t, 1, got.InventoryCount)
	assert.Equal(t, domain.Tags{"Wi-Fi"}, got.Amenities)
	require.NotNil(t, got.Location)
	assert.Equal(t, "CMC Tech Park", got.Location.Name)
	assert.Equal(t, "+251911000003", got.Location.SupportPhone)

	all, err := s.Workspaces.List(ctx, WorkspaceFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, inactive.ID, all[0].ID, "newest first")
	assert.False(t, all[0].IsActive)
	assert.True(t, all[1].IsActive)
	assert.Nil(t, all[0].Location)

	onlyActive, err := s.Workspaces.List(ctx, WorkspaceFilters{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)

	_, err = s.Workspaces.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Workspaces.GetForUpdate(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkspaceRepository_UpdateAndDelete(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	loc := &domain.Location{Name: "Bole Innovation Hub", City: "Addis Ababa"}
	require.NoError(t, s.Locations.EnsureByName(ctx, loc))

	w := &domain.Workspace{Name: "Desk", PriceDay: ptr(100.0), InventoryCount: 2, IsActive: true, IsFeatured: true}
	require.NoError(t, s.Workspaces.Create(ctx, w))

	w.Name = "Quiet Desk"
	w.PriceDay = nil
	w.PriceMonth = ptr(2000.0)
	w.InventoryCount = 5
	w.LocationID = &loc.ID
	w.IsActive = false
	w.IsFeatured = false
	require.NoError(t, s.Workspaces.Update(ctx, w))

	got, err := s.Workspaces.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quiet Desk", got.Name)
	assert.Nil(t, got.PriceDay)
	assert.Equal(t, 2000.0, *got.PriceMonth)
	assert.Equal(t, 5, got.InventoryCount)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsFeatured)
	require.NotNil(t, got.Location)
	assert.Equal(t, loc.Name, got.Location.Name)
	assert.Equal(t, w.CreatedAt.Unix(), got.CreatedAt.Unix(), "created_at untouched")

	assert.ErrorIs(t, s.Workspaces.Update(ctx, &domain.Workspace{ID: 999, Name: "Ghost"}), ErrNotFound)

	u := &domain.User{Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, s.Users.Create(ctx, u))
	b := seedBooking(t, s, u.ID, w.ID, "2025-03-10", "2025-03-10", domain.BookingCancelled)

	assert.ErrorIs(t, s.Workspaces.Delete(ctx, w.ID), ErrInUse)

	require.NoError(t, s.Bookings.Delete(ctx, b.ID))
	assert.ErrorIs(t, s.Bookings.Delete(ctx, b.ID), ErrNotFound)

	require.NoError(t, s.Workspaces.Delete(ctx, w.ID))
	_, err = s.Workspaces.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Workspaces.Delete(ctx, w.ID), ErrNotFound)
}

func TestLocationRepository_EnsureByNameIsIdempotent(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	first := &domain.Location{Name: "Sarbet Creative Campus", City: "Addis Ababa"}
	require.NoError(t, s.Locations.EnsureByName(ctx, first))
	again := &domain.Location{Name: "Sarbet Creative Campus", City: "Elsewhere"}
	require.NoError(t, s.Locations.EnsureByName(ctx, again))

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "Addis Ababa", again.City)

	n, err := s.Locations.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBookingRepository_CountActiveOverlapping(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, s.Users.Create(ctx, u))
	w := &domain.Workspace{Name: "Desk", IsActive: true}
	require.NoError(t, s.Workspaces.Create(ctx, w))
	other := &domain.Workspace{Name: "Other", IsActive: true}
	require.NoError(t, s.Workspaces.Create(ctx, other))

	seedBooking(t, s, u.ID, w.ID, "2025-03-10", "2025-03-12", domain.BookingPending)
	seedBooking(t, s, u.ID, w.ID, "2025-03-12", "2025-03-12", domain.BookingConfirmed)
	seedBooking(t, s, u.ID, w.ID, "2025-03-11", "2025-03-11", domain.BookingCancelled)
	seedBooking(t, s, u.ID, w.ID, "2025-03-11", "2025-03-11", domain.BookingRejected)
	seedBooking(t, s, u.ID, other.ID, "2025-03-11", "2025-03-11", domain.BookingPending)

	cases := []struct {
		start, end int
		want       int64
	}{
		{10, 10, 1},
		{11, 11, 1},
		{12, 12, 2},
		{12, 14, 2},
		{13, 14, 0},
		{1, 9, 0},
		{1, 31, 2},
	}
	for _, tc := range cases {
		n, err := s.Bookings.CountActiveOverlapping(ctx, w.ID,
			domain.NewDate(2025, time.March, tc.start), domain.NewDate(2025, time.March, tc.end))
		require.NoError(t, err)
		assert.Equal(t, tc.want, n, "range %d..%d", tc.start, tc.end)
	}
}

func TestBookingRepository_UpdateAndViews(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	u := &domain.User{Email: "a@example.com", PasswordHash: "x", FirstName: "Abebe", LastName: ptr("Kebede"), Phone: ptr("+251")}
	require.NoError(t, s.Users.Create(ctx, u))
	w := &domain.Workspace{Name: "Desk", Category: "hot-desk", IsActive: true}
	require.NoError(t, s.Workspaces.Create(ctx, w))
	b := seedBooking(t, s, u.ID, w.ID, "2025-03-10", "2025-03-12", domain.BookingPending)

	status := domain.BookingConfirmed
	require.NoError(t, s.Bookings.Update(ctx, b.ID, domain.BookingUpdate{Status: &status, Notes: ptr("ok")}))

	locked, err := s.Bookings.GetForUpdate(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, locked.Status)
	assert.Equal(t, "2025-03-10", locked.StartDate.String())
	assert.Equal(t, "2025-03-12", locked.EndDate.String())

	view, err := s.Bookings.GetView(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abebe Kebede", view.UserName)
	assert.Equal(t, "a@example.com", view.Email)
	require.NotNil(t, view.Workspace)
	assert.Equal(t, "hot-desk", view.Workspace.Category)
	assert.Nil(t, view.Workspace.LocationName)
	require.NotNil(t, view.Notes)
	assert.Equal(t, "ok", *view.Notes)

	assert.ErrorIs(t, s.Bookings.Update(ctx, 999, domain.BookingUpdate{Status: &status}), ErrNotFound)
	_, err = s.Bookings.GetView(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	views, err := s.Bookings.ListViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Users.Create(ctx, &domain.User{Email: "gone@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Users.GetByEmail(ctx, "gone@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminRepository(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	a := &domain.Admin{Username: " root ", PasswordHash: "hash"}
	require.NoError(t, s.Admins.Create(ctx, a))
	assert.Equal(t, domain.RoleAdmin, a.Role)

	got, err := s.Admins.GetByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = s.Admins.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
