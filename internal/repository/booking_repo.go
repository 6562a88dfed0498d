package repository

import (
	"context"
	"time"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64       `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64       `gorm:"column:user_id;not null;index"`
	WorkspaceID   int64       `gorm:"column:workspace_id;not null;index:idx_bookings_workspace_range,priority:1"`
	StartDate     string      `gorm:"column:start_date;type:date;not null;index:idx_bookings_workspace_range,priority:2"`
	EndDate       string      `gorm:"column:end_date;type:date;not null;index:idx_bookings_workspace_range,priority:3"`
	StartTime     *string     `gorm:"column:start_time;size:8"`
	EndTime       *string     `gorm:"column:end_time;size:8"`
	DurationUnit  string      `gorm:"column:duration_unit;size:16;not null"`
	TotalPrice    float64     `gorm:"column:total_price;not null"`
	Currency      string      `gorm:"column:currency;size:8;not null"`
	Status        string      `gorm:"column:status;size:32;not null;index"`
	PaymentStatus string      `gorm:"column:payment_status;size:32;not null"`
	Source        string      `gorm:"column:source;size:64;not null"`
	Addons        domain.Tags `gorm:"column:addons;type:text"`
	Notes         *string     `gorm:"column:notes;type:text"`
	CreatedAt     time.Time   `gorm:"column:created_at;index"`
	UpdatedAt     time.Time   `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

// bookingViewRow is a booking joined with its user, workspace and location.
type bookingViewRow struct {
	Booking bookingModel `gorm:"embedded"`

	UserFirstName     *string `gorm:"column:user_first_name"`
	UserLastName      *string `gorm:"column:user_last_name"`
	UserEmail         *string `gorm:"column:user_email"`
	UserPhone         *string `gorm:"column:user_phone"`
	WorkspaceName     *string `gorm:"column:workspace_name"`
	WorkspaceCategory *string `gorm:"column:workspace_category"`
	WorkspaceLeadTime *string `gorm:"column:workspace_lead_time"`
	LocationName      *string `gorm:"column:location_name"`
	LocationCity      *string `gorm:"column:location_city"`
}

const bookingViewSelect = `b.*,
	u.first_name AS user_first_name,
	u.last_name AS user_last_name,
	u.email AS user_email,
	u.phone AS user_phone,
	w.name AS workspace_name,
	w.category AS workspace_category,
	w.lead_time AS workspace_lead_time,
	l.name AS location_name,
	l.city AS location_city`

// Dates come back as YYYY-MM-DD text or, from drivers that parse date
// columns, as an RFC3339 timestamp; ParseDate accepts both.
func toDomainBooking(m bookingModel) *domain.Booking {
	start, _ := domain.ParseDate(m.StartDate)
	end, _ := domain.ParseDate(m.EndDate)

	return &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		WorkspaceID:   m.WorkspaceID,
		StartDate:     start,
		EndDate:       end,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		DurationUnit:  domain.DurationUnit(m.DurationUnit),
		TotalPrice:    m.TotalPrice,
		Currency:      m.Currency,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: m.PaymentStatus,
		Source:        m.Source,
		Addons:        m.Addons,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	addons := b.Addons
	if addons == nil {
		addons = domain.Tags{}
	}

	return bookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		WorkspaceID:   b.WorkspaceID,
		StartDate:     b.StartDate.String(),
		EndDate:       b.EndDate.String(),
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		DurationUnit:  string(b.DurationUnit),
		TotalPrice:    b.TotalPrice,
		Currency:      b.Currency,
		Status:        string(b.Status),
		PaymentStatus: b.PaymentStatus,
		Source:        b.Source,
		Addons:        addons,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toDomainBookingView(r bookingViewRow) *domain.BookingView {
	v := &domain.BookingView{
		Booking: *toDomainBooking(r.Booking),
		Email:   deref(r.UserEmail),
		Phone:   r.UserPhone,
	}

	u := domain.User{Email: v.Email, FirstName: deref(r.UserFirstName), LastName: r.UserLastName}
	v.UserName = u.DisplayName()

	if r.WorkspaceName != nil {
		v.Workspace = &domain.BookingWorkspace{
			ID:           r.Booking.WorkspaceID,
			Name:         *r.WorkspaceName,
			Category:     deref(r.WorkspaceCategory),
			LeadTime:     deref(r.WorkspaceLeadTime),
			LocationName: r.LocationName,
			LocationCity: r.LocationCity,
		}
	}
	return v
}

func (r *BookingRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings b").
		Select(bookingViewSelect).
		Joins("LEFT JOIN users u ON u.id = b.user_id").
		Joins("LEFT JOIN workspaces w ON w.id = b.workspace_id").
		Joins("LEFT JOIN locations l ON l.id = w.location_id")
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainBooking(m), nil
}

// GetForUpdate reads the booking row and locks it until the enclosing transaction ends.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainBooking(m), nil
}

// CountActiveOverlapping counts pending/confirmed bookings of the workspace
// whose inclusive range shares at least one day with [start, end].
func (r *BookingRepository) CountActiveOverlapping(ctx context.Context, workspaceID int64, start, end domain.Date) (int64, error) {
	statuses := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		statuses = append(statuses, string(s))
	}

	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("workspace_id = ?", workspaceID).
		Where("status IN ?", statuses).
		Where("start_date <= ? AND end_date >= ?", end.String(), start.String()).
		Count(&cnt).Error
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

// Update applies the non-nil fields of u and bumps updated_at.
func (r *BookingRepository) Update(ctx context.Context, id int64, u domain.BookingUpdate) error {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.PaymentStatus != nil {
		fields["payment_status"] = *u.PaymentStatus
	}
	if u.Notes != nil {
		fields["notes"] = *u.Notes
	}

	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&bookingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) GetView(ctx context.Context, id int64) (*domain.BookingView, error) {
	var rows []bookingViewRow
	if err := r.viewQuery(ctx).Where("b.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomainBookingView(rows[0]), nil
}

// ListViews returns every booking, newest first.
func (r *BookingRepository) ListViews(ctx context.Context) ([]domain.BookingView, error) {
	var rows []bookingViewRow
	err := r.viewQuery(ctx).
		Order("b.created_at DESC").
		Order("b.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainBookingView(row))
	}
	return out, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&n).Error
	return n, err
}
