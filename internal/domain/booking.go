package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRejected  BookingStatus = "rejected"
)

var allStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingRejected}

// ActiveStatuses are the statuses that occupy workspace inventory.
var ActiveStatuses = func() []BookingStatus {
	var out []BookingStatus
	for _, s := range allStatuses {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out
}()

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled, BookingRejected},
	BookingConfirmed: {BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// CanTransitionTo reports whether an admin review may move a booking from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type DurationUnit string

const (
	DurationDay   DurationUnit = "day"
	DurationWeek  DurationUnit = "week"
	DurationMonth DurationUnit = "month"
)

// NormalizeDuration maps free-form input onto a billing unit, falling back to day.
func NormalizeDuration(v string) DurationUnit {
	switch DurationUnit(strings.ToLower(strings.TrimSpace(v))) {
	case DurationWeek:
		return DurationWeek
	case DurationMonth:
		return DurationMonth
	default:
		return DurationDay
	}
}

const (
	DefaultPaymentStatus = "manual"
	DefaultBookingSource = "website"
)

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	WorkspaceID   int64         `json:"workspace_id"`
	StartDate     Date          `json:"start_date"`
	EndDate       Date          `json:"end_date"`
	StartTime     *string       `json:"start_time"`
	EndTime       *string       `json:"end_time"`
	DurationUnit  DurationUnit  `json:"duration_unit"`
	TotalPrice    float64       `json:"total_price"`
	Currency      string        `json:"currency"`
	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	Source        string        `json:"source"`
	Addons        Tags          `json:"addons"`
	Notes         *string       `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// BookingWorkspace is the workspace summary embedded in a hydrated booking.
type BookingWorkspace struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	LeadTime     string  `json:"leadTime"`
	LocationName *string `json:"locationName"`
	LocationCity *string `json:"locationCity"`
}

// BookingView is a booking joined with its customer and workspace.
type BookingView struct {
	Booking

	UserName  string            `json:"user_name"`
	Email     string            `json:"email"`
	Phone     *string           `json:"phone"`
	Workspace *BookingWorkspace `json:"workspace"`
}

// BookingUpdate is a partial admin review update. Nil fields are left untouched.
type BookingUpdate struct {
	Status        *BookingStatus
	PaymentStatus *string
	Notes         *string
}

func (u BookingUpdate) Empty() bool {
	return u.Status == nil && u.PaymentStatus == nil && u.Notes == nil
}
