package booking

import "github.com/yomiyu15/Workingspacebackend/internal/domain"

type CreateBookingRequest struct {
	UserName      string      `json:"user_name" validate:"required"`
	Email         string      `json:"email" validate:"required,email"`
	Phone         string      `json:"phone"`
	WorkspaceID   int64       `json:"workspace_id" validate:"required,gt=0"`
	StartDate     string      `json:"start_date" validate:"required"`
	EndDate       string      `json:"end_date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	DurationUnit  string      `json:"duration_unit"`
	PaymentStatus string      `json:"payment_status"`
	Source        string      `json:"source"`
	Addons        domain.Tags `json:"addons"`
	Notes         string      `json:"notes"`
}

// UpdateBookingRequest is the admin review payload. Absent fields are left untouched.
type UpdateBookingRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
	Notes         *string `json:"notes"`
}

type AvailabilityQuery struct {
	WorkspaceID int64  `form:"workspace_id"`
	Date        string `form:"date"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	Duration    string `form:"duration"`
}
