package domain

import "time"

const (
	DefaultWorkspaceCategory = "private"
	DefaultLeadTime          = "Instant confirmation"
)

type Workspace struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Capacity       *int      `json:"capacity"`
	PriceHour      *float64  `json:"price_hour"`
	PriceDay       *float64  `json:"price_day"`
	PriceMonth     *float64  `json:"price_month"`
	InventoryCount int       `json:"inventory_count"`
	LeadTime       string    `json:"lead_time"`
	LocationID     *int64    `json:"location_id"`
	Amenities      Tags      `json:"amenities"`
	Tags           Tags      `json:"tags"`
	Images         Tags      `json:"images"`
	IsFeatured     bool      `json:"is_featured"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Location *LocationSummary `json:"location"`
}

// Inventory is the number of interchangeable units; unset or zero means one.
func (w *Workspace) Inventory() int {
	if w.InventoryCount < 1 {
		return 1
	}
	return w.InventoryCount
}

type Location struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Timezone     string    `json:"timezone"`
	SupportPhone string    `json:"support_phone"`
	GeoLat       *float64  `json:"geo_lat"`
	GeoLng       *float64  `json:"geo_lng"`
	CreatedAt    time.Time `json:"-"`
}

type LocationSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	SupportPhone string `json:"support_phone"`
}

// Availability is the read-only capacity report for a workspace and date range.
type Availability struct {
	WorkspaceID    int64  `json:"workspace_id"`
	Workspace      string `json:"workspace"`
	InventoryCount int    `json:"inventory_count"`
	ActiveCount    int    `json:"active_count"`
	Remaining      int    `json:"remaining"`
	LeadTime       string `json:"lead_time"`
	RequestedStart Date   `json:"requested_start"`
	RequestedEnd   Date   `json:"requested_end"`

	DurationUnit   DurationUnit `json:"duration_unit"`
	EstimatedPrice float64      `json:"estimated_price"`
	Currency       string       `json:"currency"`
}
