package catalog

import "github.com/yomiyu15/Workingspacebackend/internal/domain"

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListWorkspacesQuery mirrors GET /workspaces query parameters.
type ListWorkspacesQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
}

func (q ListWorkspacesQuery) onlyActive() bool {
	return q.Status == "active"
}

func (q ListWorkspacesQuery) limit() int {
	switch {
	case q.Limit <= 0:
		return defaultListLimit
	case q.Limit > maxListLimit:
		return maxListLimit
	default:
		return q.Limit
	}
}

// WorkspaceRequest is the admin create/replace payload. PUT replaces every
// field, so omitted optional fields are cleared.
type WorkspaceRequest struct {
	Name           string      `json:"name" validate:"required,max=255"`
	Category       string      `json:"category" validate:"max=64"`
	Description    string      `json:"description"`
	Capacity       *int        `json:"capacity" validate:"omitempty,min=1"`
	PriceHour      *float64    `json:"price_hour" validate:"omitempty,min=0"`
	PriceDay       *float64    `json:"price_day" validate:"omitempty,min=0"`
	PriceMonth     *float64    `json:"price_month" validate:"omitempty,min=0"`
	InventoryCount int         `json:"inventory_count" validate:"min=0"`
	LeadTime       string      `json:"lead_time" validate:"max=128"`
	LocationID     *int64      `json:"location_id" validate:"omitempty,min=1"`
	Amenities      domain.Tags `json:"amenities"`
	Tags           domain.Tags `json:"tags"`
	Images         domain.Tags `json:"images"`
	IsFeatured     bool        `json:"is_featured"`
	IsActive       *bool       `json:"is_active"`
}

// toWorkspace builds the stored shape. New and replaced workspaces are
// active unless the payload says otherwise.
func (r WorkspaceRequest) toWorkspace(id int64) *domain.Workspace {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	w := &domain.Workspace{
		ID:          id,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Capacity:    r.Capacity,
		PriceHour:   r.PriceHour,
		PriceDay:    r.PriceDay,
		PriceMonth:  r.PriceMonth,
		LeadTime:    r.LeadTime,
		LocationID:  r.LocationID,
		Amenities:   r.Amenities,
		Tags:        r.Tags,
		Images:      r.Images,
		IsFeatured:  r.IsFeatured,
		IsActive:    active,
	}
	w.InventoryCount = w.Inventory()
	return w
}
