package repository

import (
	"context"
	"time"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorkspaceFilters struct {
	OnlyActive bool
	Limit      int
}

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

type workspaceModel struct {
	ID             int64       `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string      `gorm:"column:name;size:255;not null"`
	Category       string      `gorm:"column:category;size:64;not null;default:private"`
	Description    string      `gorm:"column:description;type:text"`
	Capacity       *int        `gorm:"column:capacity"`
	PriceHour      *float64    `gorm:"column:price_hour"`
	PriceDay       *float64    `gorm:"column:price_day"`
	PriceMonth     *float64    `gorm:"column:price_month"`
	InventoryCount int         `gorm:"column:inventory_count;not null;default:1;check:inventory_count >= 1"`
	LeadTime       string      `gorm:"column:lead_time;size:128"`
	LocationID     *int64      `gorm:"column:location_id;index"`
	Amenities      domain.Tags `gorm:"column:amenities;type:text"`
	Tags           domain.Tags `gorm:"column:tags;type:text"`
	Images         domain.Tags `gorm:"column:images;type:text"`
	IsFeatured     bool        `gorm:"column:is_featured;not null;default:false"`
	IsActive       bool        `gorm:"column:is_active;not null"`
	CreatedAt      time.Time   `gorm:"column:created_at"`
	UpdatedAt      time.Time   `gorm:"column:updated_at"`
}

func (workspaceModel) TableName() string { return "workspaces" }

// workspaceRow is a workspace joined with its location columns.
type workspaceRow struct {
	Workspace workspaceModel `gorm:"embedded"`

	LocationName         *string `gorm:"column:location_name"`
	LocationCity         *string `gorm:"column:location_city"`
	LocationAddress      *string `gorm:"column:location_address"`
	LocationSupportPhone *string `gorm:"column:location_support_phone"`
}

const workspaceSelect = `w.*,
	l.name AS location_name,
	l.city AS location_city,
	l.address AS location_address,
	l.support_phone AS location_support_phone`

func toDomainWorkspace(m workspaceModel) *domain.Workspace {
	return &domain.Workspace{
		ID:             m.ID,
		Name:           m.Name,
		Category:       m.Category,
		Description:    m.Description,
		Capacity:       m.Capacity,
		PriceHour:      m.PriceHour,
		PriceDay:       m.PriceDay,
		PriceMonth:     m.PriceMonth,
		InventoryCount: m.InventoryCount,
		LeadTime:       m.LeadTime,
		LocationID:     m.LocationID,
		Amenities:      m.Amenities,
		Tags:           m.Tags,
		Images:         m.Images,
		IsFeatured:     m.IsFeatured,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainWorkspaceRow(r workspaceRow) *domain.Workspace {
	w := toDomainWorkspace(r.Workspace)
	if w.LocationID != nil && r.LocationName != nil {
		w.Location = &domain.LocationSummary{
			ID:           *w.LocationID,
			Name:         *r.LocationName,
			City:         deref(r.LocationCity),
			Address:      deref(r.LocationAddress),
			SupportPhone: deref(r.LocationSupportPhone),
		}
	}
	return w
}

func toWorkspaceModel(w *domain.Workspace) workspaceModel {
	category := w.Category
	if category == "" {
		category = domain.DefaultWorkspaceCategory
	}
	leadTime := w.LeadTime
	if leadTime == "" {
		leadTime = domain.DefaultLeadTime
	}

	return workspaceModel{
		ID:             w.ID,
		Name:           w.Name,
		Category:       category,
		Description:    w.Description,
		Capacity:       w.Capacity,
		PriceHour:      w.PriceHour,
		PriceDay:       w.PriceDay,
		PriceMonth:     w.PriceMonth,
		InventoryCount: w.Inventory(),
		LeadTime:       leadTime,
		LocationID:     w.LocationID,
		Amenities:      w.Amenities,
		Tags:           w.Tags,
		Images:         w.Images,
		IsFeatured:     w.IsFeatured,
		IsActive:       w.IsActive,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *domain.Workspace) error {
	m := toWorkspaceModel(w)
	// No schema default on is_active: gorm skips zero-valued fields that carry one.
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*w = *toDomainWorkspace(m)
	return nil
}

// Update replaces every editable column of the workspace.
func (r *WorkspaceRepository) Update(ctx context.Context, w *domain.Workspace) error {
	m := toWorkspaceModel(w)
	m.UpdatedAt = time.Now().UTC()

	tx := r.db.WithContext(ctx).
		Model(&workspaceModel{}).
		Where("id = ?", w.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a workspace that no booking references. Bookings keep
// their workspace id for history, so referenced rows are refused with ErrInUse.
func (r *WorkspaceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&bookingModel{}).Where("workspace_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrInUse
		}

		res := tx.Where("id = ?", id).Delete(&workspaceModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id int64) (*domain.Workspace, error) {
	var rows []workspaceRow
	err := r.db.WithContext(ctx).
		Table("workspaces w").
		Select(workspaceSelect).
		Joins("LEFT JOIN locations l ON l.id = w.location_id").
		Where("w.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toDomainWorkspaceRow(rows[0]), nil
}

// GetForUpdate reads the workspace row and locks it until the enclosing
// transaction ends. Engines without row locks (SQLite) ignore the clause.
func (r *WorkspaceRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Workspace, error) {
	var m workspaceModel
	tx := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	return toDomainWorkspace(m), nil
}

func (r *WorkspaceRepository) List(ctx context.Context, f WorkspaceFilters) ([]domain.Workspace, error) {
	q := r.db.WithContext(ctx).
		Table("workspaces w").
		Select(workspaceSelect).
		Joins("LEFT JOIN locations l ON l.id = w.location_id")

	if f.OnlyActive {
		q = q.Where("w.is_active = ?", true)
	}

	q = q.Order("w.created_at DESC").Order("w.id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []workspaceRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Workspace, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toDomainWorkspaceRow(row))
	}
	return out, nil
}
