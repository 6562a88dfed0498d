package repository

import (
	"context"
	"time"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

type locationModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;size:255;not null;uniqueIndex"`
	City         string    `gorm:"column:city;size:128"`
	Address      string    `gorm:"column:address;size:255"`
	Timezone     string    `gorm:"column:timezone;size:64"`
	SupportPhone string    `gorm:"column:support_phone;size:64"`
	GeoLat       *float64  `gorm:"column:geo_lat"`
	GeoLng       *float64  `gorm:"column:geo_lng"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (locationModel) TableName() string { return "locations" }

func toDomainLocation(m locationModel) domain.Location {
	return domain.Location{
		ID:           m.ID,
		Name:         m.Name,
		City:         m.City,
		Address:      m.Address,
		Timezone:     m.Timezone,
		SupportPhone: m.SupportPhone,
		GeoLat:       m.GeoLat,
		GeoLng:       m.GeoLng,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *LocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	var rows []locationModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainLocation(m))
	}
	return out, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var m locationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, notFound(tx.Error)
	}
	l := toDomainLocation(m)
	return &l, nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&locationModel{}).Count(&n).Error
	return n, err
}

// EnsureByName inserts l unless a location with the same name exists, and returns the stored row.
func (r *LocationRepository) EnsureByName(ctx context.Context, l *domain.Location) error {
	m := locationModel{
		Name:         l.Name,
		City:         l.City,
		Address:      l.Address,
		Timezone:     l.Timezone,
		SupportPhone: l.SupportPhone,
		GeoLat:       l.GeoLat,
		GeoLng:       l.GeoLng,
	}
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", l.Name).First(&m).Error; err != nil {
		return notFound(err)
	}
	*l = toDomainLocation(m)
	return nil
}
