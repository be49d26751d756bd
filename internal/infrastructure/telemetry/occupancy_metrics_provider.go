package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOccupancyMetricsProvider implements OccupancyMetricsProvider using
// GORM queries against the rooms and properties tables.
type GormOccupancyMetricsProvider struct {
	db *gorm.DB
}

// NewGormOccupancyMetricsProvider creates a new GORM-based occupancy metrics provider.
func NewGormOccupancyMetricsProvider(db *gorm.DB) *GormOccupancyMetricsProvider {
	return &GormOccupancyMetricsProvider{db: db}
}

// GetOccupiedRoomsByProperty returns the occupied room count per property
// for the given owner.
func (p *GormOccupancyMetricsProvider) GetOccupiedRoomsByProperty(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		PropertyID uuid.UUID `gorm:"column:property_id"`
		Count      int64     `gorm:"column:count"`
	}

	err := p.db.WithContext(ctx).
		Table("rooms").
		Select("rooms.property_id AS property_id, COUNT(*) AS count").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("properties.owner_id = ? AND rooms.status = ?", ownerID, "occupied").
		Group("rooms.property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.PropertyID] = row.Count
	}

	return counts, nil
}

// GetVacantRoomCount returns the number of vacant rooms across all of the
// owner's properties.
func (p *GormOccupancyMetricsProvider) GetVacantRoomCount(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64

	err := p.db.WithContext(ctx).
		Table("rooms").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("properties.owner_id = ? AND rooms.status = ?", ownerID, "vacant").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GormOwnerProvider implements OwnerProvider using GORM. Only owners with an
// active subscription are collected; lapsed workspaces drop out of the gauge
// set on the next sweep.
type GormOwnerProvider struct {
	db *gorm.DB
}

// NewGormOwnerProvider creates a new GORM-based owner provider.
func NewGormOwnerProvider(db *gorm.DB) *GormOwnerProvider {
	return &GormOwnerProvider{db: db}
}

// GetActiveOwnerIDs returns the IDs of owners holding an active subscription.
func (p *GormOwnerProvider) GetActiveOwnerIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ownerIDs []uuid.UUID

	err := p.db.WithContext(ctx).
		Table("subscriptions").
		Where("status = ?", "active").
		Distinct().
		Pluck("owner_id", &ownerIDs).Error
	if err != nil {
		return nil, err
	}

	return ownerIDs, nil
}
