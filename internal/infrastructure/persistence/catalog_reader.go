package persistence

import (
	"context"
	"errors"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogReader implements the marketplace read path over the
// property tables. It is deliberately separate from the owner-facing
// repositories: derivation never writes and never scopes by owner.
type GormCatalogReader struct {
	db *gorm.DB
}

// NewGormCatalogReader creates a new GormCatalogReader
func NewGormCatalogReader(db *gorm.DB) *GormCatalogReader {
	return &GormCatalogReader{db: db}
}

// ListListable returns all marketplace candidates in catalog order
func (r *GormCatalogReader) ListListable(ctx context.Context) ([]*property.Property, error) {
	var props []*property.Property
	if err := r.db.WithContext(ctx).
		Where("marketplace_enabled = ? AND marketplace_status = ?", true, property.MarketplaceStatusPublished).
		Order("created_at ASC").
		Find(&props).Error; err != nil {
		return nil, err
	}
	return props, nil
}

// ReadCatalog loads a property together with its room types and rooms.
// The three reads run in one transaction so derivation sees a
// consistent snapshot of the property.
func (r *GormCatalogReader) ReadCatalog(ctx context.Context, propertyID uuid.UUID) (*property.PropertyCatalog, error) {
	var catalog property.PropertyCatalog

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop property.Property
		if err := tx.First(&prop, "id = ?", propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		catalog.Property = &prop

		if err := tx.
			Where("property_id = ?", propertyID).
			Order("name ASC").
			Find(&catalog.RoomTypes).Error; err != nil {
			return err
		}

		return tx.
			Where("property_id = ?", propertyID).
			Order("room_number ASC").
			Find(&catalog.Rooms).Error
	})
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Ensure GormCatalogReader implements CatalogReader
var _ property.CatalogReader = (*GormCatalogReader)(nil)
