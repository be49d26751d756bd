package property

import (
	"context"

	"github.com/google/uuid"
)

// PropertyCatalog bundles everything listing derivation needs for one
// property, fetched in a single read.
type PropertyCatalog struct {
	Property  *Property
	RoomTypes []*RoomType
	Rooms     []*Room
}

// CatalogReader is the read path marketplace derivation uses. It is
// separate from the owner-facing repositories: derivation reads only
// listable properties and needs the combined catalog per property.
type CatalogReader interface {
	// ListListable returns all marketplace candidates in stable
	// catalog order
	ListListable(ctx context.Context) ([]*Property, error)

	// ReadCatalog loads a property with its room types and rooms in
	// one read. A failure here makes derivation skip the property.
	ReadCatalog(ctx context.Context, propertyID uuid.UUID) (*PropertyCatalog, error)
}
