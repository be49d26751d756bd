package property

import (
	"context"

	"github.com/google/uuid"
)

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByIDForOwner finds a property owned by the given account
	FindByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*Property, error)

	// FindBySlug finds a property by its public slug
	FindBySlug(ctx context.Context, slug string) (*Property, error)

	// FindByOwner finds all properties owned by an account
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Property, error)

	// FindListable finds all properties eligible for marketplace
	// derivation: marketplace enabled and status published
	FindListable(ctx context.Context) ([]*Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error

	// Delete removes a property
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of properties
	Count(ctx context.Context) (int64, error)

	// CountByOwner returns how many properties an account owns
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// ExistsBySlug checks if a slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
