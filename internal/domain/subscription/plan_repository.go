package subscription

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository defines the interface for plan persistence
type PlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)

	// FindByCode finds a plan by its unique code
	FindByCode(ctx context.Context, code string) (*Plan, error)

	// FindAll finds all plans
	FindAll(ctx context.Context) ([]*Plan, error)

	// FindActive finds all plans currently on sale, ordered by SortOrder
	FindActive(ctx context.Context) ([]*Plan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error

	// Delete removes a plan
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of plans
	Count(ctx context.Context) (int64, error)

	// ExistsByCode checks if a plan with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
