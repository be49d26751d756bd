package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByEmail finds an account by its email
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindAll finds all accounts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// Delete deletes an account
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts accounts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByEmail checks if an account with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
