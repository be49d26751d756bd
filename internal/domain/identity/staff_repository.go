package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// StaffMemberRepository defines the interface for staff registry persistence
type StaffMemberRepository interface {
	// FindByID finds a staff record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StaffMember, error)

	// FindByAccountID finds a staff record keyed by account ID.
	// At most one record exists per account; absence is reported as
	// shared.ErrNotFound, which role resolution treats as "not staff",
	// never as a failure.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*StaffMember, error)

	// FindActiveByAccountID finds an active staff record keyed by account ID
	FindActiveByAccountID(ctx context.Context, accountID uuid.UUID) (*StaffMember, error)

	// FindAll finds all staff records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StaffMember, error)

	// Save creates or updates a staff record
	Save(ctx context.Context, staff *StaffMember) error

	// Delete deletes a staff record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts staff records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByAccountID checks if an account has a staff record
	ExistsByAccountID(ctx context.Context, accountID uuid.UUID) (bool, error)
}
