package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// AuthState is the tri-state authentication status of a snapshot.
// SnapshotUnknown exists so callers can distinguish "resolution still in
// flight" from "resolved as unauthenticated": routing must hold instead
// of flash-redirecting to login while a valid session is being checked.
type AuthState string

const (
	SnapshotUnknown         AuthState = "unknown"
	SnapshotAuthenticated   AuthState = "authenticated"
	SnapshotUnauthenticated AuthState = "unauthenticated"
)

// IdentitySnapshot is the immutable result of one session resolution.
// It carries an effective role iff authenticated; a role change always
// requires a fresh snapshot from the resolver.
type IdentitySnapshot struct {
	state      AuthState
	accountID  uuid.UUID
	role       Role
	staff      bool
	resolvedAt time.Time
}

// UnknownSnapshot returns a snapshot for an outstanding resolution
func UnknownSnapshot() IdentitySnapshot {
	return IdentitySnapshot{state: SnapshotUnknown, resolvedAt: time.Now()}
}

// UnauthenticatedSnapshot returns a snapshot for a resolved anonymous session
func UnauthenticatedSnapshot() IdentitySnapshot {
	return IdentitySnapshot{state: SnapshotUnauthenticated, resolvedAt: time.Now()}
}

// NewAuthenticatedSnapshot returns a snapshot for a resolved session
func NewAuthenticatedSnapshot(accountID uuid.UUID, role Role, isStaff bool) (IdentitySnapshot, error) {
	if accountID == uuid.Nil {
		return IdentitySnapshot{}, shared.NewDomainError("INVALID_ACCOUNT_ID", "Account ID cannot be empty")
	}
	if !role.IsValid() {
		return IdentitySnapshot{}, shared.NewDomainError("INVALID_ROLE", "Effective role must be one of superadmin, admin, tenant")
	}
	return IdentitySnapshot{
		state:      SnapshotAuthenticated,
		accountID:  accountID,
		role:       role,
		staff:      isStaff,
		resolvedAt: time.Now(),
	}, nil
}

// State returns the tri-state authentication status
func (s IdentitySnapshot) State() AuthState {
	if s.state == "" {
		return SnapshotUnknown
	}
	return s.state
}

// IsUnknown returns true while resolution is outstanding
func (s IdentitySnapshot) IsUnknown() bool {
	return s.State() == SnapshotUnknown
}

// IsAuthenticated returns true for a resolved, signed-in session
func (s IdentitySnapshot) IsAuthenticated() bool {
	return s.State() == SnapshotAuthenticated
}

// AccountID returns the resolved account ID; the bool is false unless
// the snapshot is authenticated
func (s IdentitySnapshot) AccountID() (uuid.UUID, bool) {
	if !s.IsAuthenticated() {
		return uuid.Nil, false
	}
	return s.accountID, true
}

// EffectiveRole returns the resolved role; the bool is false unless the
// snapshot is authenticated
func (s IdentitySnapshot) EffectiveRole() (Role, bool) {
	if !s.IsAuthenticated() {
		return "", false
	}
	return s.role, true
}

// IsStaff returns true if the resolved account has a staff registry record
func (s IdentitySnapshot) IsStaff() bool {
	return s.IsAuthenticated() && s.staff
}

// ResolvedAt returns when this snapshot was produced
func (s IdentitySnapshot) ResolvedAt() time.Time {
	return s.resolvedAt
}
