package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// StaffMember is a back-office registry record granting a privileged role
// to an account. The registry is the authoritative role source: a record
// here strictly overrides whatever role claim the account profile carries.
//
// Role is stored as raw text on purpose. Writes only accept values from
// the closed Role set, but resolution re-validates on read so that data
// drift (manual edits, bad imports) surfaces as a ROLE_DATA_INTEGRITY
// error instead of a silently guessed role.
type StaffMember struct {
	shared.BaseAggregateRoot
	AccountID   uuid.UUID
	Role        string
	DisplayName string
	Active      bool
}

// NewStaffMember creates a new staff registry record
func NewStaffMember(accountID uuid.UUID, role Role, displayName string) (*StaffMember, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_ID", "Account ID cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be one of superadmin, admin, tenant")
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}

	staff := &StaffMember{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		Role:              role.String(),
		DisplayName:       strings.TrimSpace(displayName),
		Active:            true,
	}

	staff.AddDomainEvent(NewStaffMemberAddedEvent(staff))

	return staff, nil
}

// ChangeRole changes the staff member's role
func (s *StaffMember) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of superadmin, admin, tenant")
	}
	if s.Role == role.String() {
		return shared.NewDomainError("ROLE_UNCHANGED", "Staff member already has this role")
	}

	oldRole := s.Role
	s.Role = role.String()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStaffMemberRoleChangedEvent(s, oldRole))

	return nil
}

// Rename updates the staff member's display name
func (s *StaffMember) Rename(displayName string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}

	s.DisplayName = strings.TrimSpace(displayName)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate removes the staff member from active duty without deleting
// the registry record. An inactive record no longer participates in role
// resolution.
func (s *StaffMember) Deactivate() error {
	if !s.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Staff member is already inactive")
	}

	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStaffMemberDeactivatedEvent(s))

	return nil
}

// Reactivate restores an inactive staff member
func (s *StaffMember) Reactivate() error {
	if s.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Staff member is already active")
	}

	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// EffectiveRole parses the stored role strictly
func (s *StaffMember) EffectiveRole() (Role, error) {
	return ParseStaffRole(s.Role)
}

func validateDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}
	return nil
}
