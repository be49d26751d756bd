package identity

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStaffMember = "StaffMember"

// Event type constants
const (
	EventTypeStaffMemberAdded       = "StaffMemberAdded"
	EventTypeStaffMemberRoleChanged = "StaffMemberRoleChanged"
	EventTypeStaffMemberDeactivated = "StaffMemberDeactivated"
	EventTypeStaffMemberRemoved     = "StaffMemberRemoved"
)

// StaffMemberAddedEvent is published when an account is added to the registry
type StaffMemberAddedEvent struct {
	shared.BaseDomainEvent
	StaffID   uuid.UUID `json:"staff_id"`
	AccountID uuid.UUID `json:"account_id"`
	Role      string    `json:"role"`
}

// NewStaffMemberAddedEvent creates a new StaffMemberAddedEvent
func NewStaffMemberAddedEvent(staff *StaffMember) *StaffMemberAddedEvent {
	return &StaffMemberAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffMemberAdded, AggregateTypeStaffMember, staff.ID),
		StaffID:         staff.ID,
		AccountID:       staff.AccountID,
		Role:            staff.Role,
	}
}

// StaffMemberRoleChangedEvent is published when a staff member's role changes
type StaffMemberRoleChangedEvent struct {
	shared.BaseDomainEvent
	StaffID   uuid.UUID `json:"staff_id"`
	AccountID uuid.UUID `json:"account_id"`
	OldRole   string    `json:"old_role"`
	NewRole   string    `json:"new_role"`
}

// NewStaffMemberRoleChangedEvent creates a new StaffMemberRoleChangedEvent
func NewStaffMemberRoleChangedEvent(staff *StaffMember, oldRole string) *StaffMemberRoleChangedEvent {
	return &StaffMemberRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffMemberRoleChanged, AggregateTypeStaffMember, staff.ID),
		StaffID:         staff.ID,
		AccountID:       staff.AccountID,
		OldRole:         oldRole,
		NewRole:         staff.Role,
	}
}

// StaffMemberDeactivatedEvent is published when a staff member is deactivated
type StaffMemberDeactivatedEvent struct {
	shared.BaseDomainEvent
	StaffID   uuid.UUID `json:"staff_id"`
	AccountID uuid.UUID `json:"account_id"`
}

// NewStaffMemberDeactivatedEvent creates a new StaffMemberDeactivatedEvent
func NewStaffMemberDeactivatedEvent(staff *StaffMember) *StaffMemberDeactivatedEvent {
	return &StaffMemberDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffMemberDeactivated, AggregateTypeStaffMember, staff.ID),
		StaffID:         staff.ID,
		AccountID:       staff.AccountID,
	}
}

// StaffMemberRemovedEvent is published when a registry record is deleted
type StaffMemberRemovedEvent struct {
	shared.BaseDomainEvent
	StaffID   uuid.UUID `json:"staff_id"`
	AccountID uuid.UUID `json:"account_id"`
}

// NewStaffMemberRemovedEvent creates a new StaffMemberRemovedEvent
func NewStaffMemberRemovedEvent(staff *StaffMember) *StaffMemberRemovedEvent {
	return &StaffMemberRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStaffMemberRemoved, AggregateTypeStaffMember, staff.ID),
		StaffID:         staff.ID,
		AccountID:       staff.AccountID,
	}
}
