package identity

import (
	"github.com/google/uuid"
	"github.com/kosthub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeAccount = "Account"

// Event type constants
const (
	EventTypeAccountRegistered      = "AccountRegistered"
	EventTypeAccountStatusChanged   = "AccountStatusChanged"
	EventTypeAccountPasswordChanged = "AccountPasswordChanged"
	EventTypeAccountLoggedIn        = "AccountLoggedIn"
	EventTypeAccountLoggedOut       = "AccountLoggedOut"
	EventTypeSessionRefreshed       = "SessionRefreshed"
)

// AccountRegisteredEvent is published when a new account is created
type AccountRegisteredEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	RoleClaim string    `json:"role_claim"`
}

// NewAccountRegisteredEvent creates a new AccountRegisteredEvent
func NewAccountRegisteredEvent(account *Account) *AccountRegisteredEvent {
	return &AccountRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountRegistered, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		Email:           account.Email,
		RoleClaim:       account.RoleClaim,
	}
}

// AccountStatusChangedEvent is published when an account's status changes
type AccountStatusChangedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID     `json:"account_id"`
	OldStatus AccountStatus `json:"old_status"`
	NewStatus AccountStatus `json:"new_status"`
}

// NewAccountStatusChangedEvent creates a new AccountStatusChangedEvent
func NewAccountStatusChangedEvent(account *Account, oldStatus, newStatus AccountStatus) *AccountStatusChangedEvent {
	return &AccountStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountStatusChanged, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// AccountPasswordChangedEvent is published when an account's password changes
type AccountPasswordChangedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
}

// NewAccountPasswordChangedEvent creates a new AccountPasswordChangedEvent
func NewAccountPasswordChangedEvent(account *Account) *AccountPasswordChangedEvent {
	return &AccountPasswordChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPasswordChanged, AggregateTypeAccount, account.ID),
		AccountID:       account.ID,
	}
}

// AccountLoggedInEvent is published on every successful login. Session
// resolvers subscribe to it (and to logout/refresh) to invalidate any
// snapshot they are holding for the account.
type AccountLoggedInEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
}

// NewAccountLoggedInEvent creates a new AccountLoggedInEvent
func NewAccountLoggedInEvent(accountID uuid.UUID) *AccountLoggedInEvent {
	return &AccountLoggedInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountLoggedIn, AggregateTypeAccount, accountID),
		AccountID:       accountID,
	}
}

// AccountLoggedOutEvent is published when a session ends
type AccountLoggedOutEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
}

// NewAccountLoggedOutEvent creates a new AccountLoggedOutEvent
func NewAccountLoggedOutEvent(accountID uuid.UUID) *AccountLoggedOutEvent {
	return &AccountLoggedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountLoggedOut, AggregateTypeAccount, accountID),
		AccountID:       accountID,
	}
}

// SessionRefreshedEvent is published when a token pair is refreshed
type SessionRefreshedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
}

// NewSessionRefreshedEvent creates a new SessionRefreshedEvent
func NewSessionRefreshedEvent(accountID uuid.UUID) *SessionRefreshedEvent {
	return &SessionRefreshedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionRefreshed, AggregateTypeAccount, accountID),
		AccountID:       accountID,
	}
}
