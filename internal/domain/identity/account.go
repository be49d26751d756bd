package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/kosthub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// AccountStatus represents the status of an account
type AccountStatus string

const (
	AccountStatusPending     AccountStatus = "pending"     // Awaiting activation
	AccountStatusActive      AccountStatus = "active"      // Normal active status
	AccountStatusLocked      AccountStatus = "locked"      // Locked due to failed attempts/security
	AccountStatusDeactivated AccountStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// Account represents a platform account. Owners, renters, and platform
// staff all authenticate through the same account record; the role claim
// stored here is only a hint that the role resolution normalizes, never
// an authority (see ResolveEffectiveRole).
type Account struct {
	shared.BaseAggregateRoot
	Email             string
	FullName          string
	Phone             string
	PasswordHash      string
	RoleClaim         string // profile-embedded role claim, normalized on read
	Status            AccountStatus
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewAccount creates a new account with required fields
func NewAccount(email, password string, roleClaim Role) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		RoleClaim:         roleClaim.String(),
		Status:            AccountStatusPending,
		PasswordChangedAt: &now,
	}

	account.AddDomainEvent(NewAccountRegisteredEvent(account))

	return account, nil
}

// NewActiveAccount creates a new account that is immediately active
func NewActiveAccount(email, password string, roleClaim Role) (*Account, error) {
	account, err := NewAccount(email, password, roleClaim)
	if err != nil {
		return nil, err
	}

	account.Status = AccountStatusActive
	return account, nil
}

// SetFullName sets the account holder's full name
func (a *Account) SetFullName(fullName string) error {
	if fullName != "" && len(fullName) > 200 {
		return shared.NewDomainError("INVALID_FULL_NAME", "Full name cannot exceed 200 characters")
	}

	a.FullName = strings.TrimSpace(fullName)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetPhone sets the account's phone number
func (a *Account) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	a.Phone = strings.TrimSpace(phone)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetRoleClaim stores a new profile role claim. The claim is stored
// verbatim; normalization happens on read so that stale values are
// observable rather than silently rewritten.
func (a *Account) SetRoleClaim(claim string) {
	a.RoleClaim = strings.TrimSpace(claim)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// ChangePassword changes the account's password
func (a *Account) ChangePassword(oldPassword, newPassword string) error {
	if !a.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return a.SetPassword(newPassword)
}

// SetPassword sets a new password (back-office reset, no old password check)
func (a *Account) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	a.PasswordHash = passwordHash
	now := time.Now()
	a.PasswordChangedAt = &now
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountPasswordChangedEvent(a))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// Activate activates the account
func (a *Account) Activate() error {
	if a.Status == AccountStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Account is already active")
	}

	oldStatus := a.Status
	a.Status = AccountStatusActive
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountStatusChangedEvent(a, oldStatus, AccountStatusActive))

	return nil
}

// Deactivate deactivates the account
func (a *Account) Deactivate() error {
	if a.Status == AccountStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Account is already deactivated")
	}

	oldStatus := a.Status
	a.Status = AccountStatusDeactivated
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountStatusChangedEvent(a, oldStatus, AccountStatusDeactivated))

	return nil
}

// Lock locks the account
func (a *Account) Lock(duration time.Duration) error {
	if a.Status == AccountStatusDeactivated {
		return shared.NewDomainError("ACCOUNT_DEACTIVATED", "Cannot lock a deactivated account")
	}

	oldStatus := a.Status
	a.Status = AccountStatusLocked
	if duration > 0 {
		lockedUntil := time.Now().Add(duration)
		a.LockedUntil = &lockedUntil
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountStatusChangedEvent(a, oldStatus, AccountStatusLocked))

	return nil
}

// Unlock unlocks the account
func (a *Account) Unlock() error {
	if a.Status != AccountStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "Account is not locked")
	}

	a.Status = AccountStatusActive
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountStatusChangedEvent(a, AccountStatusLocked, AccountStatusActive))

	return nil
}

// RecordLoginSuccess records a successful login
func (a *Account) RecordLoginSuccess(ip string) {
	now := time.Now()
	a.LastLoginAt = &now
	a.LastLoginIP = ip
	a.FailedAttempts = 0
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt
// Returns true if the account should be locked
func (a *Account) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	a.FailedAttempts++
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if a.FailedAttempts >= maxAttempts {
		_ = a.Lock(lockDuration)
		return true
	}

	return false
}

// IsActive returns true if the account is active
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// IsLocked returns true if the account is locked
func (a *Account) IsLocked() bool {
	if a.Status != AccountStatusLocked {
		return false
	}

	// Check if lock has expired
	if a.LockedUntil != nil && time.Now().After(*a.LockedUntil) {
		return false
	}

	return true
}

// IsDeactivated returns true if the account is deactivated
func (a *Account) IsDeactivated() bool {
	return a.Status == AccountStatusDeactivated
}

// IsPending returns true if the account is pending activation
func (a *Account) IsPending() bool {
	return a.Status == AccountStatusPending
}

// CanLogin returns true if the account can login
func (a *Account) CanLogin() bool {
	if a.Status == AccountStatusDeactivated {
		return false
	}
	if a.Status == AccountStatusPending {
		return false
	}
	if a.IsLocked() {
		return false
	}
	return true
}

// DisplayName returns the full name if set, otherwise the email local part
func (a *Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	if at := strings.Index(a.Email, "@"); at > 0 {
		return a.Email[:at]
	}
	return a.Email
}

// Validation functions

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	// Check for at least one letter and one number
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
