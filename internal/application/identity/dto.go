package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/kosthub/backend/internal/domain/identity"
)

// RegisterInput contains the input for account self-registration
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	Phone     string
	RoleClaim string // "admin" for owners, anything else lands on tenant
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	Account AccountInfo
}

// LoginInput contains the input for account login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Account               AccountInfo
}

// AccountInfo contains basic account information returned after login
type AccountInfo struct {
	ID          uuid.UUID
	Email       string
	FullName    string
	DisplayName string
	Phone       string
	Role        identity.Role
	IsStaff     bool
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for account logout
type LogoutInput struct {
	AccountID uuid.UUID
	Token     string // Raw access token to revoke (optional)
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	OldPassword string
	NewPassword string
}

// GetCurrentAccountInput contains the input for getting current account info
type GetCurrentAccountInput struct {
	AccountID uuid.UUID
}

// CurrentAccountResult contains the current account's information
type CurrentAccountResult struct {
	Account AccountInfo
}
