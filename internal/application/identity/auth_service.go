package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/auth"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	accountRepo identity.AccountRepository
	roleService *RoleService
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	events      shared.EventPublisher
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service. A nil blacklist
// disables token revocation on logout; sessions then end only by expiry.
func NewAuthService(
	accountRepo identity.AccountRepository,
	roleService *RoleService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		roleService: roleService,
		jwtService:  jwtService,
		blacklist:   blacklist,
		events:      events,
		config:      config,
		logger:      logger,
	}
}

// Register creates a new self-service account. Owners register with an
// admin claim, renters with tenant (or none). A superadmin claim is
// accepted but normalized away: privileged roles only ever come from the
// staff registry.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	s.logger.Info("Account registration attempt", zap.String("email", email))

	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "An account with this email already exists")
	}

	claim := identity.NormalizeProfileClaim(input.RoleClaim)
	account, err := identity.NewActiveAccount(email, input.Password, claim)
	if err != nil {
		return nil, err
	}
	if input.FullName != "" {
		if err := account.SetFullName(input.FullName); err != nil {
			return nil, err
		}
	}
	if input.Phone != "" {
		if err := account.SetPhone(input.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save account", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create account")
	}
	s.publishAccountEvents(ctx, account)

	s.logger.Info("Account registered",
		zap.String("email", email),
		zap.String("account_id", account.ID.String()),
		zap.String("role_claim", account.RoleClaim))

	return &RegisterResult{
		Account: AccountInfo{
			ID:          account.ID,
			Email:       account.Email,
			FullName:    account.FullName,
			DisplayName: account.DisplayName(),
			Phone:       account.Phone,
			Role:        claim,
			IsStaff:     false,
		},
	}, nil
}

// Login authenticates an account and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	s.logger.Info("Login attempt", zap.String("email", email))

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Account not found during login", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	// Check if account can login
	if !account.CanLogin() {
		if account.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("email", email))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact support")
		}
		if account.IsDeactivated() {
			s.logger.Warn("Login attempt for deactivated account", zap.String("email", email))
			return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
		}
		if account.IsPending() {
			s.logger.Warn("Login attempt for pending account", zap.String("email", email))
			return nil, shared.NewDomainError("ACCOUNT_PENDING", "Account is pending activation")
		}
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
	}

	// Verify password
	if !account.VerifyPassword(input.Password) {
		locked := account.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.accountRepo.Save(ctx, account); err != nil {
			s.logger.Error("Failed to update account after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("email", email),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("email", email),
			zap.Int("failed_attempts", account.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	// Resolve the effective role. Registry corruption blocks the login:
	// issuing a token with a guessed role would defeat the registry.
	role, isStaff, err := s.roleService.ResolveForAccount(ctx, account)
	if err != nil {
		if errors.Is(err, shared.ErrRoleDataIntegrity) {
			return nil, err
		}
		s.logger.Error("Failed to resolve role during login", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve account role")
	}

	tokenInput := auth.GenerateTokenInput{
		AccountID: account.ID,
		Email:     account.Email,
		Role:      role.String(),
		IsStaff:   isStaff,
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(tokenInput)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	// Record successful login
	account.RecordLoginSuccess(input.IP)
	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to update account after successful login", zap.Error(err))
		// Don't fail the login - just log the error
	}
	s.publishAccountEvents(ctx, account)
	s.publishAuthEvent(ctx, identity.NewAccountLoggedInEvent(account.ID))

	s.logger.Info("Account logged in successfully",
		zap.String("email", email),
		zap.String("account_id", account.ID.String()),
		zap.String("role", role.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Account: AccountInfo{
			ID:          account.ID,
			Email:       account.Email,
			FullName:    account.FullName,
			DisplayName: account.DisplayName(),
			Phone:       account.Phone,
			Role:        role,
			IsStaff:     isStaff,
		},
	}, nil
}

// RefreshToken refreshes the access token using a valid refresh token.
// The role is re-resolved so a refreshed token never extends a revoked
// role's life.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	s.logger.Info("Token refresh attempt")

	refreshClaims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	accountID, err := uuid.Parse(refreshClaims.AccountID)
	if err != nil {
		s.logger.Error("Invalid account ID in refresh token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid account ID in token")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		s.logger.Warn("Account not found during token refresh", zap.String("account_id", accountID.String()))
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}

	if !account.CanLogin() {
		s.logger.Warn("Token refresh for inactive account", zap.String("account_id", accountID.String()))
		return nil, shared.NewDomainError("ACCOUNT_INACTIVE", "Account is no longer active")
	}

	role, isStaff, err := s.roleService.ResolveForAccount(ctx, account)
	if err != nil {
		if errors.Is(err, shared.ErrRoleDataIntegrity) {
			return nil, err
		}
		s.logger.Error("Failed to resolve role during refresh", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve account role")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, role.String(), isStaff)
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, mapTokenError(err)
	}

	s.publishAuthEvent(ctx, identity.NewSessionRefreshedEvent(account.ID))
	s.logger.Info("Token refreshed successfully", zap.String("account_id", accountID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the presented access token and publishes the logout
// event so any resolved snapshot is invalidated. A token that no longer
// validates needs no revocation; blacklist write failures are logged
// but do not fail the logout, the token still dies at its expiry.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	s.logger.Info("Account logout", zap.String("account_id", input.AccountID.String()))

	if s.blacklist != nil && input.Token != "" {
		if claims, err := s.jwtService.ValidateAccessToken(input.Token); err == nil {
			ttl := time.Until(claims.GetExpiresAtTime())
			if ttl > 0 {
				if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
					s.logger.Error("Failed to blacklist token on logout",
						zap.String("account_id", input.AccountID.String()),
						zap.Error(err))
				}
			}
		}
	}

	s.publishAuthEvent(ctx, identity.NewAccountLoggedOutEvent(input.AccountID))
	return nil
}

// GetCurrentAccount retrieves the current account's information
func (s *AuthService) GetCurrentAccount(ctx context.Context, input GetCurrentAccountInput) (*CurrentAccountResult, error) {
	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}

	role, isStaff, err := s.roleService.ResolveForAccount(ctx, account)
	if err != nil {
		if errors.Is(err, shared.ErrRoleDataIntegrity) {
			return nil, err
		}
		s.logger.Error("Failed to resolve role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to resolve account role")
	}

	return &CurrentAccountResult{
		Account: AccountInfo{
			ID:          account.ID,
			Email:       account.Email,
			FullName:    account.FullName,
			DisplayName: account.DisplayName(),
			Phone:       account.Phone,
			Role:        role,
			IsStaff:     isStaff,
		},
	}, nil
}

// ChangePassword changes an account's password
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	account, err := s.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account not found")
	}

	if err := account.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		s.logger.Error("Failed to update account after password change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update password")
	}
	s.publishAccountEvents(ctx, account)

	s.logger.Info("Account password changed", zap.String("account_id", input.AccountID.String()))

	return nil
}

// publishAccountEvents publishes the aggregate's accumulated domain events
func (s *AuthService) publishAccountEvents(ctx context.Context, account *identity.Account) {
	if s.events == nil {
		return
	}
	events := account.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Publish events (errors are logged by the event bus, not propagated)
	_ = s.events.Publish(ctx, events...)
	account.ClearDomainEvents()
}

// publishAuthEvent publishes a session-lifecycle event
func (s *AuthService) publishAuthEvent(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}

// mapTokenError translates JWT service errors to domain errors
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrInvalidToken):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
