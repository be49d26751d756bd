package auth

import (
	"context"
	"fmt"

	"github.com/kosthub/backend/internal/domain/identity"
)

// SessionProvider turns bearer tokens into sessions for the session
// resolver. Malformed, forged, expired and revoked tokens all read as
// "no session"; only a failing blacklist lookup is a provider failure,
// which the resolver surfaces as AUTH_CHECK_FAILED instead of silently
// treating the caller as anonymous.
type SessionProvider struct {
	jwtService *JWTService
	blacklist  TokenBlacklist
}

// NewSessionProvider creates a session provider over the JWT service and
// token blacklist. A nil blacklist disables revocation checks.
func NewSessionProvider(jwtService *JWTService, blacklist TokenBlacklist) *SessionProvider {
	return &SessionProvider{
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// CurrentSession implements identity.SessionProvider.
func (p *SessionProvider) CurrentSession(ctx context.Context, handle string) (*identity.Session, error) {
	claims, err := p.jwtService.ValidateAccessToken(handle)
	if err != nil {
		return nil, identity.ErrNoSession
	}

	accountID, err := claims.GetAccountUUID()
	if err != nil {
		return nil, identity.ErrNoSession
	}

	if p.blacklist != nil {
		// Logout revokes the individual token by JTI
		blacklisted, err := p.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("token blacklist check: %w", err)
		}
		if blacklisted {
			return nil, identity.ErrNoSession
		}

		// Force-logout and deactivation invalidate every token issued
		// before the account's invalidation timestamp
		invalidated, err := p.blacklist.IsAccountTokenInvalidated(ctx, claims.AccountID, claims.GetIssuedAtTime())
		if err != nil {
			return nil, fmt.Errorf("account invalidation check: %w", err)
		}
		if invalidated {
			return nil, identity.ErrNoSession
		}
	}

	return &identity.Session{
		AccountID: accountID,
		Email:     claims.Email,
		IssuedAt:  claims.GetIssuedAtTime(),
		ExpiresAt: claims.GetExpiresAtTime(),
	}, nil
}

var _ identity.SessionProvider = (*SessionProvider)(nil)
