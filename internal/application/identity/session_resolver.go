package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
)

// ErrNoSession is returned by a SessionProvider when the auth handle
// carries no valid session (absent, malformed, or expired credentials).
// It is a clean unauthenticated outcome, not a failure.
var ErrNoSession = identity.ErrNoSession

// ErrResolutionSuperseded is returned to a navigation whose resolution
// was overtaken by a newer one. The result carries no usable snapshot.
var ErrResolutionSuperseded = errors.New("session resolution superseded by a newer navigation")

// Session is the authoritative session record behind an auth handle.
// Declared in the domain package so infrastructure adapters can
// implement SessionProvider without importing the application layer.
type Session = identity.Session

// SessionProvider supplies the current session for an auth handle (a
// bearer token or session cookie value). Implementations return
// ErrNoSession for handles without a valid session; any other error is
// a provider failure and is treated as recoverable.
type SessionProvider = identity.SessionProvider

// SessionResolverConfig holds session resolver configuration
type SessionResolverConfig struct {
	// ResolveTimeout bounds one resolution end to end. On expiry the
	// navigation proceeds as unauthenticated so the requested path is
	// preserved for post-login return instead of hanging the client.
	ResolveTimeout time.Duration
}

// DefaultSessionResolverConfig returns the default resolver configuration
func DefaultSessionResolverConfig() SessionResolverConfig {
	return SessionResolverConfig{
		ResolveTimeout: 3 * time.Second,
	}
}

// SessionResolver turns an auth handle into an identity snapshot on each
// navigation.
//
// Resolutions are generation-counted: a new navigation supersedes any
// outstanding one, cancels it, and drops its result, so a slow stale
// resolution can never overwrite a newer snapshot. While a resolution is
// outstanding the current snapshot reads as unknown; callers must treat
// unknown as "hold", never as anonymous.
type SessionResolver struct {
	provider SessionProvider
	roles    *RoleService
	config   SessionResolverConfig
	logger   *zap.Logger

	businessMetrics *telemetry.BusinessMetrics

	mu             sync.Mutex
	generation     uint64
	snapshot       identity.IdentitySnapshot
	cancelInFlight context.CancelFunc
}

// NewSessionResolver creates a new session resolver
func NewSessionResolver(
	provider SessionProvider,
	roles *RoleService,
	config SessionResolverConfig,
	logger *zap.Logger,
) *SessionResolver {
	return &SessionResolver{
		provider: provider,
		roles:    roles,
		config:   config,
		logger:   logger,
		snapshot: identity.UnknownSnapshot(),
	}
}

// SetBusinessMetrics sets the business metrics collector
func (r *SessionResolver) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	r.businessMetrics = bm
}

func (r *SessionResolver) recordResolution(ctx context.Context, outcome telemetry.SessionOutcome) {
	if r.businessMetrics != nil {
		r.businessMetrics.RecordSessionResolution(ctx, outcome)
	}
}

// Resolve resolves the identity snapshot for one navigation.
//
// Outcomes:
//   - valid session: authenticated snapshot
//   - no session, empty handle, or deleted/deactivated account:
//     unauthenticated snapshot, no error
//   - provider failure or timeout: unauthenticated snapshot plus
//     AUTH_CHECK_FAILED; the navigation proceeds to login with the
//     destination preserved and the next navigation retries
//   - staff registry corruption: unknown snapshot plus
//     ROLE_DATA_INTEGRITY; fatal for this session, never coerced
//   - superseded by a newer navigation: ErrResolutionSuperseded
func (r *SessionResolver) Resolve(ctx context.Context, handle string) (identity.IdentitySnapshot, error) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	if r.cancelInFlight != nil {
		r.cancelInFlight()
	}
	r.snapshot = identity.UnknownSnapshot()
	rctx, cancel := context.WithTimeout(ctx, r.config.ResolveTimeout)
	r.cancelInFlight = cancel
	r.mu.Unlock()
	defer cancel()

	snapshot, err := r.resolveOnce(rctx, handle)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return identity.UnknownSnapshot(), ErrResolutionSuperseded
	}
	r.cancelInFlight = nil
	r.snapshot = snapshot
	return snapshot, err
}

// ResolveDetached resolves a snapshot for a single request without
// consulting or updating the shared navigation snapshot. Concurrent
// callers never supersede one another; error mapping matches Resolve.
func (r *SessionResolver) ResolveDetached(ctx context.Context, handle string) (identity.IdentitySnapshot, error) {
	rctx, cancel := context.WithTimeout(ctx, r.config.ResolveTimeout)
	defer cancel()
	return r.resolveOnce(rctx, handle)
}

// Snapshot returns the latest resolved snapshot. Unknown while a
// resolution is outstanding or after an invalidation.
func (r *SessionResolver) Snapshot() identity.IdentitySnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot
}

// Invalidate discards the current snapshot and cancels any outstanding
// resolution. The next navigation resolves fresh.
func (r *SessionResolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	if r.cancelInFlight != nil {
		r.cancelInFlight()
		r.cancelInFlight = nil
	}
	r.snapshot = identity.UnknownSnapshot()
}

func (r *SessionResolver) resolveOnce(ctx context.Context, handle string) (identity.IdentitySnapshot, error) {
	if handle == "" {
		r.recordResolution(ctx, telemetry.SessionOutcomeUnauthenticated)
		return identity.UnauthenticatedSnapshot(), nil
	}

	session, err := r.provider.CurrentSession(ctx, handle)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			r.recordResolution(ctx, telemetry.SessionOutcomeUnauthenticated)
			return identity.UnauthenticatedSnapshot(), nil
		case errors.Is(err, context.Canceled):
			return identity.UnknownSnapshot(), err
		case errors.Is(err, context.DeadlineExceeded):
			r.logger.Warn("session resolution timed out",
				zap.Duration("timeout", r.config.ResolveTimeout))
			r.recordResolution(ctx, telemetry.SessionOutcomeTimeout)
			return identity.UnauthenticatedSnapshot(), shared.ErrAuthCheckFailed
		default:
			r.logger.Warn("session provider failure", zap.Error(err))
			r.recordResolution(ctx, telemetry.SessionOutcomeFailed)
			return identity.UnauthenticatedSnapshot(), shared.ErrAuthCheckFailed
		}
	}

	snapshot, err := r.roles.ResolveSnapshot(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrAuthCheckFailed) {
			r.recordResolution(ctx, telemetry.SessionOutcomeFailed)
			return identity.UnauthenticatedSnapshot(), shared.ErrAuthCheckFailed
		}
		// ROLE_DATA_INTEGRITY stays unknown: an explicit support state,
		// not a login redirect
		r.recordResolution(ctx, telemetry.SessionOutcomeFailed)
		return snapshot, err
	}
	if snapshot.IsAuthenticated() {
		r.recordResolution(ctx, telemetry.SessionOutcomeAuthenticated)
	} else {
		r.recordResolution(ctx, telemetry.SessionOutcomeUnauthenticated)
	}
	return snapshot, nil
}

// Handle implements shared.EventHandler. Any auth-state change event
// invalidates the snapshot so the next navigation re-resolves.
func (r *SessionResolver) Handle(_ context.Context, event shared.DomainEvent) error {
	r.logger.Debug("auth state changed, invalidating snapshot",
		zap.String("event_type", event.EventType()))
	r.Invalidate()
	return nil
}

// EventTypes implements shared.EventHandler
func (r *SessionResolver) EventTypes() []string {
	return []string{
		identity.EventTypeAccountLoggedIn,
		identity.EventTypeAccountLoggedOut,
		identity.EventTypeSessionRefreshed,
	}
}

// WatchAuthChanges subscribes the resolver to auth-state change events.
// The returned subscription must be cancelled on shutdown; Cancel is
// idempotent.
func (r *SessionResolver) WatchAuthChanges(bus shared.EventSubscriber) *AuthSubscription {
	bus.Subscribe(r)
	return &AuthSubscription{cancel: func() { bus.Unsubscribe(r) }}
}

// AuthSubscription is a cancellable auth-event subscription
type AuthSubscription struct {
	once   sync.Once
	cancel func()
}

// Cancel tears the subscription down
func (s *AuthSubscription) Cancel() {
	s.once.Do(s.cancel)
}

// Ensure SessionResolver implements shared.EventHandler
var _ shared.EventHandler = (*SessionResolver)(nil)
