package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/identity"
	"github.com/kosthub/backend/internal/infrastructure/logger"
)

// Snapshot context keys
const (
	SnapshotKey        = "identity_snapshot"
	ResolutionErrorKey = "identity_resolution_error"
	AuthHandleKey      = "auth_handle"
	AuthHeaderKey      = "Authorization"
	BearerPrefix       = "Bearer "
)

// SnapshotResolver resolves an identity snapshot for one request. The
// resolution is detached: concurrent requests never supersede each
// other the way shell navigations do.
type SnapshotResolver interface {
	ResolveDetached(ctx context.Context, handle string) (identity.IdentitySnapshot, error)
}

// SnapshotMiddlewareConfig holds configuration for snapshot middleware
type SnapshotMiddlewareConfig struct {
	// Resolver is required for resolving snapshots
	Resolver SnapshotResolver
	// SkipPaths are paths that skip resolution entirely (e.g. health checks)
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that skip resolution
	SkipPathPrefixes []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultSnapshotConfig returns default snapshot middleware configuration
func DefaultSnapshotConfig(resolver SnapshotResolver) SnapshotMiddlewareConfig {
	return SnapshotMiddlewareConfig{
		Resolver: resolver,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
			"/api/v1/health",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api-docs",
		},
		Logger: nil,
	}
}

// SnapshotMiddleware resolves the identity snapshot for each request and
// stores it in the context. It never aborts: an absent or invalid token
// yields an unauthenticated snapshot, and a provider failure yields an
// unauthenticated snapshot plus a resolution error. RequireAuth and the
// area middleware decide what each outcome means for the route.
func SnapshotMiddleware(resolver SnapshotResolver) gin.HandlerFunc {
	return SnapshotMiddlewareWithConfig(DefaultSnapshotConfig(resolver))
}

// SnapshotMiddlewareWithConfig returns snapshot middleware with custom configuration
func SnapshotMiddlewareWithConfig(cfg SnapshotMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		handle := extractAuthHandle(c)
		c.Set(AuthHandleKey, handle)

		snapshot, err := cfg.Resolver.ResolveDetached(c.Request.Context(), handle)
		c.Set(SnapshotKey, snapshot)
		if err != nil {
			c.Set(ResolutionErrorKey, err)
			if cfg.Logger != nil {
				cfg.Logger.Warn("Session resolution degraded",
					zap.String("path", path),
					zap.Error(err))
			}
		}

		// Propagate the account id to the request-scoped logger
		if accountID, ok := snapshot.AccountID(); ok {
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithAccountID(ctx, log, accountID.String())
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// extractAuthHandle pulls the bearer token from the Authorization
// header. Empty when absent or malformed; the resolver treats an empty
// handle as anonymous.
func extractAuthHandle(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

// GetSnapshot retrieves the identity snapshot from gin.Context. Returns
// an unknown snapshot when the middleware has not run.
func GetSnapshot(c *gin.Context) identity.IdentitySnapshot {
	if value, exists := c.Get(SnapshotKey); exists {
		if snapshot, ok := value.(identity.IdentitySnapshot); ok {
			return snapshot
		}
	}
	return identity.UnknownSnapshot()
}

// GetResolutionError retrieves the resolution error, if any, from gin.Context
func GetResolutionError(c *gin.Context) error {
	if value, exists := c.Get(ResolutionErrorKey); exists {
		if err, ok := value.(error); ok {
			return err
		}
	}
	return nil
}

// GetAuthHandle retrieves the raw bearer token from gin.Context
func GetAuthHandle(c *gin.Context) string {
	if value, exists := c.Get(AuthHandleKey); exists {
		if handle, ok := value.(string); ok {
			return handle
		}
	}
	return ""
}

// GetAccountID retrieves the authenticated account ID from the snapshot
// in gin.Context. The bool is false for anonymous requests.
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	return GetSnapshot(c).AccountID()
}

// MustGetAccountID retrieves the authenticated account ID or panics.
// Use only behind RequireAuth.
func MustGetAccountID(c *gin.Context) uuid.UUID {
	accountID, ok := GetAccountID(c)
	if !ok {
		panic("authenticated account not found in context")
	}
	return accountID
}
