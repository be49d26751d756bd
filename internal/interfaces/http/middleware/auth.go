package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/shared"
)

// AuthMiddlewareConfig holds configuration for the auth requirement middleware
type AuthMiddlewareConfig struct {
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// Optional callback when the request is not authenticated (default: 401)
	OnError func(c *gin.Context, err error)
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAuthConfig returns default auth middleware configuration. The
// skip list covers the public surface: marketplace reads, login and
// registration, health and docs. The navigation decide endpoint is
// skipped too because anonymous visitors legitimately ask for routing
// decisions and receive login redirects as answers.
func DefaultAuthConfig() AuthMiddlewareConfig {
	return AuthMiddlewareConfig{
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
			"/api/v1/navigation/decide",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api-docs",
			"/api/v1/marketplace",
		},
		OnError: nil,
		Logger:  nil,
	}
}

// RequireAuth creates middleware that rejects unauthenticated requests.
// It consumes the snapshot injected by SnapshotMiddleware instead of
// re-validating the token itself.
func RequireAuth() gin.HandlerFunc {
	return RequireAuthWithConfig(DefaultAuthConfig())
}

// RequireAuthWithConfig creates auth middleware with custom config
func RequireAuthWithConfig(cfg AuthMiddlewareConfig) gin.HandlerFunc {
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

		snapshot := GetSnapshot(c)
		if snapshot.IsAuthenticated() {
			c.Next()
			return
		}

		err := GetResolutionError(c)
		handleAuthError(c, cfg, err)
	}
}

// handleAuthError renders the unauthenticated outcome. A recoverable
// provider failure keeps its own code so clients retry instead of
// clearing their session; a corrupt staff record is surfaced as a
// server fault, never coerced into a role.
func handleAuthError(c *gin.Context, cfg AuthMiddlewareConfig, err error) {
	if cfg.OnError != nil {
		cfg.OnError(c, err)
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("Request rejected as unauthenticated",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
	}

	status := http.StatusUnauthorized
	errorCode := "ERR_UNAUTHORIZED"
	errorMessage := "Authentication required"

	switch {
	case errors.Is(err, shared.ErrRoleDataIntegrity):
		status = http.StatusInternalServerError
		errorCode = "ERR_ROLE_DATA_INTEGRITY"
		errorMessage = shared.ErrRoleDataIntegrity.Message
	case errors.Is(err, shared.ErrAuthCheckFailed):
		errorCode = "ERR_AUTH_CHECK_FAILED"
		errorMessage = shared.ErrAuthCheckFailed.Message
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errorCode,
			"message": errorMessage,
		},
	})
}
