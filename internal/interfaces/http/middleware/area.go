package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/access"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
)

// AreaAuthConfig holds configuration for area authorization middleware
type AreaAuthConfig struct {
	// Registry maps navigational paths to areas
	Registry *access.Registry
	// Logger for middleware logging
	Logger *zap.Logger
	// Metrics records authorization decisions (optional)
	Metrics *telemetry.BusinessMetrics
	// OnDenied is called instead of the default response when access is
	// denied (optional)
	OnDenied func(c *gin.Context, area access.Area, decision access.Decision)
}

// RequireArea creates middleware guarding an API route group with the
// area owning the given navigational path. The shell path, not the API
// path, names the area: /api/v1/properties is guarded by the area that
// owns /properties.
//
// Panics at router build time when no area owns the path.
func RequireArea(registry *access.Registry, navPath string) gin.HandlerFunc {
	return RequireAreaWithConfig(AreaAuthConfig{Registry: registry}, navPath)
}

// RequireAreaWithConfig creates area authorization middleware with custom config
func RequireAreaWithConfig(cfg AreaAuthConfig, navPath string) gin.HandlerFunc {
	area, ok := cfg.Registry.Lookup(navPath)
	if !ok {
		panic(fmt.Sprintf("no area registered for path: %s", navPath))
	}

	return func(c *gin.Context) {
		snapshot := GetSnapshot(c)
		decision := access.Decide(area, navPath, snapshot)

		if cfg.Metrics != nil {
			outcome := telemetry.AuthzDecisionDeny
			if decision.IsAllow() {
				outcome = telemetry.AuthzDecisionAllow
			}
			cfg.Metrics.RecordAuthzDecision(c.Request.Context(), area.Name, outcome)
		}

		if decision.IsAllow() {
			c.Next()
			return
		}

		handleAreaDenied(c, cfg, area, decision)
	}
}

// handleAreaDenied renders a non-allow decision for a direct API hit.
// The shell never sees this path: it asks the navigation endpoint and
// gets a 200 decision envelope. Direct hits get 401/403 plus the same
// decision payload so API clients can route the user the same way.
func handleAreaDenied(c *gin.Context, cfg AreaAuthConfig, area access.Area, decision access.Decision) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, area, decision)
		return
	}

	snapshot := GetSnapshot(c)

	status := http.StatusUnauthorized
	errorCode := "ERR_UNAUTHORIZED"
	errorMessage := "Authentication required"

	switch {
	case decision.IsPending():
		// Pending at a direct API endpoint means resolution itself
		// failed; a corrupt staff record is the one fatal case
		if errors.Is(GetResolutionError(c), shared.ErrRoleDataIntegrity) {
			status = http.StatusInternalServerError
			errorCode = "ERR_ROLE_DATA_INTEGRITY"
			errorMessage = shared.ErrRoleDataIntegrity.Message
		}
	case snapshot.IsAuthenticated():
		status = http.StatusForbidden
		errorCode = "ERR_FORBIDDEN"
		errorMessage = "Access to this area is forbidden"
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("Area access denied",
			zap.String("area", area.Name),
			zap.String("decision", string(decision.Kind)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	decisionPayload := gin.H{"kind": string(decision.Kind)}
	if decision.RedirectTo != "" {
		decisionPayload["redirect_to"] = decision.RedirectTo
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errorCode,
			"message": errorMessage,
		},
		"data": gin.H{
			"decision": decisionPayload,
		},
	})
}
