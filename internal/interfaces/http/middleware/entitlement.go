package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosthub/backend/internal/domain/subscription"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
)

// EntitlementChecker reports whether an owner's active plan grants a
// feature. Satisfied by entitlement.EntitlementService.
type EntitlementChecker interface {
	HasFeature(ctx context.Context, ownerID uuid.UUID, key subscription.FeatureKey) (bool, error)
}

// FeatureGateConfig holds configuration for the feature gate middleware
type FeatureGateConfig struct {
	// Entitlements is required for checking plan features
	Entitlements EntitlementChecker
	// Logger for middleware logging
	Logger *zap.Logger
	// Metrics records entitlement check outcomes (optional)
	Metrics *telemetry.BusinessMetrics
	// OnDenied is called when feature access is denied (optional)
	OnDenied func(c *gin.Context, key subscription.FeatureKey)
}

// RequireFeature creates middleware that admits a request only when the
// authenticated owner's plan grants the feature.
// Panics if key is not a known feature key (fail fast at startup).
func RequireFeature(entitlements EntitlementChecker, key subscription.FeatureKey) gin.HandlerFunc {
	return RequireFeatureWithConfig(FeatureGateConfig{Entitlements: entitlements}, key)
}

// RequireFeatureWithConfig creates feature gate middleware with custom
// configuration.
// Panics if key is not a known feature key (fail fast at startup).
func RequireFeatureWithConfig(cfg FeatureGateConfig, key subscription.FeatureKey) gin.HandlerFunc {
	if !subscription.IsValidFeatureKey(key) {
		panic(fmt.Sprintf("invalid feature key: %s", key))
	}

	return func(c *gin.Context) {
		// The owner workspace is keyed by the owner's account
		ownerID, ok := GetAccountID(c)
		if !ok {
			handleFeatureDenied(c, cfg, key, http.StatusUnauthorized,
				"ERR_UNAUTHORIZED", "Authentication required")
			return
		}

		granted, err := cfg.Entitlements.HasFeature(c.Request.Context(), ownerID, key)
		if err != nil {
			// Fail closed: an unreachable plan store grants nothing, but
			// the code tells the client this is transient
			if cfg.Logger != nil {
				cfg.Logger.Error("Entitlement lookup failed",
					zap.String("owner_id", ownerID.String()),
					zap.String("feature", string(key)),
					zap.Error(err),
				)
			}
			recordEntitlement(c, cfg, key, telemetry.EntitlementDenied)
			handleFeatureDenied(c, cfg, key, http.StatusServiceUnavailable,
				"ERR_ENTITLEMENT_LOOKUP_FAILED", "Entitlement lookup failed, please retry")
			return
		}

		if !granted {
			if cfg.Logger != nil {
				cfg.Logger.Info("Feature access denied",
					zap.String("owner_id", ownerID.String()),
					zap.String("feature", string(key)),
				)
			}
			recordEntitlement(c, cfg, key, telemetry.EntitlementDenied)
			handleFeatureDenied(c, cfg, key, http.StatusForbidden,
				"ERR_FEATURE_NOT_ENTITLED", "Active subscription plan does not include this feature")
			return
		}

		recordEntitlement(c, cfg, key, telemetry.EntitlementGranted)
		c.Next()
	}
}

func recordEntitlement(c *gin.Context, cfg FeatureGateConfig, key subscription.FeatureKey, result telemetry.EntitlementResult) {
	if cfg.Metrics != nil {
		cfg.Metrics.RecordEntitlementCheck(c.Request.Context(), string(key), result)
	}
}

func handleFeatureDenied(c *gin.Context, cfg FeatureGateConfig, key subscription.FeatureKey, status int, code, message string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, key)
		return
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
