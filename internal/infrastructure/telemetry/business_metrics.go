// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides domain metrics for the kost platform.
// It tracks session and role resolution, authorization decisions,
// entitlement checks, marketplace listing derivation, and room occupancy.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	sessionResolutionsTotal *Counter
	roleResolutionsTotal    *Counter
	authzDecisionsTotal     *Counter
	entitlementChecksTotal  *Counter
	propertiesSkippedTotal  *Counter

	// Histogram metrics
	listingDerivationDuration *Histogram

	// Gauge metrics (point-in-time values)
	listingsAvailable *Gauge
	roomsOccupied     *Gauge
	roomsVacant       *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data providers for periodic collection
	occupancyProvider OccupancyMetricsProvider
}

// OccupancyMetricsProvider provides room occupancy data for periodic
// metrics collection. This interface lets the telemetry layer query room
// state without depending on the property domain directly.
type OccupancyMetricsProvider interface {
	// GetOccupiedRoomsByProperty returns the occupied room count per property for an owner
	GetOccupiedRoomsByProperty(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]int64, error)

	// GetVacantRoomCount returns the number of vacant rooms across an owner's properties
	GetVacantRoomCount(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	CollectInterval   time.Duration // Default: 5 minutes
	OccupancyProvider OccupancyMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:             cfg.Meter,
		logger:            logger,
		stopChan:          make(chan struct{}),
		occupancyProvider: cfg.OccupancyProvider,
	}

	var err error

	// Session and authorization metrics
	bm.sessionResolutionsTotal, err = NewCounter(
		cfg.Meter,
		"kost_session_resolutions_total",
		"Total number of identity snapshot resolutions by outcome",
		"{resolutions}",
	)
	if err != nil {
		return nil, err
	}

	bm.roleResolutionsTotal, err = NewCounter(
		cfg.Meter,
		"kost_role_resolutions_total",
		"Total number of effective role resolutions by role",
		"{resolutions}",
	)
	if err != nil {
		return nil, err
	}

	bm.authzDecisionsTotal, err = NewCounter(
		cfg.Meter,
		"kost_authz_decisions_total",
		"Total number of area authorization decisions by outcome",
		"{decisions}",
	)
	if err != nil {
		return nil, err
	}

	// Entitlement metrics
	bm.entitlementChecksTotal, err = NewCounter(
		cfg.Meter,
		"kost_entitlement_checks_total",
		"Total number of feature entitlement checks by result",
		"{checks}",
	)
	if err != nil {
		return nil, err
	}

	// Marketplace derivation metrics
	bm.listingDerivationDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "kost_listing_derivation_seconds",
		Description: "Marketplace listing derivation latency distribution in seconds",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	bm.listingsAvailable, err = NewGauge(
		cfg.Meter,
		"kost_listings_available",
		"Number of listings produced by the most recent derivation",
		"{listings}",
	)
	if err != nil {
		return nil, err
	}

	bm.propertiesSkippedTotal, err = NewCounter(
		cfg.Meter,
		"kost_listing_properties_skipped_total",
		"Total number of properties skipped during listing derivation",
		"{properties}",
	)
	if err != nil {
		return nil, err
	}

	// Occupancy gauge metrics
	bm.roomsOccupied, err = NewGauge(
		cfg.Meter,
		"kost_rooms_occupied",
		"Current occupied room count per property",
		"{rooms}",
	)
	if err != nil {
		return nil, err
	}

	bm.roomsVacant, err = NewGauge(
		cfg.Meter,
		"kost_rooms_vacant",
		"Current vacant room count per owner",
		"{rooms}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Session and Authorization Metrics
// =============================================================================

// SessionOutcome represents the result of a snapshot resolution for metrics labeling.
type SessionOutcome string

const (
	SessionOutcomeAuthenticated   SessionOutcome = "authenticated"
	SessionOutcomeUnauthenticated SessionOutcome = "unauthenticated"
	SessionOutcomeFailed          SessionOutcome = "failed"
	SessionOutcomeTimeout         SessionOutcome = "timeout"
)

// RecordSessionResolution records a completed identity snapshot resolution.
// Superseded resolutions are dropped by the resolver and never reach here.
func (bm *BusinessMetrics) RecordSessionResolution(ctx context.Context, outcome SessionOutcome) {
	bm.sessionResolutionsTotal.Inc(ctx,
		AttrOutcome.String(string(outcome)),
	)
}

// RecordRoleResolution records an effective role resolution.
func (bm *BusinessMetrics) RecordRoleResolution(ctx context.Context, role string) {
	bm.roleResolutionsTotal.Inc(ctx,
		AttrRole.String(role),
	)
}

// AuthzDecision represents the outcome of an area authorization check.
type AuthzDecision string

const (
	AuthzDecisionAllow AuthzDecision = "allow"
	AuthzDecisionDeny  AuthzDecision = "deny"
)

// RecordAuthzDecision records an area authorization decision.
// This should be called wherever Decide runs, including the navigation
// probe endpoint.
func (bm *BusinessMetrics) RecordAuthzDecision(ctx context.Context, area string, decision AuthzDecision) {
	bm.authzDecisionsTotal.Inc(ctx,
		AttrArea.String(area),
		AttrDecision.String(string(decision)),
	)
}

// =============================================================================
// Entitlement Metrics
// =============================================================================

// EntitlementResult represents the result of a feature check for metrics labeling.
type EntitlementResult string

const (
	EntitlementGranted EntitlementResult = "granted"
	EntitlementDenied  EntitlementResult = "denied"
)

// RecordEntitlementCheck records a feature entitlement check.
func (bm *BusinessMetrics) RecordEntitlementCheck(ctx context.Context, feature string, result EntitlementResult) {
	bm.entitlementChecksTotal.Inc(ctx,
		AttrFeature.String(feature),
		AttrResult.String(string(result)),
	)
}

// =============================================================================
// Marketplace Derivation Metrics
// =============================================================================

// RecordListingDerivation records a completed marketplace listing derivation.
func (bm *BusinessMetrics) RecordListingDerivation(ctx context.Context, duration time.Duration, listingCount int) {
	bm.listingDerivationDuration.RecordDuration(ctx, duration)
	bm.listingsAvailable.Record(ctx, int64(listingCount))
}

// RecordPropertySkipped records a property excluded from a derivation run.
func (bm *BusinessMetrics) RecordPropertySkipped(ctx context.Context, reason string) {
	bm.propertiesSkippedTotal.Inc(ctx,
		AttrSkipReason.String(reason),
	)
}

// =============================================================================
// Occupancy Metrics
// =============================================================================

// RecordOccupiedRooms records the current occupied room count for a property.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOccupiedRooms(ctx context.Context, ownerID, propertyID uuid.UUID, count int64) {
	bm.roomsOccupied.Record(ctx, count,
		AttrOwnerID.String(ownerID.String()),
		AttrPropertyID.String(propertyID.String()),
	)
}

// RecordVacantRoomCount records the number of vacant rooms across an owner's
// properties. This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordVacantRoomCount(ctx context.Context, ownerID uuid.UUID, count int64) {
	bm.roomsVacant.Record(ctx, count,
		AttrOwnerID.String(ownerID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// OwnerProvider provides owner IDs for periodic metrics collection.
type OwnerProvider interface {
	GetActiveOwnerIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects occupancy metrics every interval (default: 5 minutes).
// This is non-blocking; use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, ownerProvider OwnerProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, ownerProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, ownerProvider OwnerProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectOccupancyMetrics(ctx, ownerProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectOccupancyMetrics(ctx, ownerProvider)
		}
	}
}

// collectOccupancyMetrics collects occupancy gauge metrics for all owners.
func (bm *BusinessMetrics) collectOccupancyMetrics(ctx context.Context, ownerProvider OwnerProvider) {
	if bm.occupancyProvider == nil {
		bm.logger.Debug("No occupancy provider configured, skipping occupancy metrics collection")
		return
	}

	ownerIDs, err := ownerProvider.GetActiveOwnerIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get owner IDs for metrics collection", zap.Error(err))
		return
	}

	for _, ownerID := range ownerIDs {
		bm.collectOwnerOccupancyMetrics(ctx, ownerID)
	}
}

// collectOwnerOccupancyMetrics collects occupancy metrics for a single owner.
func (bm *BusinessMetrics) collectOwnerOccupancyMetrics(ctx context.Context, ownerID uuid.UUID) {
	occupiedByProperty, err := bm.occupancyProvider.GetOccupiedRoomsByProperty(ctx, ownerID)
	if err != nil {
		bm.logger.Warn("Failed to get occupied room counts for owner",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
	} else {
		for propertyID, count := range occupiedByProperty {
			bm.RecordOccupiedRooms(ctx, ownerID, propertyID, count)
		}
	}

	vacantCount, err := bm.occupancyProvider.GetVacantRoomCount(ctx, ownerID)
	if err != nil {
		bm.logger.Warn("Failed to get vacant room count for owner",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordVacantRoomCount(ctx, ownerID, vacantCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
