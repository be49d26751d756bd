package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SubscriptionExpirer settles lapsed subscriptions in batches. Implemented
// by the subscription application service.
type SubscriptionExpirer interface {
	ExpireLapsed(ctx context.Context, batchSize int) (int, error)
}

// SubscriptionExpirySchedulerConfig holds configuration for the expiry sweeper
type SubscriptionExpirySchedulerConfig struct {
	// Enabled determines if the sweeper is active
	Enabled bool

	// SweepInterval is how often lapsed subscriptions are settled
	SweepInterval time.Duration

	// BatchSize caps how many subscriptions a single sweep transitions
	BatchSize int

	// SweepTimeout is the maximum time for a single sweep run
	SweepTimeout time.Duration
}

// DefaultSubscriptionExpirySchedulerConfig returns default configuration
func DefaultSubscriptionExpirySchedulerConfig() SubscriptionExpirySchedulerConfig {
	return SubscriptionExpirySchedulerConfig{
		Enabled:       true,
		SweepInterval: 15 * time.Minute,
		BatchSize:     100,
		SweepTimeout:  5 * time.Minute,
	}
}

// SubscriptionExpiryScheduler periodically transitions active subscriptions
// past their expiry date to expired. Entitlement checks already treat lapsed
// rows as granting nothing, so the sweeper only settles the stored status;
// what it buys is that owner dashboards and the back office list the real
// state without waiting for the next entitlement read.
type SubscriptionExpiryScheduler struct {
	expirer   SubscriptionExpirer
	logger    *zap.Logger
	config    SubscriptionExpirySchedulerConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSubscriptionExpiryScheduler creates a new expiry sweeper
func NewSubscriptionExpiryScheduler(
	expirer SubscriptionExpirer,
	logger *zap.Logger,
	config SubscriptionExpirySchedulerConfig,
) *SubscriptionExpiryScheduler {
	if config.SweepInterval <= 0 {
		config.SweepInterval = 15 * time.Minute
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = 5 * time.Minute
	}
	return &SubscriptionExpiryScheduler{
		expirer: expirer,
		logger:  logger,
		config:  config,
	}
}

// Start starts the expiry sweeper
func (s *SubscriptionExpiryScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Subscription expiry scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runSweepLoop(ctx)

	s.logger.Info("Subscription expiry scheduler started",
		zap.Duration("sweep_interval", s.config.SweepInterval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	return nil
}

// Stop gracefully stops the sweeper
func (s *SubscriptionExpiryScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	// Wait for the sweep loop to finish with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Subscription expiry scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Subscription expiry scheduler stop timed out")
		return ctx.Err()
	}
}

// runSweepLoop sweeps immediately on start, then on every interval tick.
// The immediate sweep settles anything that lapsed while the process was
// down.
func (s *SubscriptionExpiryScheduler) runSweepLoop(ctx context.Context) {
	defer s.wg.Done()

	s.executeSweep(ctx)

	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Expiry sweep loop stopping")
			return
		case <-ticker.C:
			s.executeSweep(ctx)
		}
	}
}

// executeSweep runs a single bounded sweep
func (s *SubscriptionExpiryScheduler) executeSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	startTime := time.Now()
	expired, err := s.expirer.ExpireLapsed(sweepCtx, s.config.BatchSize)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Subscription expiry sweep failed",
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	if expired > 0 {
		s.logger.Info("Subscription expiry sweep completed",
			zap.Duration("duration", duration),
			zap.Int("expired", expired),
		)
	}
}

// TriggerImmediateSweep triggers an immediate sweep run
func (s *SubscriptionExpiryScheduler) TriggerImmediateSweep(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate subscription expiry sweep")

	// Run in a goroutine to not block
	go func() {
		defer s.wg.Done()
		s.executeSweep(ctx)
	}()

	return nil
}

// IsRunning returns whether the sweeper is running
func (s *SubscriptionExpiryScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
