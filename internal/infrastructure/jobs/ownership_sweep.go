package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"pfp-registry.backend/internal/usecases"
	"pfp-registry.backend/pkg/logger"
)

type sweeper interface {
	SweepOwnership(ctx context.Context, batchSize int) (*usecases.SweepResult, error)
}

// OwnershipSweepJob periodically re-verifies every stored profile reference
// against the chain. Lapsed ownership is logged and recorded in the change
// log; stored references are never touched.
type OwnershipSweepJob struct {
	sweeper   sweeper
	interval  time.Duration
	batchSize int
	stop      chan struct{}
}

func NewOwnershipSweepJob(sweeper sweeper, interval time.Duration, batchSize int) *OwnershipSweepJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &OwnershipSweepJob{
		sweeper:   sweeper,
		interval:  interval,
		batchSize: batchSize,
		stop:      make(chan struct{}),
	}
}

func (j *OwnershipSweepJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting ownership sweep job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Ownership sweep job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Ownership sweep job stopped")
			return
		case <-ticker.C:
			j.runSweep(ctx)
		}
	}
}

func (j *OwnershipSweepJob) Stop() {
	close(j.stop)
}

func (j *OwnershipSweepJob) runSweep(ctx context.Context) {
	result, err := j.sweeper.SweepOwnership(ctx, j.batchSize)
	if err != nil {
		logger.Error(ctx, "Ownership sweep failed", zap.Error(err))
		return
	}

	if result.Stale > 0 {
		logger.Warn(ctx, "Ownership sweep found stale references",
			zap.Int("checked", result.Checked),
			zap.Int("stale", result.Stale),
			zap.Int("lapsed", result.Lapsed))
	}
}
