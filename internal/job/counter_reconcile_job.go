package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"blog-engagement-api/internal/metrics"
)

const reconcileTimeout = 2 * time.Minute

// LikeCounterReconciler rewrites stored like counters from the like rows
type LikeCounterReconciler interface {
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}

// CounterReconcileJob repairs posts whose denormalized like counter drifted
// from the number of like rows
type CounterReconcileJob struct {
	reconciler LikeCounterReconciler
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewCounterReconcileJob creates a new CounterReconcileJob instance
func NewCounterReconcileJob(reconciler LikeCounterReconciler, m *metrics.Metrics, logger *zap.Logger) *CounterReconcileJob {
	return &CounterReconcileJob{
		reconciler: reconciler,
		metrics:    m,
		logger:     logger,
	}
}

// Run executes one reconciliation pass. It satisfies cron.Job.
func (j *CounterReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("Like counter reconciliation failed", zap.Error(err))
	}
}

// RunOnce reconciles the counters and returns how many posts were repaired
func (j *CounterReconcileJob) RunOnce(ctx context.Context) (int64, error) {
	start := time.Now()

	repaired, err := j.reconciler.ReconcileLikeCounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("reconcile like counts: %w", err)
	}

	if repaired > 0 {
		j.logger.Warn("Like counters drifted and were repaired",
			zap.Int64("posts", repaired),
			zap.Duration("duration", time.Since(start)),
		)
		if j.metrics != nil {
			j.metrics.AddLikeCounterRepairs(repaired)
		}
	} else {
		j.logger.Debug("Like counters consistent", zap.Duration("duration", time.Since(start)))
	}
	return repaired, nil
}

// Schedule registers the job on a new cron scheduler. The caller starts and
// stops the returned scheduler.
func Schedule(spec string, j *CounterReconcileJob, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
		cron.Recover(cron.DiscardLogger),
	))
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	logger.Info("Counter reconcile job scheduled", zap.String("spec", spec))
	return c, nil
}
