package jobs

import (
	"context"
	"time"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SnapshotRefresher recomputes the dashboard analytics.
type SnapshotRefresher interface {
	Refresh(ctx context.Context) (*entities.AnalyticsSnapshot, error)
}

// AnalyticsRefreshJob rebuilds the cached analytics snapshot on a cron schedule.
// A run that overlaps the previous one is skipped.
type AnalyticsRefreshJob struct {
	analytics SnapshotRefresher
	cron      *cron.Cron
	timeout   time.Duration
}

// NewAnalyticsRefreshJob parses spec, e.g. "@every 5m" or "*/10 * * * *".
func NewAnalyticsRefreshJob(analytics SnapshotRefresher, spec string) (*AnalyticsRefreshJob, error) {
	j := &AnalyticsRefreshJob{
		analytics: analytics,
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		timeout:   time.Minute,
	}
	if _, err := j.cron.AddFunc(spec, func() { j.run(context.Background()) }); err != nil {
		return nil, err
	}
	return j, nil
}

// Start schedules runs in the background and returns immediately.
func (j *AnalyticsRefreshJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting analytics refresh job")
	j.cron.Start()
}

// Stop waits for a running refresh to finish.
func (j *AnalyticsRefreshJob) Stop() {
	<-j.cron.Stop().Done()
}

func (j *AnalyticsRefreshJob) run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	snap, err := j.analytics.Refresh(ctx)
	if err != nil {
		logger.Error(ctx, "Error refreshing analytics", zap.Error(err))
		return
	}
	logger.Debug(ctx, "Analytics refreshed", zap.Int("kinds", len(snap.Kinds)))
}
