package jobs

import (
	"context"
	"time"

	"company-site.backend/pkg/logger"
	"go.uber.org/zap"
)

const publishBatchSize = 100

// DuePublisher publishes scheduled posts whose publish date has passed.
type DuePublisher interface {
	PublishDue(ctx context.Context, now time.Time, limit int) (int, error)
}

// ScheduledPublishJob flips scheduled blog posts to published once they are due
type ScheduledPublishJob struct {
	posts    DuePublisher
	interval time.Duration
	stop     chan struct{}
	now      func() time.Time
}

func NewScheduledPublishJob(posts DuePublisher, interval time.Duration) *ScheduledPublishJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ScheduledPublishJob{
		posts:    posts,
		interval: interval,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

func (j *ScheduledPublishJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting scheduled publish job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Scheduled publish job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Scheduled publish job stopped")
			return
		case <-ticker.C:
			j.publishDue(ctx)
		}
	}
}

func (j *ScheduledPublishJob) Stop() {
	close(j.stop)
}

func (j *ScheduledPublishJob) publishDue(ctx context.Context) {
	n, err := j.posts.PublishDue(ctx, j.now().UTC(), publishBatchSize)
	if err != nil {
		logger.Error(ctx, "Error publishing scheduled posts", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "Published scheduled posts", zap.Int("count", n))
	}
}
