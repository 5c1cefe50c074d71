package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"company-site.backend/internal/domain/entities"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/redis"
	"go.uber.org/zap"
)

const (
	analyticsSnapshotKey = "analytics:snapshot"
	recentWindow         = 30 * 24 * time.Hour
)

// StatusCounter is the slice of a resource repository analytics reads.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

var (
	loadSnapshot  = redis.Get
	storeSnapshot = redis.Set
)

// AnalyticsUsecase builds the dashboard snapshot and keeps a copy in Redis.
type AnalyticsUsecase struct {
	counters map[entities.Kind]StatusCounter
	ttl      time.Duration
	now      func() time.Time
}

// NewAnalyticsUsecase keeps snapshots for ttl; the refresh job rewrites them
// well within that window.
func NewAnalyticsUsecase(counters map[entities.Kind]StatusCounter, ttl time.Duration) *AnalyticsUsecase {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &AnalyticsUsecase{counters: counters, ttl: ttl, now: time.Now}
}

// Snapshot serves the cached snapshot unless refresh is set or none is cached.
func (u *AnalyticsUsecase) Snapshot(ctx context.Context, refresh bool) (*entities.AnalyticsSnapshot, error) {
	if !refresh {
		raw, err := loadSnapshot(ctx, analyticsSnapshotKey)
		switch {
		case err == nil:
			var snap entities.AnalyticsSnapshot
			if err := json.Unmarshal([]byte(raw), &snap); err == nil {
				return &snap, nil
			}
		case !errors.Is(err, redis.Nil) && !errors.Is(err, redis.ErrNotConfigured):
			logger.Warn(ctx, "Analytics snapshot lookup failed", zap.Error(err))
		}
	}
	return u.Refresh(ctx)
}

// Refresh computes a new snapshot and caches it.
func (u *AnalyticsUsecase) Refresh(ctx context.Context) (*entities.AnalyticsSnapshot, error) {
	snap, err := u.Compute(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	if err := storeSnapshot(ctx, analyticsSnapshotKey, raw, u.ttl); err != nil && !errors.Is(err, redis.ErrNotConfigured) {
		logger.Warn(ctx, "Analytics snapshot not cached", zap.Error(err))
	}
	return snap, nil
}

// Compute counts every resource kind straight from the store.
func (u *AnalyticsUsecase) Compute(ctx context.Context) (*entities.AnalyticsSnapshot, error) {
	now := u.now().UTC()
	snap := &entities.AnalyticsSnapshot{
		Kinds:       make(map[entities.Kind]entities.KindStats, len(u.counters)),
		GeneratedAt: now,
	}

	for kind, counter := range u.counters {
		byStatus, err := counter.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		stats := entities.KindStats{ByStatus: byStatus}
		for _, n := range byStatus {
			stats.Total += n
		}
		snap.Kinds[kind] = stats
	}

	if apps, ok := u.counters[entities.KindApplication]; ok {
		recent, err := apps.CountCreatedSince(ctx, now.Add(-recentWindow))
		if err != nil {
			return nil, err
		}
		snap.RecentApplications = recent
	}
	if msgs, ok := snap.Kinds[entities.KindMessage]; ok {
		snap.UnreadMessages = msgs.ByStatus[entities.MessageUnread]
	}
	return snap, nil
}
