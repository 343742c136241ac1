package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

const snapshotKey = "catalog:snapshot:v1"

// SnapshotCache stores the resolved remote catalog as a single JSON value.
// It satisfies catalog.SnapshotCache.
type SnapshotCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSnapshotCache creates a SnapshotCache whose entries live for ttl.
func NewSnapshotCache(redis *RedisClient, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{redis: redis, ttl: ttl}
}

// Get returns the cached snapshot. A missing key is (zero, false, nil); a
// corrupt entry is deleted and reported as a miss.
func (c *SnapshotCache) Get(ctx context.Context) (domain.Snapshot, bool, error) {
	b, err := c.redis.Get(ctx, snapshotKey)
	if errors.Is(err, ErrMiss) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("cache.SnapshotCache.Get: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		_ = c.redis.Delete(ctx, snapshotKey)
		return domain.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Set stores snap, replacing any previous entry.
func (c *SnapshotCache) Set(ctx context.Context, snap domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache.SnapshotCache.Set: marshal: %w", err)
	}
	if err := c.redis.Set(ctx, snapshotKey, b, c.ttl); err != nil {
		return fmt.Errorf("cache.SnapshotCache.Set: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Delete(ctx, snapshotKey); err != nil {
		return fmt.Errorf("cache.SnapshotCache.Invalidate: %w", err)
	}
	return nil
}
