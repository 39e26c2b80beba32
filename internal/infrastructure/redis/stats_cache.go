package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	totalCleanedKey    = "expired_sales:total_cleaned"
	lastCleanupTimeKey = "expired_sales:last_cleanup_time"
)

// RedisCleanupStatsCache keeps the lifetime expired-sale cleanup counter.
// It is the only state the stats projection has beyond the sale records.
type RedisCleanupStatsCache struct {
	client *redis.Client
}

func NewRedisCleanupStatsCache(client *redis.Client) *RedisCleanupStatsCache {
	return &RedisCleanupStatsCache{client: client}
}

func (r *RedisCleanupStatsCache) IncrementTotalCleaned(ctx context.Context, n int64) (int64, error) {
	return r.client.IncrBy(ctx, totalCleanedKey, n).Result()
}

func (r *RedisCleanupStatsCache) GetTotalCleaned(ctx context.Context) (int64, error) {
	result, err := r.client.Get(ctx, totalCleanedKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return result, nil
}

func (r *RedisCleanupStatsCache) SetLastCleanupTime(ctx context.Context, t time.Time) error {
	return r.client.Set(ctx, lastCleanupTimeKey, t.Format(time.RFC3339), 0).Err()
}

func (r *RedisCleanupStatsCache) GetLastCleanupTime(ctx context.Context) (*time.Time, error) {
	result, err := r.client.Get(ctx, lastCleanupTimeKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, result)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
