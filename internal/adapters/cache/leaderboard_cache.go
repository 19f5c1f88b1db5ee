package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

// Snapshots expire after a short window; the worker usually refreshes well
// before expiry on any write.
const snapshotTTL = 30 * time.Minute

// snapshotExpiry caps the TTL at the next UTC midnight. Streaks are a
// calendar-day computation, so a snapshot written late in the day must not
// survive the day flip and overstate anyone's streak tomorrow.
func snapshotExpiry(now time.Time) time.Duration {
	ttl := snapshotTTL
	utc := now.UTC()
	midnight := utc.Truncate(24 * time.Hour).Add(24 * time.Hour)
	if until := midnight.Sub(utc); until < ttl {
		ttl = until
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

// RedisLeaderboardCache stores the latest ranked leaderboard per group as a
// JSON blob. A corrupted or missing key is treated as a miss, never an error
// the caller has to care about.
type RedisLeaderboardCache struct {
	client *redis.Client
}

func NewRedisLeaderboardCache(client *redis.Client) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{client: client}
}

func (c *RedisLeaderboardCache) cacheKey(groupID string) string {
	return fmt.Sprintf("leaderboard:%s", groupID)
}

func (c *RedisLeaderboardCache) Get(ctx context.Context, groupID string) (*domain.Leaderboard, error) {
	key := c.cacheKey(groupID)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
		return nil, err
	}

	var leaderboard domain.Leaderboard
	if err := json.Unmarshal([]byte(val), &leaderboard); err != nil {
		log.Printf("[CACHE] Corrupted snapshot for group %s, cleaning up key", groupID)
		c.client.Del(ctx, key)
		return nil, err
	}

	return &leaderboard, nil
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, leaderboard *domain.Leaderboard) error {
	data, err := json.Marshal(leaderboard)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.cacheKey(leaderboard.GroupID), data, snapshotExpiry(time.Now())).Err()
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context, groupID string) {
	if err := c.client.Del(ctx, c.cacheKey(groupID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for group %s: %v", groupID, err)
	}
}
