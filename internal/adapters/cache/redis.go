package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig carries the connection settings cmd/api reads from the
// environment. One database holds both the leaderboard snapshots and the
// rate-limiter counters; the key prefixes keep them apart.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// NewSnapshotClient opens the Redis connection backing the leaderboard
// snapshot cache. Snapshot reads sit on the request path, so the read and
// write timeouts stay well under the HTTP handler deadline: a slow Redis
// must degrade into a cache miss, not a hung request. The pool only has to
// cover the refresh worker plus the handlers of a single API instance.
func NewSnapshotClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis at %s is unreachable: %w", cfg.addr(), err)
	}

	return rdb, nil
}
