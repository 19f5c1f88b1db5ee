package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// rateKeyPrefix namespaces limiter counters away from the leaderboard
// snapshots sharing the same Redis database.
const rateKeyPrefix = "streakmate:rate"

// Limit is a fixed-window request budget. Counters are keyed per budget
// name, route and client IP, so hammering one endpoint cannot exhaust a
// client's budget for the rest of the API.
type Limit struct {
	Name     string
	Requests int64
	Window   time.Duration
}

var (
	// DefaultLimit covers the whole API surface.
	DefaultLimit = Limit{Name: "api", Requests: 100, Window: time.Minute}

	// CompletionLimit additionally throttles /complete/:token. The route is
	// unauthenticated and the token sits in the URL, which makes it the
	// natural target for scanning; nobody legitimately completes their day
	// ten times a minute.
	CompletionLimit = Limit{Name: "complete", Requests: 10, Window: time.Minute}
)

// RateLimiter enforces l with a Redis counter per budget, route and client
// IP. Redis being unreachable disables throttling rather than the API.
func RateLimiter(rdb *redis.Client, l Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s:%s", rateKeyPrefix, l.Name, route, c.ClientIP())

		ctx := c.Request.Context()

		pipe := rdb.TxPipeline()
		count := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.Window)
		ttl := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("[RATE] Redis unavailable, request passed unthrottled: %v", err)
			c.Next()
			return
		}

		remaining := l.Requests - count.Val()
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(l.Requests, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl.Val()).Unix(), 10))

		if count.Val() > l.Requests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "rate limit exceeded",
				"retry_in_s": int(ttl.Val().Seconds()),
			})
			return
		}

		c.Next()
	}
}
