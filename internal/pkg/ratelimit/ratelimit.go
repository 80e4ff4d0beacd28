// Package ratelimit throttles outbound fare-finder calls through a shared
// redis bucket, so a fleet of clients stays under the remote API's limits.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	limiter *redis_rate.Limiter
	key     string
	rps     int
}

func New(rdb *redis.Client, key string, rps int) *Limiter {
	return &Limiter{
		limiter: redis_rate.NewLimiter(rdb),
		key:     key,
		rps:     rps,
	}
}

// Allow reports how long the caller must wait before issuing the next
// request. A zero duration means the request may go out immediately.
func (l *Limiter) Allow(ctx context.Context) (time.Duration, error) {
	res, err := l.limiter.Allow(ctx, fmt.Sprintf("limit:%s", l.key), redis_rate.PerSecond(l.rps))
	if err != nil {
		return 0, fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return res.RetryAfter, nil
	}

	return 0, nil
}
