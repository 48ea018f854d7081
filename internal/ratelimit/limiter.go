package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter used to throttle campaign sends.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewPerMinute builds a limiter allowing `limit` operations per minute.
func NewPerMinute(client *redis.Client, limit int) *Limiter {
	return &Limiter{client: client, limit: limit, window: time.Minute}
}

// Allow reports whether one more operation fits in the current window for
// the given key. The counter key expires with the window, so no cleanup
// pass is needed.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil || l.limit <= 0 {
		return true, nil
	}

	window := time.Now().Unix() / int64(l.window.Seconds())
	counterKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.limit), nil
}

// Wait blocks until Allow succeeds or the context is done. Polling at
// one-second granularity is plenty for per-minute windows.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	for {
		ok, err := l.Allow(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
