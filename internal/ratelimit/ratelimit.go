package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces requests per key.
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter keeps one token bucket per key in memory.
type InMemoryLimiter struct {
	keys map[string]*rate.Limiter
	mu   sync.Mutex
	r    rate.Limit
	b    int
}

// NewInMemoryLimiter creates a limiter allowing one request per interval for
// each key. A zero interval disables pacing.
// Example: NewInMemoryLimiter(500*time.Millisecond) -> at most 2 requests per second per host
func NewInMemoryLimiter(interval time.Duration) *InMemoryLimiter {
	r := rate.Inf
	if interval > 0 {
		r = rate.Every(interval)
	}
	return &InMemoryLimiter{
		keys: make(map[string]*rate.Limiter),
		r:    r,
		b:    1,
	}
}

// Wait blocks until a request for key is allowed or ctx is done.
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, exists := l.keys[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.keys[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
