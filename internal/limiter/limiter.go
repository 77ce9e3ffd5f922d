// Package limiter bounds the number of fetches allowed in flight at once.
package limiter

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// DefaultCap is the concurrency bound used when none is configured.
const DefaultCap = 10

// Limiter is a counting semaphore with a fixed capacity. A fetch may only
// begin network I/O after Acquire returns nil, and must call Release exactly
// once afterwards, on every exit path.
type Limiter struct {
	sem *semaphore.Weighted
	cap int
}

// New builds a Limiter with capacity n. Values <= 0 fall back to DefaultCap.
func New(n int) *Limiter {
	if n <= 0 {
		n = DefaultCap
	}
	return &Limiter{
		sem: semaphore.NewWeighted(int64(n)),
		cap: n,
	}
}

// Acquire blocks until a slot is free or the context finishes.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire fetch slot: %w", err)
	}
	return nil
}

// Release returns a slot to the pool.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Cap reports the configured capacity. The HTTP transport's connection pool
// is sized from this so connection creation stays bounded by the same N.
func (l *Limiter) Cap() int {
	return l.cap
}
