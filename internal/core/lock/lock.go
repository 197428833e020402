// Package lock serializes work per grouping key.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gridwatch-lab/outage-events/internal/core/partition"
)

// ErrTimeout is returned when a lock could not be acquired before the
// caller's context or the locker's wait budget ran out.
var ErrTimeout = errors.New("timed out acquiring key lock")

// Unlock releases a previously acquired lock. Safe to call once.
type Unlock func()

// Locker grants exclusive access to a key for the duration of one unit of work.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Striped is an in-process Locker. Keys hash onto a fixed set of stripes, so
// two keys may share a stripe and serialize with each other; one key never
// runs concurrently with itself.
type Striped struct {
	stripes []chan struct{}
}

// NewStriped creates a striped locker with n stripes (partition.Count if n <= 0).
func NewStriped(n int) *Striped {
	if n <= 0 {
		n = partition.Count
	}
	stripes := make([]chan struct{}, n)
	for i := range stripes {
		stripes[i] = make(chan struct{}, 1)
	}
	return &Striped{stripes: stripes}
}

// Lock blocks until the key's stripe is free or ctx is done.
func (s *Striped) Lock(ctx context.Context, key string) (Unlock, error) {
	stripe := s.stripes[partition.Of(key, len(s.stripes))]

	select {
	case stripe <- struct{}{}:
		return func() { <-stripe }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrTimeout, key, ctx.Err())
	}
}

// Stripes returns the number of stripes.
func (s *Striped) Stripes() int {
	return len(s.stripes)
}

type timed struct {
	Locker
	wait time.Duration
}

// WithWaitTimeout bounds how long l waits for a key. d <= 0 returns l unchanged.
func WithWaitTimeout(l Locker, d time.Duration) Locker {
	if d <= 0 {
		return l
	}
	return &timed{Locker: l, wait: d}
}

func (t *timed) Lock(ctx context.Context, key string) (Unlock, error) {
	ctx, cancel := context.WithTimeout(ctx, t.wait)
	defer cancel()
	return t.Locker.Lock(ctx, key)
}
