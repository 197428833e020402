package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix = "outaged:lock:"
	defaultRetryDelay  = 10 * time.Millisecond
	releaseTimeout     = 2 * time.Second
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock taken over by another replica is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions configures a RedisLocker.
type RedisOptions struct {
	// TTL bounds how long a crashed holder can block a key.
	TTL time.Duration
	// WaitTimeout bounds how long Lock retries before giving up.
	WaitTimeout time.Duration
	// RetryDelay is the pause between acquisition attempts.
	RetryDelay time.Duration
	// Prefix namespaces lock keys.
	Prefix string
}

// RedisLocker serializes a key across every replica sharing one Redis.
type RedisLocker struct {
	client redis.UniversalClient
	opts   RedisOptions
}

// NewRedisLocker creates a locker backed by client.
func NewRedisLocker(client redis.UniversalClient, opts RedisOptions) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Second
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 3 * time.Second
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultRedisPrefix
	}
	return &RedisLocker{client: client, opts: opts}
}

// Lock acquires the key with SET NX PX, retrying until WaitTimeout.
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := l.opts.Prefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.opts.WaitTimeout)
	defer cancel()

	ticker := time.NewTicker(l.opts.RetryDelay)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, redisKey, token, l.opts.TTL).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("acquire redis lock %s: %w", key, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrTimeout, key, waitCtx.Err())
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) Unlock {
	return func() {
		// Release must run even if the request context is already cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			slog.Warn("[RedisLock] Failed to release lock; it will expire after TTL",
				"key", redisKey,
				"ttl", l.opts.TTL,
				"error", err)
		}
	}
}

// Ping reports whether Redis is reachable.
func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
