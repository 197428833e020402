//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/gridwatch-lab/outage-events/internal/aggregation"
	v1 "github.com/gridwatch-lab/outage-events/internal/api/v1"
	"github.com/gridwatch-lab/outage-events/internal/core/lock"
	"github.com/gridwatch-lab/outage-events/internal/core/storage/memory"
)

const redisStartupTimeout = 60 * time.Second

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), redisStartupTimeout)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(redisStartupTimeout),
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(redisStartupTimeout),
		),
	}
	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		terminateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cont.Terminate(terminateCtx)
	})

	host, err := cont.Host(ctx)
	require.NoError(t, err)
	port, err := cont.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisLocker(t *testing.T) {
	client := startRedis(t)

	t.Run("serializes one key across lockers", func(t *testing.T) {
		// Two lockers on one Redis stand in for two replicas.
		a := lock.NewRedisLocker(client, lock.RedisOptions{Prefix: "test:serialize:"})
		b := lock.NewRedisLocker(client, lock.RedisOptions{Prefix: "test:serialize:"})

		var (
			inside  int32
			maxSeen int32
			wg      sync.WaitGroup
		)
		for i := 0; i < 20; i++ {
			locker := a
			if i%2 == 1 {
				locker = b
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := locker.Lock(context.Background(), "c-1/panel_outage")
				require.NoError(t, err)
				defer unlock()

				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxSeen)
					if n <= cur || atomic.CompareAndSwapInt32(&maxSeen, cur, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
			}()
		}
		wg.Wait()
		require.Equal(t, int32(1), maxSeen)
	})

	t.Run("wait timeout", func(t *testing.T) {
		locker := lock.NewRedisLocker(client, lock.RedisOptions{
			Prefix:      "test:timeout:",
			WaitTimeout: 50 * time.Millisecond,
		})

		unlock, err := locker.Lock(context.Background(), "k")
		require.NoError(t, err)
		defer unlock()

		_, err = locker.Lock(context.Background(), "k")
		require.ErrorIs(t, err, lock.ErrTimeout)
	})

	t.Run("ttl frees a crashed holder", func(t *testing.T) {
		locker := lock.NewRedisLocker(client, lock.RedisOptions{
			Prefix:      "test:ttl:",
			TTL:         100 * time.Millisecond,
			WaitTimeout: 2 * time.Second,
		})

		_, err := locker.Lock(context.Background(), "k") // never released
		require.NoError(t, err)

		unlock, err := locker.Lock(context.Background(), "k")
		require.NoError(t, err)
		unlock()
	})

	t.Run("aggregator creates once under contention", func(t *testing.T) {
		store := memory.NewStore()
		locker := lock.NewRedisLocker(client, lock.RedisOptions{Prefix: "test:agg:", WaitTimeout: 10 * time.Second})
		agg := aggregation.New(store, locker, aggregation.DefaultTolerance, nil)

		base := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)
		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < 40; i++ {
			sig := v1.Signal{
				ControllerID: "C",
				OutageType:   v1.PanelOutage,
				Timestamp:    v1.NewTimestamp(base.Add(time.Duration(i) * time.Second)),
			}
			g.Go(func() error {
				_, err := agg.Submit(ctx, sig)
				return err
			})
		}
		require.NoError(t, g.Wait())
		require.Equal(t, 1, store.Len())
	})
}
