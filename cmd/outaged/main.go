package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/gridwatch-lab/outage-events/internal/aggregation"
	corecfg "github.com/gridwatch-lab/outage-events/internal/core/config"
	"github.com/gridwatch-lab/outage-events/internal/core/lock"
	"github.com/gridwatch-lab/outage-events/internal/core/storage"
	"github.com/gridwatch-lab/outage-events/internal/core/storage/memory"
	"github.com/gridwatch-lab/outage-events/internal/core/storage/mongodb"
	"github.com/gridwatch-lab/outage-events/internal/core/storage/postgres"
	"github.com/gridwatch-lab/outage-events/internal/ingestion"
	"github.com/gridwatch-lab/outage-events/internal/metrics"
	"github.com/gridwatch-lab/outage-events/internal/migrations"
	"github.com/gridwatch-lab/outage-events/internal/projection"
	"github.com/gridwatch-lab/outage-events/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional)")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Mode == "debug" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	slog.Info("Loaded config",
		"storage_driver", cfg.Storage.Driver,
		"lock_driver", cfg.Lock.Driver,
		"tolerance", cfg.Aggregation.ToleranceDuration())

	if err := run(cfg); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

// run wires the service and blocks until a shutdown signal. Every resource
// opened here is released before it returns, including on startup failure.
func run(cfg *corecfg.Config) error {
	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initialize %s event store: %w", cfg.Storage.Driver, err)
	}
	defer closeStore()

	// 3. Initialize per-key lock
	locker, closeLocker, err := openLocker(cfg)
	if err != nil {
		return fmt.Errorf("initialize %s key lock: %w", cfg.Lock.Driver, err)
	}
	defer closeLocker()

	// 4. Initialize Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// 5. Initialize Aggregation
	aggregator := aggregation.New(store, locker, cfg.Aggregation.ToleranceDuration(), m)

	// 6. Initialize Ingestion and Projection
	ingestionSvc := ingestion.NewService(aggregator, cfg.Server.MaxBodySizeMB)
	projectionSvc := projection.NewService(store, cfg.Query.DefaultLimit, cfg.Query.MaxLimit, m)

	// 7. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, registry, cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 8. Start Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// HTTP server blocks until ctx is cancelled.
		return srv.Run(gctx)
	})

	return g.Wait()
}

// Startup hooks, replaced in tests.
var (
	openStore  = openEventStore
	openLocker = openKeyLocker
)

// openEventStore connects the configured event store. The returned func releases it.
func openEventStore(cfg *corecfg.Config) (storage.EventStore, func(), error) {
	switch cfg.Storage.Driver {
	case corecfg.DriverPostgres:
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.RunMigrations(db, cfg.Database.AutoMigrate); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return adapter, closer("postgres", adapter), nil

	case corecfg.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, err
		}
		return s, closer("mongo", s), nil

	case corecfg.DriverMemory:
		slog.Warn("Using in-memory event store; events are lost on restart")
		return memory.NewStore(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}

// openKeyLocker builds the per-key locker. The returned func releases it.
func openKeyLocker(cfg *corecfg.Config) (lock.Locker, func(), error) {
	switch cfg.Lock.Driver {
	case corecfg.LockLocal:
		return lock.WithWaitTimeout(lock.NewStriped(cfg.Lock.Stripes), cfg.Lock.WaitTimeoutDuration()), func() {}, nil

	case corecfg.LockRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Lock.RedisAddr})
		locker := lock.NewRedisLocker(client, lock.RedisOptions{
			TTL:         cfg.Lock.TTLDuration(),
			WaitTimeout: cfg.Lock.WaitTimeoutDuration(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := locker.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		slog.Info("[Redis] Distributed key lock ready", "addr", cfg.Lock.RedisAddr)
		return locker, closer("redis", client), nil
	}
	return nil, nil, errors.New("unsupported lock driver " + cfg.Lock.Driver)
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Error("Failed to close resource", "resource", name, "error", err)
		}
	}
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
