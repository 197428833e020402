package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outaged.yaml")
	requireNoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	requireNoError(t, err)

	if cfg.Server.Port != 8080 || cfg.Server.Mode != "release" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver by default, got %q", cfg.Storage.Driver)
	}
	if got := cfg.Aggregation.ToleranceDuration(); got != 12*time.Minute {
		t.Fatalf("expected 12m default tolerance, got %s", got)
	}
	if cfg.Query.DefaultLimit != 100 || cfg.Query.MaxLimit != 1000 {
		t.Fatalf("unexpected query defaults: %+v", cfg.Query)
	}
	if cfg.Lock.Driver != LockLocal || cfg.Lock.Stripes != 256 {
		t.Fatalf("unexpected lock defaults: %+v", cfg.Lock)
	}
	if cfg.Mongo.Database != "outages_db" || cfg.Mongo.Collection != "outage_events" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  host: "127.0.0.1"
  mode: "debug"
storage:
  driver: "mongo"
mongo:
  uri: "mongodb://mongo:27017"
  database: "grid"
aggregation:
  tolerance: "1d"
lock:
  driver: "redis"
  redis_addr: "redis:6379"
  ttl: "10s"
  wait_timeout: "2s"
`)

	cfg, err := Load(path)
	requireNoError(t, err)

	if cfg.Server.Port != 9000 || cfg.Server.Host != "127.0.0.1" {
		t.Fatalf("file values not applied: %+v", cfg.Server)
	}
	if cfg.Storage.Driver != DriverMongo || cfg.Mongo.URI != "mongodb://mongo:27017" || cfg.Mongo.Collection != "outage_events" {
		t.Fatalf("unexpected mongo config: %+v", cfg.Mongo)
	}
	if got := cfg.Aggregation.ToleranceDuration(); got != 24*time.Hour {
		t.Fatalf("expected 24h tolerance, got %s", got)
	}
	if cfg.Lock.TTLDuration() != 10*time.Second || cfg.Lock.WaitTimeoutDuration() != 2*time.Second {
		t.Fatalf("unexpected lock durations: %+v", cfg.Lock)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
aggregation:
  tolerance: "5m"
`)
	t.Setenv("OUTAGED_AGGREGATION__TOLERANCE", "15m")
	t.Setenv("OUTAGED_SERVER__PORT", "9090")
	t.Setenv("OUTAGED_STORAGE__DRIVER", "memory")

	cfg, err := Load(path)
	requireNoError(t, err)

	if got := cfg.Aggregation.ToleranceDuration(); got != 15*time.Minute {
		t.Fatalf("expected env tolerance 15m, got %s", got)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
}

func TestLoad_InvalidConfigFailsStartup(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "port",
			body:    "server:\n  port: -1\n",
			wantErr: "invalid server.port",
		},
		{
			name:    "mode",
			body:    "server:\n  mode: \"verbose\"\n",
			wantErr: "invalid server.mode",
		},
		{
			name:    "storage driver",
			body:    "storage:\n  driver: \"sqlite\"\n",
			wantErr: "unsupported storage.driver",
		},
		{
			name:    "zero tolerance",
			body:    "aggregation:\n  tolerance: \"0s\"\n",
			wantErr: "invalid aggregation.tolerance",
		},
		{
			name:    "garbage tolerance",
			body:    "aggregation:\n  tolerance: \"soon\"\n",
			wantErr: "invalid aggregation.tolerance",
		},
		{
			name:    "empty dsn",
			body:    "database:\n  dsn: \"\"\n",
			wantErr: "database.dsn is required",
		},
		{
			name:    "redis without addr",
			body:    "lock:\n  driver: \"redis\"\n  redis_addr: \"\"\n",
			wantErr: "lock.redis_addr is required",
		},
		{
			name:    "lock driver",
			body:    "lock:\n  driver: \"zookeeper\"\n",
			wantErr: "unsupported lock.driver",
		},
		{
			name:    "limits",
			body:    "query:\n  default_limit: 500\n  max_limit: 100\n",
			wantErr: "query.max_limit must be >=",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q error, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to load config file") {
		t.Fatalf("expected file load error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
