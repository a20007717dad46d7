package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-harvester
api:
  screener_url: https://example.com/screener
  quote_url: https://example.com/quote
discovery:
  page_size: 50
  regions: [us, gb]
output:
  csv_path: /tmp/out.csv
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-harvester" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-harvester")
	}
	if cfg.API.ScreenerURL != "https://example.com/screener" {
		t.Errorf("API.ScreenerURL = %q", cfg.API.ScreenerURL)
	}
	if cfg.Discovery.PageSize != 50 {
		t.Errorf("Discovery.PageSize = %d, want 50", cfg.Discovery.PageSize)
	}
	if len(cfg.Discovery.Regions) != 2 || cfg.Discovery.Regions[0] != "us" {
		t.Errorf("Discovery.Regions = %v, want [us gb]", cfg.Discovery.Regions)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-harvester
database:
  enabled: true
  postgres:
    host: localhost
    name: quotes_db
    user: harvester
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Postgres.Password != "secret123" {
		t.Errorf("Database.Postgres.Password = %q, want %q", cfg.Database.Postgres.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-harvester
output:
  csv_path: /tmp/out.csv
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.ScreenerURL != DefaultScreenerURL {
		t.Errorf("API.ScreenerURL = %q, want default", cfg.API.ScreenerURL)
	}
	if cfg.API.Timeout != DefaultAPITimeout {
		t.Errorf("API.Timeout = %v, want %v", cfg.API.Timeout, DefaultAPITimeout)
	}
	if cfg.API.MaxRetries != DefaultMaxRetries {
		t.Errorf("API.MaxRetries = %d, want %d", cfg.API.MaxRetries, DefaultMaxRetries)
	}
	if cfg.API.BackoffBase != DefaultBackoffBase {
		t.Errorf("API.BackoffBase = %v, want %v", cfg.API.BackoffBase, DefaultBackoffBase)
	}
	if cfg.Discovery.PageSize != DefaultPageSize {
		t.Errorf("Discovery.PageSize = %d, want %d", cfg.Discovery.PageSize, DefaultPageSize)
	}
	if len(cfg.Discovery.Regions) != 1 || cfg.Discovery.Regions[0] != "us" {
		t.Errorf("Discovery.Regions = %v, want [us]", cfg.Discovery.Regions)
	}
	if cfg.Fetcher.BatchSize != DefaultBatchSize {
		t.Errorf("Fetcher.BatchSize = %d, want %d", cfg.Fetcher.BatchSize, DefaultBatchSize)
	}
	if cfg.Fetcher.Concurrency != DefaultConcurrency {
		t.Errorf("Fetcher.Concurrency = %d, want %d", cfg.Fetcher.Concurrency, DefaultConcurrency)
	}
	if cfg.Writers.FlushInterval != DefaultWriterFlushInterval {
		t.Errorf("Writers.FlushInterval = %v, want %v", cfg.Writers.FlushInterval, DefaultWriterFlushInterval)
	}
	if cfg.Session.CrumbURL != DefaultCrumbURL {
		t.Errorf("Session.CrumbURL = %q, want default", cfg.Session.CrumbURL)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *HarvesterConfig {
		cfg := &HarvesterConfig{}
		cfg.Instance.ID = "test"
		cfg.Output.CSVPath = "/tmp/out.csv"
		cfg.ApplyDefaults()
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing instance id", func(t *testing.T) {
		cfg := valid()
		cfg.Instance.ID = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing instance.id")
		}
	})

	t.Run("page size out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Discovery.PageSize = 500
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for page_size > 250")
		}
	})

	t.Run("batch size above API limit", func(t *testing.T) {
		cfg := valid()
		cfg.Fetcher.BatchSize = MaxBatchSize + 1
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for batch_size above limit")
		}
	})

	t.Run("backoff max below base", func(t *testing.T) {
		cfg := valid()
		cfg.API.BackoffBase = 10 * time.Second
		cfg.API.BackoffMax = time.Second
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for backoff_max < backoff_base")
		}
	})

	t.Run("no destination", func(t *testing.T) {
		cfg := valid()
		cfg.Output.CSVPath = ""
		cfg.Database.Enabled = false
		if err := cfg.Validate(); err == nil {
			t.Error("expected error when no destination configured")
		}
	})

	t.Run("database enabled requires connection fields", func(t *testing.T) {
		cfg := valid()
		cfg.Database.Enabled = true
		cfg.Database.Postgres = DBConfig{Host: "localhost", Name: "db", User: "u", MaxConns: 5}
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for missing database password")
		}
	})
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}
