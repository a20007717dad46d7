package config

import "time"

// HarvesterConfig is the root configuration for a harvester run.
type HarvesterConfig struct {
	Instance  InstanceConfig  `yaml:"instance"`
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	Writers   WritersConfig   `yaml:"writers"`
	Database  DatabaseConfig  `yaml:"database"`
	Output    OutputConfig    `yaml:"output"`
}

// InstanceConfig identifies this harvester.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds quote-API settings and retry policy.
type APIConfig struct {
	ScreenerURL string        `yaml:"screener_url"`
	QuoteURL    string        `yaml:"quote_url"`
	UserAgent   string        `yaml:"user_agent"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	BackoffBase time.Duration `yaml:"backoff_base"`
	BackoffMax  time.Duration `yaml:"backoff_max"`
	RatePerSec  float64       `yaml:"rate_per_sec"` // outbound request pacing
}

// SessionConfig holds credential acquisition settings.
type SessionConfig struct {
	CookieURL      string        `yaml:"cookie_url"`
	CrumbURL       string        `yaml:"crumb_url"`
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
}

// DiscoveryConfig holds screener pagination settings.
type DiscoveryConfig struct {
	PageSize int      `yaml:"page_size"`
	Regions  []string `yaml:"regions"`
}

// FetcherConfig holds batch quote retrieval settings.
type FetcherConfig struct {
	BatchSize   int           `yaml:"batch_size"`
	Concurrency int           `yaml:"concurrency"`
	BatchDelay  time.Duration `yaml:"batch_delay"` // pause between sequential batches
}

// WritersConfig holds buffered writer settings.
type WritersConfig struct {
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	BufferSize    int           `yaml:"buffer_size"`
}

// DatabaseConfig holds the optional Postgres destination.
type DatabaseConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// OutputConfig holds the optional CSV destination.
type OutputConfig struct {
	CSVPath string `yaml:"csv_path"`
}
