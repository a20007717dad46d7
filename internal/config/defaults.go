package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultScreenerURL = "https://query1.finance.yahoo.com/v1/finance/screener"
	DefaultQuoteURL    = "https://query2.finance.yahoo.com/v7/finance/quote"
	DefaultCookieURL   = "https://fc.yahoo.com"
	DefaultCrumbURL    = "https://query1.finance.yahoo.com/v1/test/getcrumb"

	// The endpoints reject clients without a browser-like user agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultBackoffBase    = 1 * time.Second
	DefaultBackoffMax     = 60 * time.Second
	DefaultRatePerSec     = 2.0
	DefaultAcquireTimeout = 30 * time.Second

	DefaultPageSize = 100

	DefaultBatchSize   = 500
	MaxBatchSize       = 1000 // API limit on symbols per quote request
	DefaultConcurrency = 1
	DefaultBatchDelay  = 10 * time.Second

	DefaultWriterBatchSize     = 500
	DefaultWriterFlushInterval = 1 * time.Second
	DefaultWriterBufferSize    = 10000

	DefaultDBPort   = 5432
	DefaultDBSSL    = "prefer"
	DefaultMaxConns = 10
	DefaultMinConns = 2
)

// DefaultRegions is the region set harvested when none is configured.
var DefaultRegions = []string{"us"}

// ApplyDefaults fills in defaults for every unset optional field.
func (c *HarvesterConfig) ApplyDefaults() {
	// API defaults
	if c.API.ScreenerURL == "" {
		c.API.ScreenerURL = DefaultScreenerURL
	}
	if c.API.QuoteURL == "" {
		c.API.QuoteURL = DefaultQuoteURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.BackoffBase == 0 {
		c.API.BackoffBase = DefaultBackoffBase
	}
	if c.API.BackoffMax == 0 {
		c.API.BackoffMax = DefaultBackoffMax
	}
	if c.API.RatePerSec == 0 {
		c.API.RatePerSec = DefaultRatePerSec
	}

	// Session defaults
	if c.Session.CookieURL == "" {
		c.Session.CookieURL = DefaultCookieURL
	}
	if c.Session.CrumbURL == "" {
		c.Session.CrumbURL = DefaultCrumbURL
	}
	if c.Session.AcquireTimeout == 0 {
		c.Session.AcquireTimeout = DefaultAcquireTimeout
	}

	// Discovery defaults
	if c.Discovery.PageSize == 0 {
		c.Discovery.PageSize = DefaultPageSize
	}
	if len(c.Discovery.Regions) == 0 {
		c.Discovery.Regions = DefaultRegions
	}

	// Fetcher defaults
	if c.Fetcher.BatchSize == 0 {
		c.Fetcher.BatchSize = DefaultBatchSize
	}
	if c.Fetcher.Concurrency == 0 {
		c.Fetcher.Concurrency = DefaultConcurrency
	}
	if c.Fetcher.BatchDelay == 0 {
		c.Fetcher.BatchDelay = DefaultBatchDelay
	}

	// Writers defaults
	if c.Writers.BatchSize == 0 {
		c.Writers.BatchSize = DefaultWriterBatchSize
	}
	if c.Writers.FlushInterval == 0 {
		c.Writers.FlushInterval = DefaultWriterFlushInterval
	}
	if c.Writers.BufferSize == 0 {
		c.Writers.BufferSize = DefaultWriterBufferSize
	}

	// Database defaults
	if c.Database.Enabled {
		applyDBDefaults(&c.Database.Postgres)
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSL
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
