package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *HarvesterConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.BackoffBase <= 0 {
		return errors.New("api.backoff_base must be > 0")
	}
	if c.API.BackoffMax < c.API.BackoffBase {
		return fmt.Errorf("api.backoff_max (%v) cannot be less than api.backoff_base (%v)",
			c.API.BackoffMax, c.API.BackoffBase)
	}
	if c.API.RatePerSec <= 0 {
		return errors.New("api.rate_per_sec must be > 0")
	}

	if c.Discovery.PageSize < 1 || c.Discovery.PageSize > 250 {
		return fmt.Errorf("discovery.page_size must be between 1 and 250, got %d", c.Discovery.PageSize)
	}
	if len(c.Discovery.Regions) == 0 {
		return errors.New("discovery.regions must not be empty")
	}

	if c.Fetcher.BatchSize < 1 || c.Fetcher.BatchSize > MaxBatchSize {
		return fmt.Errorf("fetcher.batch_size must be between 1 and %d, got %d", MaxBatchSize, c.Fetcher.BatchSize)
	}
	if c.Fetcher.Concurrency < 1 {
		return errors.New("fetcher.concurrency must be >= 1")
	}

	if c.Writers.BatchSize < 1 {
		return errors.New("writers.batch_size must be >= 1")
	}
	if c.Writers.BufferSize < 1 {
		return errors.New("writers.buffer_size must be >= 1")
	}

	if !c.Database.Enabled && c.Output.CSVPath == "" {
		return errors.New("at least one destination is required: output.csv_path or database.enabled")
	}
	if c.Database.Enabled {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
