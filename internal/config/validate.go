package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// Warehouse identity (account, user) and credentials are deliberately not
// checked here: missing identity fails at connection time, and credential
// resolution has its own pre-flight check in the auth package.
func (c *Config) Validate() error {
	if c.Driver != DriverSnowflake && c.Driver != DriverPostgres {
		return fmt.Errorf("driver must be %q or %q, got %q", DriverSnowflake, DriverPostgres, c.Driver)
	}

	if c.API.URL == "" {
		return errors.New("api.url is required")
	}
	if c.API.Limit < 1 {
		return fmt.Errorf("api.limit must be >= 1, got %d", c.API.Limit)
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api.max_attempts must be >= 1, got %d", c.API.MaxAttempts)
	}
	if c.API.BackoffBase < 0 || c.API.BackoffMax < 0 {
		return errors.New("api backoff durations must not be negative")
	}

	if c.Driver == DriverPostgres {
		if c.Postgres.Port < 1 || c.Postgres.Port > 65535 {
			return fmt.Errorf("postgres.port must be between 1 and 65535, got %d", c.Postgres.Port)
		}
	}

	return nil
}
