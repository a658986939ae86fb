package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIURL      = "https://api.coingecko.com/api/v3/coins/markets"
	DefaultAPILimit    = 10
	DefaultAPITimeout  = 10 * time.Second
	DefaultMaxAttempts = 5
	DefaultBackoffBase = 2 * time.Second
	DefaultBackoffMax  = 10 * time.Second

	DefaultDriver    = DriverSnowflake
	DefaultWarehouse = "COMPUTE_WH"
	DefaultDatabase  = "FINANCE_LAKE"
	DefaultSchema    = "RAW"
	DefaultTable     = "MARKET_DATA"

	DefaultPGPort    = 5432
	DefaultPGSSLMode = "prefer"
	DefaultPGSchema  = "public"
	DefaultPGTable   = "market_data"

	DefaultLogLevel = "info"
)

func (c *Config) applyDefaults() {
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}

	// API defaults
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.API.Limit == 0 {
		c.API.Limit = DefaultAPILimit
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxAttempts == 0 {
		c.API.MaxAttempts = DefaultMaxAttempts
	}
	if c.API.BackoffBase == 0 {
		c.API.BackoffBase = DefaultBackoffBase
	}
	if c.API.BackoffMax == 0 {
		c.API.BackoffMax = DefaultBackoffMax
	}

	// Snowflake defaults
	if c.Snowflake.Warehouse == "" {
		c.Snowflake.Warehouse = DefaultWarehouse
	}
	if c.Snowflake.Database == "" {
		c.Snowflake.Database = DefaultDatabase
	}
	if c.Snowflake.Schema == "" {
		c.Snowflake.Schema = DefaultSchema
	}
	if c.Snowflake.Table == "" {
		c.Snowflake.Table = DefaultTable
	}

	// Postgres defaults
	if c.Postgres.Port == 0 {
		c.Postgres.Port = DefaultPGPort
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = DefaultPGSSLMode
	}
	if c.Postgres.Schema == "" {
		c.Postgres.Schema = DefaultPGSchema
	}
	if c.Postgres.Table == "" {
		c.Postgres.Table = DefaultPGTable
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
