package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromEnv builds a Config from environment variables only, applies defaults,
// and validates it. This is the normal path for scheduled runs.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Load reads a YAML config file, expands ${VAR} references, overlays
// environment variables on top (env always wins), applies defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnv overwrites fields for which an environment variable is set.
func (c *Config) applyEnv() error {
	setString(&c.Driver, "COINLAKE_WAREHOUSE_DRIVER")

	setString(&c.Snowflake.Account, "SNOWFLAKE_ACCOUNT")
	setString(&c.Snowflake.User, "SNOWFLAKE_USER")
	setString(&c.Snowflake.Password, "SNOWFLAKE_PASSWORD")
	setString(&c.Snowflake.PrivateKeyPath, "SNOWFLAKE_PRIVATE_KEY_PATH")
	setString(&c.Snowflake.Warehouse, "SNOWFLAKE_WAREHOUSE")
	setString(&c.Snowflake.Database, "SNOWFLAKE_DATABASE")
	setString(&c.Snowflake.Schema, "SNOWFLAKE_SCHEMA")
	setString(&c.Snowflake.Table, "SNOWFLAKE_TABLE")

	setString(&c.Postgres.Host, "COINLAKE_PG_HOST")
	setString(&c.Postgres.Name, "COINLAKE_PG_DATABASE")
	setString(&c.Postgres.User, "COINLAKE_PG_USER")
	setString(&c.Postgres.Password, "COINLAKE_PG_PASSWORD")
	setString(&c.Postgres.SSLMode, "COINLAKE_PG_SSLMODE")
	setString(&c.Postgres.Schema, "COINLAKE_PG_SCHEMA")
	setString(&c.Postgres.Table, "COINLAKE_PG_TABLE")
	if err := setInt(&c.Postgres.Port, "COINLAKE_PG_PORT"); err != nil {
		return err
	}

	setString(&c.API.URL, "COINGECKO_API_URL")
	setString(&c.API.Key, "COINGECKO_API_KEY")
	if err := setInt(&c.API.Limit, "COINGECKO_API_LIMIT"); err != nil {
		return err
	}

	setString(&c.Logging.Level, "COINLAKE_LOG_LEVEL")
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	*dst = n
	return nil
}
