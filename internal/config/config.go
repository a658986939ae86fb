package config

import "time"

// Driver names for the warehouse backend.
const (
	DriverSnowflake = "snowflake"
	DriverPostgres  = "postgres"
)

// Config is the root configuration for one ingestion run. It is constructed
// once at process start and passed explicitly into the fetch and load stages.
type Config struct {
	// Driver selects the warehouse backend: "snowflake" (default) or
	// "postgres" (local development).
	Driver string `yaml:"driver"`

	Snowflake SnowflakeConfig `yaml:"snowflake"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SnowflakeConfig holds the Snowflake connection identity and destination
// table. Exactly one of Password / PrivateKeyPath is used; resolution order
// lives in the auth package.
type SnowflakeConfig struct {
	Account        string `yaml:"account"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	PrivateKeyPath string `yaml:"private_key_path"`
	Warehouse      string `yaml:"warehouse"`
	Database       string `yaml:"database"`
	Schema         string `yaml:"schema"`
	Table          string `yaml:"table"`
}

// PostgresConfig holds the development warehouse connection.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	Schema   string `yaml:"schema"`
	Table    string `yaml:"table"`
}

// APIConfig holds CoinGecko request settings.
type APIConfig struct {
	URL         string        `yaml:"url"`
	Key         string        `yaml:"key"`
	Limit       int           `yaml:"limit"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	BackoffBase time.Duration `yaml:"backoff_base"`
	BackoffMax  time.Duration `yaml:"backoff_max"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}
