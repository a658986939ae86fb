package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SNOWFLAKE_ACCOUNT", "xy12345")
	t.Setenv("SNOWFLAKE_USER", "LOADER")
	t.Setenv("SNOWFLAKE_PASSWORD", "hunter2")
	t.Setenv("COINGECKO_API_LIMIT", "25")
	t.Setenv("COINLAKE_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Snowflake.Account != "xy12345" {
		t.Errorf("Snowflake.Account = %q, want %q", cfg.Snowflake.Account, "xy12345")
	}
	if cfg.API.Limit != 25 {
		t.Errorf("API.Limit = %d, want 25", cfg.API.Limit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.Driver != DriverSnowflake {
		t.Errorf("Driver = %q, want %q", cfg.Driver, DriverSnowflake)
	}
	if cfg.API.URL != DefaultAPIURL {
		t.Errorf("API.URL = %q, want %q", cfg.API.URL, DefaultAPIURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("API.Timeout = %v, want 10s", cfg.API.Timeout)
	}
	if cfg.API.MaxAttempts != 5 {
		t.Errorf("API.MaxAttempts = %d, want 5", cfg.API.MaxAttempts)
	}
	if cfg.Snowflake.Warehouse != "COMPUTE_WH" {
		t.Errorf("Snowflake.Warehouse = %q, want COMPUTE_WH", cfg.Snowflake.Warehouse)
	}
	if cfg.Snowflake.Table != "MARKET_DATA" {
		t.Errorf("Snowflake.Table = %q, want MARKET_DATA", cfg.Snowflake.Table)
	}
}

func TestFromEnv_BadLimit(t *testing.T) {
	t.Setenv("COINGECKO_API_LIMIT", "ten")

	if _, err := FromEnv(); err == nil {
		t.Fatal("FromEnv succeeded with non-numeric limit, want error")
	}
}

func TestLoad(t *testing.T) {
	yaml := `
driver: postgres
postgres:
  host: localhost
  name: coinlake_dev
  user: dev
  password: devpass
api:
  limit: 5
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Driver != DriverPostgres {
		t.Errorf("Driver = %q, want postgres", cfg.Driver)
	}
	if cfg.Postgres.Host != "localhost" {
		t.Errorf("Postgres.Host = %q, want localhost", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != DefaultPGPort {
		t.Errorf("Postgres.Port = %d, want %d", cfg.Postgres.Port, DefaultPGPort)
	}
	if cfg.API.Limit != 5 {
		t.Errorf("API.Limit = %d, want 5", cfg.API.Limit)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_SF_PASSWORD", "secret123")

	yaml := `
snowflake:
  account: xy12345
  user: LOADER
  password: ${TEST_SF_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Snowflake.Password != "secret123" {
		t.Errorf("Snowflake.Password = %q, want %q", cfg.Snowflake.Password, "secret123")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("SNOWFLAKE_TABLE", "MARKET_DATA_V2")

	yaml := `
snowflake:
  table: MARKET_DATA_OLD
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Snowflake.Table != "MARKET_DATA_V2" {
		t.Errorf("Snowflake.Table = %q, env var should win over file", cfg.Snowflake.Table)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load succeeded for missing file, want error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		var c Config
		c.applyDefaults()
		return &c
	}

	t.Run("valid defaults", func(t *testing.T) {
		if err := base().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("bad driver", func(t *testing.T) {
		c := base()
		c.Driver = "bigquery"
		err := c.Validate()
		if err == nil || !strings.Contains(err.Error(), "driver") {
			t.Errorf("Validate() = %v, want driver error", err)
		}
	})

	t.Run("zero limit", func(t *testing.T) {
		c := base()
		c.API.Limit = -1
		if err := c.Validate(); err == nil {
			t.Error("Validate() = nil, want limit error")
		}
	})

	t.Run("bad postgres port", func(t *testing.T) {
		c := base()
		c.Driver = DriverPostgres
		c.Postgres.Port = 70000
		if err := c.Validate(); err == nil {
			t.Error("Validate() = nil, want port error")
		}
	})
}
