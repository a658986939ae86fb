package warehouse

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sf "github.com/snowflakedb/gosnowflake"

	"coinlake/internal/auth"
	"coinlake/internal/config"
)

// SnowflakeStore loads batches into a Snowflake VARIANT table.
type SnowflakeStore struct {
	db     *sql.DB
	schema string
	table  string
	logger *slog.Logger
}

// OpenSnowflake connects using the resolved credential. Key-pair credentials
// use JWT authentication; password credentials use the default authenticator.
func OpenSnowflake(ctx context.Context, cfg config.SnowflakeConfig, cred auth.Credential, logger *slog.Logger) (*SnowflakeStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sfCfg, err := buildDriverConfig(cfg, cred)
	if err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(sfCfg)
	if err != nil {
		return nil, fmt.Errorf("build snowflake dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snowflake: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snowflake: %w", err)
	}

	logger.Info("warehouse connected",
		"driver", "snowflake",
		"account", cfg.Account,
		"database", cfg.Database,
		"schema", cfg.Schema,
		"auth", cred.Method(),
	)

	return &SnowflakeStore{
		db:     db,
		schema: cfg.Schema,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// buildDriverConfig maps config and the credential variant onto the driver's
// connection parameters.
func buildDriverConfig(cfg config.SnowflakeConfig, cred auth.Credential) (*sf.Config, error) {
	sfCfg := &sf.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
		Schema:    cfg.Schema,
	}

	switch c := cred.(type) {
	case auth.KeyPairCredential:
		sfCfg.Authenticator = sf.AuthTypeJwt
		sfCfg.PrivateKey = c.Key
	case auth.PasswordCredential:
		sfCfg.Password = c.Password
	default:
		return nil, errors.New("unsupported credential type for snowflake")
	}

	return sfCfg, nil
}

// EnsureTable creates the destination table if missing. Defaults generate
// the row id and ingestion timestamp server-side.
func (s *SnowflakeStore) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, snowflakeCreateTableSQL(s.schema, s.table)); err != nil {
		return fmt.Errorf("create table %s.%s: %w", s.schema, s.table, err)
	}
	return nil
}

// InsertBatch writes every record in one multi-row insert and commits once.
func (s *SnowflakeStore) InsertBatch(ctx context.Context, records []json.RawMessage) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args := snowflakeInsertSQL(s.schema, s.table, records)

	start := time.Now()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.logger.Info("batch loaded",
		"rows", len(records),
		"table", s.schema+"."+s.table,
		"duration", time.Since(start),
	)
	return nil
}

// Close releases the connection pool.
func (s *SnowflakeStore) Close(ctx context.Context) error {
	return s.db.Close()
}

func snowflakeCreateTableSQL(schema, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
		record_id VARCHAR DEFAULT UUID_STRING(),
		ingested_at TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP(),
		json_data VARIANT
	)`, schema, table)
}

// snowflakeInsertSQL builds one multi-row insert. Payloads arrive as text and
// land as VARIANT via PARSE_JSON.
func snowflakeInsertSQL(schema, table string, records []json.RawMessage) (string, []any) {
	placeholders := make([]string, len(records))
	args := make([]any, len(records))
	for i, r := range records {
		placeholders[i] = "(?)"
		args[i] = string(r)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s.%s (json_data) SELECT PARSE_JSON(column1) FROM VALUES %s",
		schema, table, strings.Join(placeholders, ", "),
	)
	return query, args
}
