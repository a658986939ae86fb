package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"coinlake/internal/config"
)

// PostgresStore is the development backend: same row shape as Snowflake with
// JSONB standing in for VARIANT.
type PostgresStore struct {
	conn   *pgx.Conn
	schema string
	table  string
	logger *slog.Logger
}

// OpenPostgres connects to the development warehouse.
func OpenPostgres(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := pgx.Connect(ctx, BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("warehouse connected",
		"driver", "postgres",
		"host", cfg.Host,
		"database", cfg.Name,
	)

	return &PostgresStore{
		conn:   conn,
		schema: cfg.Schema,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// EnsureTable creates the destination table if missing.
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, postgresCreateTableSQL(s.schema, s.table)); err != nil {
		return fmt.Errorf("create table %s.%s: %w", s.schema, s.table, err)
	}
	return nil
}

// InsertBatch writes every record in one multi-row insert and commits once.
func (s *PostgresStore) InsertBatch(ctx context.Context, records []json.RawMessage) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query, args := postgresInsertSQL(s.schema, s.table, records)

	start := time.Now()
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.logger.Info("batch loaded",
		"rows", len(records),
		"table", s.schema+"."+s.table,
		"duration", time.Since(start),
	)
	return nil
}

// Close releases the connection.
func (s *PostgresStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}

func postgresCreateTableSQL(schema, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
		record_id UUID DEFAULT gen_random_uuid(),
		ingested_at TIMESTAMPTZ DEFAULT now(),
		json_data JSONB
	)`, schema, table)
}

func postgresInsertSQL(schema, table string, records []json.RawMessage) (string, []any) {
	placeholders := make([]string, len(records))
	args := make([]any, len(records))
	for i, r := range records {
		placeholders[i] = fmt.Sprintf("($%d::jsonb)", i+1)
		args[i] = string(r)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s.%s (json_data) VALUES %s",
		schema, table, strings.Join(placeholders, ", "),
	)
	return query, args
}
