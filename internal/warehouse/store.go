package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"coinlake/internal/auth"
	"coinlake/internal/config"
)

// Store persists an ingestion batch into one append-only table.
type Store interface {
	// EnsureTable creates the destination table if it does not exist.
	// Safe to call on every run.
	EnsureTable(ctx context.Context) error

	// InsertBatch writes one row per record inside a single transaction
	// with a single commit. On error nothing from the batch is visible.
	InsertBatch(ctx context.Context, records []json.RawMessage) error

	// Close releases the connection. Must be called exactly once,
	// whether or not the load succeeded.
	Close(ctx context.Context) error
}

// Open connects to the configured warehouse backend.
func Open(ctx context.Context, cfg *config.Config, cred auth.Credential, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverSnowflake:
		return OpenSnowflake(ctx, cfg.Snowflake, cred, logger)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.Postgres, logger)
	default:
		return nil, fmt.Errorf("unknown warehouse driver %q", cfg.Driver)
	}
}
