// Package pipeline wires the fetch and load stages into one linear run.
//
// Control flow is strictly sequential: fetch → ensure table → insert →
// close. There is no partial-success path; the batch lands whole or the run
// fails.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"coinlake/internal/api"
	"coinlake/internal/config"
	"coinlake/internal/warehouse"
)

// Fetcher produces the ingestion batch. Satisfied by *api.Client.
type Fetcher interface {
	GetCoinMarkets(ctx context.Context, params api.MarketsParams) ([]api.MarketRecord, error)
}

// StoreOpener defers the warehouse connection until after a successful fetch,
// so a failed fetch never touches the warehouse.
type StoreOpener func(ctx context.Context) (warehouse.Store, error)

// Run executes one ingestion: fetch the batch, open the warehouse, ensure
// the table, insert, close. Every log line carries a generated run id.
func Run(ctx context.Context, cfg *config.Config, fetcher Fetcher, open StoreOpener, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("run_id", uuid.NewString())
	start := time.Now()

	log.Info("fetching coin markets", "url", cfg.API.URL, "limit", cfg.API.Limit)

	records, err := fetcher.GetCoinMarkets(ctx, api.MarketsParams{PerPage: cfg.API.Limit})
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	log.Info("fetch complete", "records", len(records))

	store, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open warehouse: %w", err)
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			log.Warn("close warehouse", "error", err)
		}
	}()

	if err := store.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure table: %w", err)
	}

	if err := store.InsertBatch(ctx, records); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	log.Info("ingestion complete", "rows", len(records), "duration", time.Since(start))
	return nil
}
