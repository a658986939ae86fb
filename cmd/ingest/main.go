// Command ingest runs one fetch-and-load cycle: CoinGecko market data in,
// warehouse rows out. It is meant to be invoked by an external scheduler
// (cron, GitHub Actions); there is no loop and no daemon mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"coinlake/internal/api"
	"coinlake/internal/auth"
	"coinlake/internal/config"
	"coinlake/internal/pipeline"
	"coinlake/internal/retry"
	"coinlake/internal/version"
	"coinlake/internal/warehouse"
)

func main() {
	configPath := flag.String("config", "", "optional path to YAML config file (env vars always win)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Local convenience, same role as the original .env workflow. Missing
	// file is fine; scheduled environments inject real env vars.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Logging.Level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingest",
		"version", version.Version,
		"commit", version.Commit,
		"driver", cfg.Driver,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.FromEnv()
}

// run resolves credentials before any network activity, then executes the
// linear pipeline.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	cred, err := resolveCredential(cfg)
	if err != nil {
		return err
	}
	logger.Info("credentials resolved", "auth", cred.Method())

	client := api.NewClient(
		cfg.API.URL,
		cfg.API.Key,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.API.MaxAttempts,
			BaseDelay:   cfg.API.BackoffBase,
			MaxDelay:    cfg.API.BackoffMax,
		}),
	)

	open := func(ctx context.Context) (warehouse.Store, error) {
		return warehouse.Open(ctx, cfg, cred, logger)
	}

	return pipeline.Run(ctx, cfg, client, open, logger)
}

// resolveCredential applies the dual-mode priority for Snowflake; the
// Postgres dev backend carries its password in its own config block.
func resolveCredential(cfg *config.Config) (auth.Credential, error) {
	if cfg.Driver == config.DriverPostgres {
		return auth.Resolve("", cfg.Postgres.Password)
	}
	return auth.Resolve(cfg.Snowflake.PrivateKeyPath, cfg.Snowflake.Password)
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
