package main

// Apply the Postgres schema:
//   DATABASE_URL=postgres://... go run ./cmd/migrate

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/trendwyse/dashboard/internal/infrastructure/config"
	"github.com/trendwyse/dashboard/internal/infrastructure/db/postgres"
	"github.com/trendwyse/dashboard/pkg/logger"
)

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction(), Service: "trendwyse-migrate"})
	if cfg.StoreDriver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("migrations apply to STORE_DRIVER=postgres only")
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, cfg.Postgres.URL, postgres.Options{MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		os.Exit(1)
	}
	log.Info().Msg("migrations applied")
}
