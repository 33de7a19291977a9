package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	appMigrations "github.com/md-abdullah-92/edurecords/internal/app/migrations"
	appRepos "github.com/md-abdullah-92/edurecords/internal/app/repositories"
	"github.com/md-abdullah-92/edurecords/internal/config"
	"github.com/md-abdullah-92/edurecords/internal/db"
	"github.com/md-abdullah-92/edurecords/internal/seed"
)

// RunMigrations applies the embedded schema for the configured driver.
func RunMigrations(cfg *config.Config, bunDB *bun.DB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	migrator := appMigrations.NewMigrator(bunDB, cfg.Database.Driver, lgr)
	applied, err := migrator.Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return nil
}

// Migrate opens a short-lived connection, applies pending migrations and
// closes it again.
func Migrate(cfg *config.Config, lgr zerolog.Logger) error {
	bunDB, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer bunDB.Close()

	bunDB.AddQueryHook(db.NewQueryLogHook(lgr))
	return RunMigrations(cfg, bunDB, lgr)
}

// Seed loads the demo records through the regular pool and executor.
func Seed(cfg *config.Config, lgr zerolog.Logger) error {
	pool, err := SetupDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return seed.CreateDemoData(ctx, appRepos.NewExecutor(pool), lgr)
}
