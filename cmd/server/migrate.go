package main

import (
	"context"
	"fmt"
	"time"

	"profile-api/internal/app"
	"profile-api/internal/config"
	"profile-api/internal/database/migration"
	"profile-api/internal/pkg/logger"
	"profile-api/migrations"

	"github.com/spf13/cobra"
)

type migrateOptions struct {
	Dir     string
	Timeout time.Duration
}

func newMigrateCommand() *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "read migrations from this directory instead of the embedded set")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "overall deadline for the migration run")

	return cmd
}

func runMigrate(parent context.Context, opts *migrateOptions) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate needs DB_DRIVER=%s, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(parent, opts.Timeout)
	defer cancel()

	db, err := app.OpenDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	r := migration.Runner{Source: migrations.FS, Dir: opts.Dir, Logger: log.Named("migration")}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Info("migrations up to date")
	return nil
}
