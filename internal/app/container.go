package app

import (
	"context"
	"fmt"

	"profile-api/internal/config"
	"profile-api/internal/database"
	"profile-api/internal/database/migration"
	dbpostgres "profile-api/internal/database/postgres"
	"profile-api/internal/domain/user"
	"profile-api/internal/infrastructure/persistence/memory"
	"profile-api/internal/infrastructure/persistence/postgres"
	useruc "profile-api/internal/usecase/user"
	"profile-api/migrations"

	"go.uber.org/zap"
)

// Container owns the process-wide resources: opened once at startup and
// released by Close on shutdown.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Users  *useruc.Service
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	c := &Container{Config: cfg, Logger: log}

	var repo user.Repository
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on exit")
		repo = memory.NewUserRepository()
	default:
		db, err := OpenDatabase(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		c.DB = db

		if cfg.Database.AutoMigrate {
			if err := Migrate(ctx, db, log); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		repo = postgres.NewUserRepository(db)
	}

	c.Users = useruc.NewService(repo, useruc.WithLogger(log.Named("users")))
	return c, nil
}

func OpenDatabase(ctx context.Context, cfg config.Config, log *zap.Logger) (database.DB, error) {
	dsn := dbpostgres.DSN(cfg.Database)
	log.Info("connecting to database", zap.String("dsn", dbpostgres.Redact(dsn)))

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func Migrate(ctx context.Context, db database.DB, log *zap.Logger) error {
	r := migration.Runner{Source: migrations.FS, Logger: log.Named("migration")}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
