package app

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/seeder"
	ucauth "jobboard/internal/usecase/auth"
	jobuc "jobboard/internal/usecase/job"
	"jobboard/internal/ws"
)

// Container owns the long-lived dependencies shared by the server and the
// seed command.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Users *repository.PostgresUserRepository
	Jobs  *repository.PostgresJobRepository

	JWT         *jwt.HMACService
	AuthService *ucauth.Service
	JobService  *jobuc.Service
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		Users:  repository.NewPostgresUserRepository(db),
		Jobs:   repository.NewPostgresJobRepository(db),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
	}
	c.AuthService = ucauth.NewService(c.Users, c.JWT)
	c.JobService = jobuc.NewService(c.Jobs, c.Cache, c.Hub, logger)

	return c, nil
}

func (c *Container) Migrate(ctx context.Context) error {
	r := migration.Runner{Dir: c.Config.MigrationsDir, Logger: c.Logger}
	return r.Run(ctx, c.DB.SQLDB())
}

// Seed runs the bootstrap seeders over entries. Job listings are invalidated
// and subscribers notified whenever anything was written, including after a
// partial failure.
func (c *Container) Seed(ctx context.Context, entries []seeder.Entry) ([]seeder.Result, error) {
	seedCfg := c.Config.Seed
	if seedCfg.Overwrite {
		entries = seeder.WithOverwrite(entries)
	}

	admin := seeder.AdminSeeder{
		Email:       seedCfg.AdminEmail,
		Password:    seedCfg.AdminPassword,
		DisplayName: seedCfg.AdminDisplayName,
	}
	runner := seeder.Runner{
		Seeders:    seeder.Defaults(c.DB, c.Users, c.Jobs, admin, entries),
		Logger:     c.Logger,
		LogResults: seedCfg.LogResults,
	}

	results, err := runner.Run(ctx)

	added, skipped := seeder.Count(results, seeder.JobsSeeder{}.Name())
	if added > 0 {
		c.JobService.InvalidateList(ctx)
	}
	c.Hub.JobsSeeded(added, skipped)
	c.Logger.Printf("[Seed] jobs added=%d skipped=%d", added, skipped)

	return results, err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
