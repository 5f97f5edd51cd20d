// Package persistence selects the user store implementation from config.
package persistence

import (
	"log/slog"

	"folks/config"
	"folks/internal/domain/repository"
	"folks/internal/errors"
	"folks/internal/infra/persistence/memory"
	"folks/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository returns the store named by database.driver.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	switch driver := params.Config.Database.Driver; driver {
	case config.DriverMemory:
		params.Logger.Warn("Using in-memory user store; data is lost on restart")

		return memory.NewUserRepository(), nil

	case config.DriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewUserRepository(db), nil

	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}
}
