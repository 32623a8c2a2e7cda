// Package persistence selects the key-value store backend from configuration.
package persistence

import (
	"context"
	"log/slog"

	"ecofinds/config"
	"ecofinds/internal/domain/repository"
	"ecofinds/internal/infra/persistence/memory"
	"ecofinds/internal/infra/persistence/postgres"
	"ecofinds/internal/infra/persistence/redis"
	"ecofinds/internal/infra/persistence/sqlite"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the key-value store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewKeyValueStore opens the backend named by store.driver
func NewKeyValueStore(params StoreParams) (repository.KeyValueStore, error) {
	store, err := openStore(params.Ctx, params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing key-value store", slog.String("driver", params.Config.Store.Driver))

			return store.Close()
		},
	})

	return store, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.KeyValueStore, error) {
	storeCfg := cfg.Store

	switch storeCfg.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store, state is lost on restart")

		return memory.New(), nil

	case config.StoreDriverSQLite:
		if storeCfg.SQLite == nil || storeCfg.SQLite.Path == "" {
			return nil, errors.New("sqlite path is required for sqlite store")
		}
		logger.Info("Using sqlite store", slog.String("path", storeCfg.SQLite.Path))

		return sqlite.New(ctx, storeCfg.SQLite.Path)

	case config.StoreDriverRedis:
		if storeCfg.Redis == nil || storeCfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for redis store")
		}
		logger.Info("Using redis store", slog.String("addr", storeCfg.Redis.Addr), slog.Int("db", storeCfg.Redis.DB))

		return redis.New(ctx, redis.Options{
			Addr:     storeCfg.Redis.Addr,
			Password: storeCfg.Redis.Password,
			DB:       storeCfg.Redis.DB,
		})

	case config.StoreDriverPostgres:
		db, err := postgres.Open(ctx, storeCfg.Postgres, logger, cfg.Env.Debug)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres store")

		return postgres.NewStore(db, logger)

	default:
		return nil, errors.Errorf("unknown store driver: %s", storeCfg.Driver)
	}
}
