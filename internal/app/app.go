package app

import (
	"context"
	"fmt"

	"pool-market-client/internal/api"
	"pool-market-client/internal/config"
	"pool-market-client/internal/services"
	"pool-market-client/internal/storage"
	"pool-market-client/internal/token"
	"pool-market-client/internal/validation"

	"github.com/rs/zerolog"
)

// App owns the client-side stores and everything they depend on
type App struct {
	Storage       *storage.Adapter
	Tokens        *token.Holder
	API           *api.Client
	Hub           *services.Hub
	Notifications *services.NotificationService
	Users         *services.UserService
	Favorites     *services.FavoritesService
	Pools         *services.PoolService
}

// New wires the stores from cfg. A storage backend that cannot be opened
// leaves the client without persistence instead of failing.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *App {
	backend, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		logger.Warn().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to open storage backend")
	}

	var a App
	a.Storage = storage.New(backend, logger)

	a.Tokens = token.NewHolder(a.Storage)
	a.API = api.New(api.Options{
		BaseURL:     cfg.API.BaseURL,
		AdminSecret: cfg.API.AdminSecret,
		Tokens:      a.Tokens,
		Logger:      logger.With().Str("component", "api").Logger(),
	})

	validator := validation.New()
	a.Hub = services.NewHub()
	a.Notifications = services.NewNotificationService(cfg.Notifications.Duration, nil, a.Hub)
	a.Users = services.NewUserService(a.API, a.Storage, a.Tokens, a.Notifications, validator, a.Hub,
		logger.With().Str("component", "session").Logger())
	a.Favorites = services.NewFavoritesService(a.Storage, a.Notifications, a.Hub)
	a.Pools = services.NewPoolService(a.API, a.Users, a.Notifications, validator, a.Hub,
		logger.With().Str("component", "pools").Logger())

	return &a
}

// Close stops pending notification timers and closes the storage backend
func (a *App) Close() error {
	a.Notifications.Close()
	return a.Storage.Close()
}

func openBackend(ctx context.Context, cfg config.StorageConfig) (storage.Backend, error) {
	switch cfg.Driver {
	case "memory":
		b, err := storage.NewBadgerBackend("")
		if err != nil {
			return nil, err
		}
		return b, nil
	case "redis":
		b, err := storage.NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "badger", "":
		b, err := storage.NewBadgerBackend(cfg.Path)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
