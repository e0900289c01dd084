package cmd

import (
	"context"
	"flag"
	"fmt"

	"pool-market-client/internal/app"
	"pool-market-client/internal/config"
	"pool-market-client/internal/demoapi"
	"pool-market-client/internal/handlers"
	"pool-market-client/internal/imagestore"
	"pool-market-client/internal/repository"
	"pool-market-client/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func runBridge(ctx context.Context, cfg *config.Config) error {
	a := app.New(ctx, cfg, log.Logger)
	defer a.Close()

	wsHub := services.NewWSHub(a.Hub, log.Logger.With().Str("component", "ws").Logger())

	router := handlers.NewRouter(handlers.RouterOptions{
		Users:         a.Users,
		Pools:         a.Pools,
		Favorites:     a.Favorites,
		Notifications: a.Notifications,
		WSHub:         wsHub,
		Contact: handlers.ContactInfo{
			MobileNumber: cfg.API.AdminMobileNumber,
			EmailAddress: cfg.API.AdminEmailAddress,
		},
		AllowedOrigins: cfg.Bridge.AllowedOrigins,
		Logger:         log.Logger.With().Str("component", "bridge").Logger(),
	})

	return serve(ctx, "bridge", cfg.Bridge.Addr(), router, wsHub.Close)
}

func runDemoAPI(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("demo-api", flag.ContinueOnError)
	seedEmail := fs.String("seed-email", "demo@bazeni.ba", "email of the seeded demo host")
	seedPassword := fs.String("seed-password", "bazeni123", "password of the seeded demo host")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var (
		users demoapi.Users
		pools demoapi.Pools
	)
	if cfg.Demo.DatabaseDSN != "" {
		// Connect to database
		db, err := pgxpool.New(ctx, cfg.Demo.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		if err := repository.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("Database connection established")

		users = repository.NewUserRepository(db)
		pools = repository.NewPoolRepository(db)
	} else {
		store := repository.NewMemoryStore()
		users = store.Users()
		pools = store.Pools()
		log.Info().Msg("Using in-memory demo data")
	}

	images, err := openImageStore(ctx, cfg.Demo)
	if err != nil {
		return err
	}

	server := demoapi.New(demoapi.Options{
		Users:       users,
		Pools:       pools,
		Images:      images,
		Tokens:      demoapi.NewTokenIssuer(cfg.Demo.JWTSecret, cfg.Demo.TokenTTL, nil),
		AdminSecret: cfg.Demo.AdminSecret,
		Logger:      log.Logger.With().Str("component", "demo-api").Logger(),
	})
	if err := server.Seed(ctx, *seedEmail, *seedPassword); err != nil {
		return err
	}

	return serve(ctx, "demo API", cfg.Demo.Addr(), server.Routes(), nil)
}

func openImageStore(ctx context.Context, cfg config.DemoConfig) (imagestore.Store, error) {
	images := cfg.Images
	switch images.Driver {
	case "s3":
		return imagestore.NewS3(ctx, imagestore.S3Options{
			Region:    images.Region,
			Bucket:    images.Bucket,
			Endpoint:  images.Endpoint,
			AccessKey: images.AccessKey,
			SecretKey: images.SecretKey,
			PublicURL: images.PublicURL,
		})
	case "minio":
		return imagestore.NewMinio(ctx, images.Endpoint, images.AccessKey, images.SecretKey, images.Bucket, images.UseSSL, images.PublicURL)
	default:
		publicURL := images.PublicURL
		if publicURL == "" {
			publicURL = "http://" + cfg.Addr() + "/images"
		}
		return imagestore.NewMemory(publicURL), nil
	}
}
