package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/la-capital/crm-service/internal/api/http"
	"github.com/la-capital/crm-service/internal/api/http/handlers"
	"github.com/la-capital/crm-service/internal/auth"
	"github.com/la-capital/crm-service/internal/config"
	"github.com/la-capital/crm-service/internal/events"
	"github.com/la-capital/crm-service/internal/observability"
	"github.com/la-capital/crm-service/internal/persistence"
	"github.com/la-capital/crm-service/internal/ratelimit"
	"github.com/la-capital/crm-service/internal/repository"
	"github.com/la-capital/crm-service/internal/service"
	"github.com/la-capital/crm-service/internal/storage"
	"github.com/la-capital/crm-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, logger, service.AuthDependencies{
		StaffRepo:  staffRepo,
		ClientRepo: clientRepo,
		RoleRepo:   roleRepo,
		Dispatcher: dispatcher,
	})
	staffService := service.NewStaffService(staffRepo, roleRepo, logger, cfg.Auth.BcryptCost)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	assetService := service.NewAssetService(assetRepo, store)

	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	limiter := ratelimit.NewPerMinute(redis.Client, cfg.Campaign.RateLimitPerMinute)
	campaignWorker := worker.NewCampaignWorker(cfg.Campaign.WorkerBuffer, campaignRepo, limiter, notificationService, dispatcher, logger)
	campaignWorker.Start(ctx)

	campaignService := service.NewCampaignService(campaignRepo, clientRepo, campaignWorker, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo, clientRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, BodyLimit: 50 * 1024 * 1024})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pool, redis),
		Auth:           handlers.NewAuthHandler(authService),
		TwoFactor:      handlers.NewTwoFactorHandler(authService),
		ClientAuth:     handlers.NewClientAuthHandler(authService),
		Users:          handlers.NewUsersHandler(staffService),
		Clients:        handlers.NewClientsHandler(clientService),
		Products:       handlers.NewProductsHandler(productService),
		Campaigns:      handlers.NewCampaignsHandler(campaignService),
		Assets:         handlers.NewAssetsHandler(assetService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Driver == "s3" {
		return storage.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.PublicURL)
	}
	return storage.NewLocalStore(cfg.LocalDir, cfg.PublicURL)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
