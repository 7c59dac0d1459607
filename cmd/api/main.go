package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shelfcam/shelfcam-api/internal/api/http"
	"github.com/shelfcam/shelfcam-api/internal/api/http/handlers"
	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/config"
	"github.com/shelfcam/shelfcam-api/internal/events"
	"github.com/shelfcam/shelfcam-api/internal/inference"
	"github.com/shelfcam/shelfcam-api/internal/observability"
	"github.com/shelfcam/shelfcam-api/internal/persistence"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	"github.com/shelfcam/shelfcam-api/internal/service"
	"github.com/shelfcam/shelfcam-api/internal/worker"
	"github.com/shelfcam/shelfcam-api/internal/ws"
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

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	shelfRepo := repository.NewShelfRepository(pool)
	alertRepo := repository.NewAlertRepository(pool)
	historyRepo := repository.NewAlertHistoryRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)

	tokenManager, err := auth.NewTokenManager(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordScheme, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to init password hasher", zap.Error(err))
	}
	denylist := auth.NewDenylist(redis.Client, logger)
	authMiddleware := auth.NewMiddleware(tokenManager, denylist, logger)

	dispatcher := events.NewInMemoryDispatcher()
	alertHub := ws.NewHub(logger)
	alertHub.Subscribe(dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	modelClient := inference.NewClient(cfg.Model.ServerURL, cfg.Model.RequestTimeout())

	authService := service.NewAuthService(accountRepo, tokenManager, hasher, denylist)
	inventoryService := service.NewInventoryService(inventoryRepo, shelfRepo)
	shelfService := service.NewShelfService(shelfRepo)
	alertService := service.NewAlertService(alertRepo, historyRepo, inventoryRepo, assignmentRepo, dispatcher, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, accountRepo, shelfRepo)
	detectService := service.NewDetectService(modelClient, alertService, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: 12 * 1024 * 1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		Shelves:        handlers.NewShelvesHandler(shelfService),
		Alerts:         handlers.NewAlertsHandler(alertService),
		Assignments:    handlers.NewAssignmentsHandler(assignmentService),
		Detect:         handlers.NewDetectHandler(detectService),
		AlertHub:       alertHub,
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
