package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-message-service/internal/api/http"
	"github.com/spec-kit/support-message-service/internal/api/http/handlers"
	"github.com/spec-kit/support-message-service/internal/auth"
	"github.com/spec-kit/support-message-service/internal/cache"
	"github.com/spec-kit/support-message-service/internal/config"
	"github.com/spec-kit/support-message-service/internal/crypto"
	"github.com/spec-kit/support-message-service/internal/domain"
	"github.com/spec-kit/support-message-service/internal/events"
	"github.com/spec-kit/support-message-service/internal/observability"
	"github.com/spec-kit/support-message-service/internal/persistence"
	"github.com/spec-kit/support-message-service/internal/repository"
	"github.com/spec-kit/support-message-service/internal/service"
	"github.com/spec-kit/support-message-service/internal/worker"
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

	// The encryption key is validated before anything else comes up.
	// A malformed or missing key must refuse to boot, never degrade
	// into serving requests without encryption.
	key, err := crypto.LoadKey(cfg.Encryption.KeyHex)
	if err != nil {
		logger.Fatal("invalid message encryption key", zap.Error(err))
	}
	messageCipher, err := crypto.NewMessageCipher(key)
	if err != nil {
		logger.Fatal("failed to init message cipher", zap.Error(err))
	}

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
	userRepo := repository.NewUserRepository(pool)
	messageRepo := repository.NewSupportMessageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	inboxCache := cache.NewInboxCache(redis.Client)
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, userRepo)
	messageService := service.NewSupportMessageService(service.MessageDependencies{
		MessageRepo: messageRepo,
		Cipher:      messageCipher,
		Retention:   domain.NewRetentionPolicy(cfg.Retention.Days),
		InboxCache:  inboxCache,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(dispatcher, inboxCache, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Messages:       handlers.NewMessagesHandler(messageService),
		AdminMessages:  handlers.NewAdminMessagesHandler(messageService, inboxCache),
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
