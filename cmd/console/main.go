package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-console/internal/api/http"
	"github.com/spec-kit/helpdesk-console/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-console/internal/audit"
	"github.com/spec-kit/helpdesk-console/internal/auth"
	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/observability"
	"github.com/spec-kit/helpdesk-console/internal/persistence"
	"github.com/spec-kit/helpdesk-console/internal/service"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
	"github.com/spec-kit/helpdesk-console/internal/worker"
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

	auditPg, err := audit.NewPostgres(ctx, cfg.Audit, logger)
	if err != nil {
		logger.Fatal("failed to connect audit postgres", zap.Error(err))
	}
	defer auditPg.Close()

	if auditPg.Enabled() && cfg.Audit.RunMigrations {
		if err := audit.RunMigrations(ctx, auditPg.Pool, logger); err != nil {
			logger.Fatal("failed to run audit migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	client := upstream.NewClient(cfg.Upstream, logger, metrics)

	sessions := session.NewStore(redis.Client, cfg.Auth.SessionTTL())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())

	dispatcher := events.NewInMemoryDispatcher()
	recorder := audit.NewRecorder(auditPg)

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications.RegisterHandlers()

	listingService := service.NewListingService(service.ListingDependencies{
		TicketAPI:    client,
		SubTicketAPI: client,
	})
	reviewService := service.NewReviewService(service.ReviewDependencies{
		TicketAPI:    client,
		SubTicketAPI: client,
		AuditLog:     recorder,
		Dispatcher:   dispatcher,
	})
	reassignmentService := service.NewReassignmentService(service.ReassignmentDependencies{
		TicketAPI:    client,
		SubTicketAPI: client,
		ReassignAPI:  client,
		DirectoryAPI: client,
		AuditLog:     recorder,
		Dispatcher:   dispatcher,
	})
	splitService := service.NewSplitService(service.SplitDependencies{
		TicketAPI:    client,
		DirectoryAPI: client,
		AuditLog:     recorder,
		Dispatcher:   dispatcher,
	})
	directoryService := service.NewDirectoryService(client)

	watcher := worker.NewWatcher(client, redis.Client, dispatcher, logger, cfg.Watcher)
	go watcher.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, auditPg, client),
		Session:        handlers.NewSessionHandler(client, sessions, tokens),
		Tickets:        handlers.NewTicketsHandler(listingService, reviewService, splitService, client),
		Queue:          handlers.NewQueueHandler(listingService, reviewService, client),
		Reassign:       handlers.NewReassignHandler(reassignmentService),
		MasterData:     handlers.NewMasterDataHandler(directoryService),
		AuthMiddleware: auth.Middleware(tokens, sessions),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
