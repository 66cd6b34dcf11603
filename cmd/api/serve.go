package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk/internal/api/http"
	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/persistence"
	"github.com/spec-kit/helpdesk/internal/render"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	cfg, logger := deps.cfg, deps.logger

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, deps.pg.PoolHandle(), logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := deps.pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)

	var mailer service.Mailer
	if cfg.Notification.MailEnabled() {
		mailWorker := worker.NewMailWorker(worker.NewSMTPSender(cfg.Notification), cfg.Notification.QueueSize, logger)
		mailWorker.Start(ctx)
		defer mailWorker.Stop()
		mailer = mailWorker
	} else {
		logger.Info("SMTP_HOST not set; ticket emails disabled")
	}
	dispatcher := events.NewBus()
	service.NewNotificationService(dispatcher, userRepo, mailer, logger).RegisterHandlers()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	throttle := auth.NewLoginThrottle(redis.Cmdable(), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)
	enforcer, err := auth.NewEnforcer()
	if err != nil {
		return err
	}

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Tokens:   tokens,
		Hasher:   hasher,
		Limiter:  throttle,
		Logger:   logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	commentService := service.NewCommentService(ticketRepo, commentRepo, dispatcher, logger)
	reportService := service.NewReportService(ticketRepo, cfg.Dashboard, nil)
	userService := service.NewUserService(userRepo, hasher)
	inventoryService := service.NewInventoryService(inventoryRepo, userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	probes := map[string]handlers.Pinger{"postgres": deps.pg}
	if redis.Enabled() {
		probes["redis"] = redis
	}
	renderer := render.NewMarkdown()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, probes, metrics),
		Sessions:       handlers.NewSessionsHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService, commentService, reportService, renderer),
		Dashboard:      handlers.NewDashboardHandler(reportService),
		Inventory:      handlers.NewInventoryHandler(inventoryService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, userRepo),
		Enforcer:       enforcer,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	return nil
}
