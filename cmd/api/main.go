package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/eandradeg/alltelapp/internal/api/http"
	"github.com/eandradeg/alltelapp/internal/api/http/handlers"
	"github.com/eandradeg/alltelapp/internal/auth"
	"github.com/eandradeg/alltelapp/internal/config"
	"github.com/eandradeg/alltelapp/internal/events"
	"github.com/eandradeg/alltelapp/internal/observability"
	"github.com/eandradeg/alltelapp/internal/persistence"
	"github.com/eandradeg/alltelapp/internal/repository"
	"github.com/eandradeg/alltelapp/internal/service"
	"github.com/eandradeg/alltelapp/internal/worker"
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

	location, err := cfg.Incident.Location()
	if err != nil {
		logger.Fatal("invalid APP_TIMEZONE", zap.String("timezone", cfg.Incident.Timezone), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	incidentRepo := repository.NewIncidentRepository(pool)
	localityRepo := repository.NewLocalityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(service.AuthDependencies{
		AccountRepo: accountRepo,
		ResetRepo:   resetRepo,
		Tokens:      tokens,
		Config:      cfg.Auth,
		Logger:      logger,
	})
	clientService := service.NewClientService(service.ClientDependencies{
		ClientRepo: clientRepo,
		Dispatcher: dispatcher,
	})
	incidentService := service.NewIncidentService(service.IncidentDependencies{
		IncidentRepo: incidentRepo,
		ClientRepo:   clientRepo,
		Dispatcher:   dispatcher,
		Location:     location,
	})
	localityService := service.NewLocalityService(service.LocalityDependencies{
		LocalityRepo: localityRepo,
		Cache:        redis.Handle(),
		CacheTTL:     cfg.Report.GeographyCacheTTL(),
		Logger:       logger,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		IncidentRepo: incidentRepo,
		Logger:       logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokens, accountRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Accounts:       handlers.NewAccountsHandler(authService),
		Clients:        handlers.NewClientsHandler(clientService),
		Incidents:      handlers.NewIncidentsHandler(incidentService),
		Localities:     handlers.NewLocalitiesHandler(localityService),
		Reports:        handlers.NewReportsHandler(reportService),
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
