package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/jobify-service/internal/api/http"
	"github.com/spec-kit/jobify-service/internal/api/http/handlers"
	"github.com/spec-kit/jobify-service/internal/auth"
	"github.com/spec-kit/jobify-service/internal/config"
	"github.com/spec-kit/jobify-service/internal/events"
	"github.com/spec-kit/jobify-service/internal/observability"
	"github.com/spec-kit/jobify-service/internal/persistence"
	"github.com/spec-kit/jobify-service/internal/repository"
	"github.com/spec-kit/jobify-service/internal/repository/memory"
	"github.com/spec-kit/jobify-service/internal/service"
	"github.com/spec-kit/jobify-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo repository.UserRepository
		jobRepo  repository.JobRepository
	)
	if pg.Configured() {
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		jobRepo = repository.NewJobRepository(pg.PoolHandle())
	} else {
		userRepo = memory.NewUserRepository()
		jobRepo = memory.NewJobRepository()
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	guards := auth.Guards{
		Verifier:   auth.NewVerifier(tokens, logger, metrics),
		Authorizer: auth.NewRoleAuthorizer(auth.NewIdentityResolver(userRepo, cfg.Auth.ResolverTimeout()), logger, metrics),
	}

	authService := service.NewAuthService(tokens, userRepo)
	userService := service.NewUserService(userRepo, dispatcher)
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:     jobRepo,
		Cache:       repository.NewRedisJobCache(redis.ClientHandle(), cfg.Jobs.CacheTTL()),
		Dispatcher:  dispatcher,
		Logger:      logger,
		LatestLimit: cfg.Jobs.LatestLimit,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService),
		Users:   handlers.NewUsersHandler(userService),
		Jobs:    handlers.NewJobsHandler(jobService),
		Guards:  guards,
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
