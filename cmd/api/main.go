package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/student-records/internal/api/http"
	"github.com/spec-kit/student-records/internal/api/http/handlers"
	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/config"
	"github.com/spec-kit/student-records/internal/events"
	"github.com/spec-kit/student-records/internal/observability"
	"github.com/spec-kit/student-records/internal/persistence"
	"github.com/spec-kit/student-records/internal/repository"
	"github.com/spec-kit/student-records/internal/service"
	"github.com/spec-kit/student-records/internal/worker"
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
	studentRepo := repository.NewStudentRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	markRepo := repository.NewMarkRepository(pool)
	registry := repository.NewRedisRevocationRegistry(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StudentRepo: studentRepo,
		SubjectRepo: subjectRepo,
		MarkRepo:    markRepo,
		Registry:    registry,
		Dispatcher:  dispatcher,
	})
	recordsService := service.NewRecordsService(*cfg, studentRepo, subjectRepo, markRepo, dispatcher)
	gate := auth.NewMiddleware(authService.TokenManager(), registry)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Students: handlers.NewStudentsHandler(recordsService),
		Admin:    handlers.NewAdminHandler(recordsService),
		Gate:     gate,
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
