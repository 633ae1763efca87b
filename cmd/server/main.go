package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardapp "github.com/estateflow/backend/internal/application/board"
	propertyapp "github.com/estateflow/backend/internal/application/property"
	"github.com/estateflow/backend/internal/infrastructure/auth"
	"github.com/estateflow/backend/internal/infrastructure/cache"
	"github.com/estateflow/backend/internal/infrastructure/config"
	"github.com/estateflow/backend/internal/infrastructure/event"
	"github.com/estateflow/backend/internal/infrastructure/i18n"
	"github.com/estateflow/backend/internal/infrastructure/logger"
	"github.com/estateflow/backend/internal/infrastructure/persistence"
	"github.com/estateflow/backend/internal/infrastructure/scheduler"
	"github.com/estateflow/backend/internal/infrastructure/telemetry"
	"github.com/estateflow/backend/internal/interfaces/http/handler"
	"github.com/estateflow/backend/internal/interfaces/http/middleware"
	"github.com/estateflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/estateflow/backend/docs"
)

//	@title			EstateFlow API
//	@version		1.0
//	@description	Property and unit status lifecycle service with a status board

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog := logger.New(logCfg)

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		Stdout:            cfg.Telemetry.Stdout,
	}, bootLog)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	log := logger.New(logCfg, providers.LogCore(logger.ParseLevel(cfg.Log.Level)))
	defer func() { _ = log.Sync() }()

	log.Info("Starting EstateFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", providers.Enabled()),
	)

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:        log,
		SlowThreshold: 200 * time.Millisecond,
		Tracing: telemetry.DBTracingConfig{
			Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBName:     cfg.Database.DBName,
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	locks, err := cache.NewLockStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).Create(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = locks.Close() }()

	transitionMetrics, err := telemetry.NewTransitionMetrics(providers.Meter("estateflow/units"))
	if err != nil {
		return fmt.Errorf("failed to create transition metrics: %w", err)
	}

	// Repositories
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	historyRepo := persistence.NewGormStatusHistoryRepository(db.DB)
	boardRepo := persistence.NewGormBoardReadRepository(db.DB)

	// Events
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(propertyapp.NewUnitStatusChangedHandler(log).WithRecorder(transitionMetrics))
	if err := bus.Start(ctx); err != nil {
		return err
	}

	// Services
	localizer := i18n.NewLocalizer(cfg.Board.DefaultLocale)
	propertyService := propertyapp.NewPropertyService(propertyRepo)
	unitService := propertyapp.NewUnitService(unitRepo, historyRepo, propertyRepo).
		WithEventPublisher(bus).
		WithLogger(log).
		WithHistoryLimits(cfg.Board.HistoryDefaultLimit, cfg.Board.HistoryMaxLimit)
	if cfg.Board.LockEnabled {
		unitService.WithLockStore(locks, cfg.Board.LockTTL)
	} else {
		log.Warn("Unit transition lock disabled")
	}
	boardService := boardapp.NewBoardService(boardRepo, localizer).WithLogger(log)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	httpMetrics := telemetry.NewHTTPMetrics("estate")
	readiness := map[string]handler.Pinger{"database": db}
	if p, ok := locks.(handler.Pinger); ok {
		readiness["redis"] = p
	}
	handlers := router.Handlers{
		Property: handler.NewPropertyHandler(propertyService),
		Unit:     handler.NewUnitHandler(unitService),
		Board:    handler.NewBoardHandler(boardService, localizer),
		Health:   handler.NewHealthHandler(telemetry.ServiceVersion, readiness),
		Metrics:  httpMetrics.Handler(),
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Telemetry.ServiceName),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	router.RegisterOperational(engine, handlers, cfg.Swagger)

	jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
	jwtConfig.Logger = log
	api := router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.JWTAuth(jwtConfig), middleware.Tenant(), middleware.SpanAttributes())
	router.RegisterAPI(api, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	var audit *scheduler.AuditScheduler
	if cfg.Audit.Enabled {
		job := scheduler.NewLedgerAuditJob(historyRepo, log, cfg.Audit.Timeout).WithRecorder(transitionMetrics)
		audit = scheduler.NewAuditScheduler(job, cfg.Audit.CronSchedule, log)
		if err := audit.Start(ctx); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if audit != nil {
			if err := audit.Stop(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		if err := bus.Stop(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if err := providers.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}
