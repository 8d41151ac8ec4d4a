// Package main provides the main entry point for the restaurant hub service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/restaurant-hub/app/handlers"
	"github.com/amirphl/restaurant-hub/app/middleware"
	"github.com/amirphl/restaurant-hub/app/router"
	"github.com/amirphl/restaurant-hub/app/services"
	businessflow "github.com/amirphl/restaurant-hub/business_flow"
	"github.com/amirphl/restaurant-hub/config"
	"github.com/amirphl/restaurant-hub/logging"
	"github.com/amirphl/restaurant-hub/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	logger    *slog.Logger
	stopFuncs []func()
}

func main() {
	log.Println("Starting restaurant hub...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, logWriter, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	slog.SetDefault(logger)

	// Initialize application
	app, err := initializeApplication(cfg, logger, logWriter)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		serverErr <- app.router.Start(address)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case sig := <-sigChan:
		logger.Info("shutting down gracefully", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server stopped unexpectedly", "error", err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.GetApp().ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}

	// Stop background workers and close clients after in-flight requests drain
	for _, fn := range app.stopFuncs {
		fn()
	}

	logger.Info("server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(slog.NewLogLogger(logger.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		"max_open_conns", cfg.MaxOpenConns, "max_idle_conns", cfg.MaxIdleConns)

	if cfg.AutoMigrate {
		migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
		defer migrateCancel()
		if err := repository.RunMigrations(migrateCtx, db); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	return db, nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis connection established", "addr", opt.Addr, "db", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, logger *slog.Logger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logger.Warn("redis healthcheck failed", "error", err)
				}
				c()
			}
		}
	}()
	return cancel
}

func initializeApplication(cfg *config.ProductionConfig, logger *slog.Logger, logWriter io.Writer) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	stopFuncs = append(stopFuncs, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	rc, err := initializeCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	// Keep the readiness probe's cache nil when redis is disabled
	var cacheClient redis.UniversalClient
	if rc != nil {
		cacheClient = rc
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthInterval, logger))
		stopFuncs = append(stopFuncs, func() { _ = rc.Close() })
	}

	restaurantRepo := repository.NewRestaurantRepository(db)
	productRepo := repository.NewProductRepository(db)

	hasher, err := services.NewBcryptPasswordHasher(cfg.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	tokenService, err := services.NewTokenService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized", "issuer", cfg.JWT.Issuer)

	limiter := services.NewLoginAttemptLimiter(rc, cfg.Cache, cfg.Security)

	events := services.NewEventPublisher(cfg.Events)
	stopFuncs = append(stopFuncs, func() {
		if err := events.Close(); err != nil {
			logger.Warn("failed to close event publisher", "error", err)
		}
	})

	if cfg.Payment.WebhookSecret == "" {
		logger.Warn("PAYMENT_WEBHOOK_SECRET is not set; the payment webhook accepts unauthenticated calls")
	}

	restaurantFlow := businessflow.NewRestaurantFlow(restaurantRepo, hasher, tokenService, limiter, events, db)
	paymentFlow := businessflow.NewPaymentFlow(restaurantRepo, events, cfg.Payment)
	productFlow := businessflow.NewProductFlow(productRepo, events)
	labelFlow := businessflow.NewLabelFlow()

	timeout := cfg.Server.RequestTimeout
	appHandlers := router.Handlers{
		Restaurant: handlers.NewRestaurantHandler(restaurantFlow, timeout),
		Product:    handlers.NewProductHandler(productFlow, timeout),
		Payment:    handlers.NewPaymentHandler(paymentFlow, cfg.Payment, timeout),
		Label:      handlers.NewLabelHandler(labelFlow, timeout),
		Health:     handlers.NewHealthHandler(db, cacheClient),
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService, restaurantRepo)

	appRouter := router.NewFiberRouter(cfg, logger, logWriter, appHandlers, authMiddleware)

	return &Application{
		router:    appRouter,
		config:    cfg,
		logger:    logger,
		stopFuncs: stopFuncs,
	}, nil
}
