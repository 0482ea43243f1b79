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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/events"
	"github.com/jafarshop/storefront/internal/orderapi"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/repository/cache"
	"github.com/jafarshop/storefront/internal/repository/memory"
	"github.com/jafarshop/storefront/internal/repository/postgres"
	"github.com/jafarshop/storefront/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// Storage
	var repos *repository.Repositories
	switch cfg.Storage {
	case "memory":
		store := memory.NewStore()
		store.SeedLocations()
		repos = store.Repositories()
		logger.Warn("Using in-memory storage; orders are lost on restart")
	default:
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		repos = postgres.NewRepositories(db, logger)
	}

	// Optional city lookup cache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		repos.Location = cache.NewLocationCache(repos.Location, redisClient, cfg.Redis.TTL, logger)
		logger.Info("City lookup cache enabled", zap.Duration("ttl", cfg.Redis.TTL))
	}

	// Optional order event publishing
	publisher := events.NewNopPublisher()
	if cfg.Events.RabbitURI != "" {
		publisher, err = events.NewRabbitPublisher(cfg.Events.RabbitURI, cfg.Events.Queue, logger)
		if err != nil {
			return err
		}
		logger.Info("Publishing order events", zap.String("queue", cfg.Events.Queue))
	}
	defer publisher.Close()

	converter, err := pricing.NewConverter(cfg.Pricing.StoreCurrency, cfg.Pricing.DisplayCurrency, cfg.Pricing.ExchangeRate)
	if err != nil {
		return err
	}

	checkoutService := service.NewCheckoutService(
		repos,
		orderapi.NewClient(cfg.OrderAPI, logger),
		checkout.NewBuilder(cfg.Pricing.CallingCode),
		converter,
		publisher,
		logger,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, repos, checkoutService, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("storage", cfg.Storage),
			zap.String("display_currency", converter.DisplayCurrency()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
