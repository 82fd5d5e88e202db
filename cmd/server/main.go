package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bellavista/orderbot/config"
	httpDelivery "github.com/bellavista/orderbot/internal/delivery/http"
	"github.com/bellavista/orderbot/internal/domain"
	"github.com/bellavista/orderbot/internal/infrastructure/cache"
	"github.com/bellavista/orderbot/internal/infrastructure/menuapi"
	"github.com/bellavista/orderbot/internal/infrastructure/metrics"
	"github.com/bellavista/orderbot/internal/platform/logger"
	"github.com/bellavista/orderbot/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type sessionCache interface {
	domain.CacheRepository
	Close() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	zapLog.Info("starting Bella Vista order bot",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
	)

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	ctx := context.Background()
	m := metrics.New()

	// Initialize infrastructure dependencies
	sessions, err := newSessionCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	menuClient := menuapi.NewClient(cfg.Catalog.GraphQLURL, menuapi.Options{
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerMinute: cfg.RateLimit.Catalog,
		Logger:            zapLog,
	})
	zapLog.Info("menu API configured",
		zap.String("endpoint", cfg.Catalog.GraphQLURL),
		zap.Duration("cache_duration", cfg.Catalog.CacheDuration),
		zap.Bool("fallback_enabled", cfg.Catalog.FallbackEnabled),
	)

	// Initialize usecase layer
	provider := usecase.NewCatalogProvider(menuClient, usecase.ProviderConfig{
		CacheDuration:   cfg.Catalog.CacheDuration,
		FallbackEnabled: cfg.Catalog.FallbackEnabled,
		Logger:          zapLog,
		Recorder:        m,
	})

	picker := usecase.FirstPicker
	if cfg.Responses.Randomize {
		picker = usecase.RandomPicker
	}

	resolver := usecase.NewResolver(usecase.ResolverConfig{
		FuzzyThreshold: cfg.Catalog.FuzzyThreshold,
		Logger:         zapLog,
		Recorder:       m,
	})
	extractor := usecase.NewExtractor(usecase.ExtractorConfig{
		Resolver: resolver,
		Picker:   picker,
		Logger:   zapLog,
		Recorder: m,
	})

	chat := usecase.NewChatService(
		provider,
		extractor,
		usecase.NewResponder(picker),
		usecase.NewSessionStore(sessions, cfg.Cache.TTL),
		usecase.ChatServiceConfig{Logger: zapLog, Recorder: m},
	)

	// Warm the catalog so the first chat does not pay for the fetch
	if _, err := provider.Refresh(ctx, time.Now()); err != nil {
		zapLog.Warn("initial menu fetch failed, serving fallback until the menu API answers", zap.Error(err))
	}

	validator, err := httpDelivery.NewActionValidator(zapLog, m)
	if err != nil {
		return err
	}

	handler := httpDelivery.NewHandler(chat, validator, zapLog)
	router := httpDelivery.SetupRouter(cfg, handler, m.Handler(), zapLog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	zapLog.Info("server stopped")
	return nil
}

func newSessionCache(ctx context.Context, cfg *config.Config) (sessionCache, error) {
	if cfg.Cache.Type == "redis" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return rc, nil
	}
	return cache.NewMemoryCache(), nil
}
