package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jipbab-note/backend/config"
	httpDelivery "github.com/jipbab-note/backend/internal/delivery/http"
	"github.com/jipbab-note/backend/internal/domain"
	"github.com/jipbab-note/backend/internal/infrastructure/mfds"
	"github.com/jipbab-note/backend/internal/infrastructure/openfoodfacts"
	"github.com/jipbab-note/backend/internal/infrastructure/store"
	"github.com/jipbab-note/backend/internal/logger"
	"github.com/jipbab-note/backend/internal/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A .env file is a local-development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting jipbab-note backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Type),
	)

	if cfg.MFDS.APIKey == "" {
		zlog.Warn("MFDS API key is not configured; recipe endpoints will fail until JIPBAB_MFDS_API_KEY is set")
	}

	recipeClient := mfds.NewClient(mfds.Config{
		APIKey:     cfg.MFDS.APIKey,
		BaseURL:    cfg.MFDS.BaseURL,
		Timeout:    cfg.MFDS.Timeout,
		MaxRetries: cfg.MFDS.RetryCount,
		RetryDelay: cfg.MFDS.RetryDelay,
	}, zlog)

	productClient := openfoodfacts.NewClient(cfg.Product.BaseURL, cfg.Product.Timeout, zlog)

	recordStore, err := buildRecordStore(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize record store", zap.Error(err))
	}

	builder := usecase.NewCatalogBuilder(recipeClient, usecase.CatalogBuilderConfig{
		ChunkSize:     cfg.Catalog.ChunkSize,
		MaxScan:       cfg.Catalog.MaxScan,
		MinNameLength: cfg.Catalog.MinNameLength,
		MaxNameLength: cfg.Catalog.MaxNameLength,
	}, zlog)
	catalogCache := usecase.NewCatalogCache(builder, cfg.Catalog.TTL, zlog)

	handler := httpDelivery.NewHandler(
		catalogCache,
		usecase.NewMatcher(),
		recipeClient,
		productClient,
		recordStore,
		zlog,
	)

	limiter := httpDelivery.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
	router := httpDelivery.SetupRouter(cfg, handler, limiter, zlog)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func buildRecordStore(cfg *config.Config, zlog *zap.Logger) (domain.RecordStore, error) {
	if cfg.Store.Type != "redis" {
		return store.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisStore, err := store.NewRedisStore(ctx, cfg.Store.RedisURL)
	if err != nil {
		return nil, err
	}
	zlog.Info("connected to redis record store")
	return redisStore, nil
}
