package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Festongithub/onesoko-storefront/internal/api"
	"github.com/Festongithub/onesoko-storefront/internal/cache"
	"github.com/Festongithub/onesoko-storefront/internal/cart"
	"github.com/Festongithub/onesoko-storefront/internal/catalog"
	"github.com/Festongithub/onesoko-storefront/internal/config"
	sfhttp "github.com/Festongithub/onesoko-storefront/internal/http"
	"github.com/Festongithub/onesoko-storefront/internal/monitor"
	"github.com/Festongithub/onesoko-storefront/internal/poller"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	// Backend API client
	client, err := api.NewClient(cfg.BackendURL, cfg.BackendTimeout, api.StaticToken(os.Getenv("BACKEND_TOKEN")))
	if err != nil {
		logger.Fatal("failed to build backend client", zap.Error(err))
	}
	productsClient := api.NewProductsClient(client)
	shopsClient := api.NewShopsClient(client)
	ordersClient := api.NewOrdersClient(client)

	// Cart persistence
	repo, cleanup, err := buildCartRepository(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to set up cart persistence", zap.Error(err))
	}
	defer cleanup()
	store := cart.NewStore(repo, logger)
	defer store.Close()

	// Catalog cache (optional)
	var catalogCache cache.CatalogCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		catalogCache = cache.NewRedisCache(redisClient)
		logger.Info("catalog cache enabled", zap.String("addr", cfg.RedisAddr))
	}
	catalogService := catalog.NewService(productsClient, catalogCache, logger)

	var mon *monitor.Monitor
	if cfg.MonitorEnabled {
		mon = monitor.New()
	}

	// Order event consumer (optional)
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	if len(cfg.KafkaBrokers) > 0 {
		p := poller.New(store, catalogService, logger, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaBrokers...)
		defer p.Close()
		go p.Run(pollerCtx)
		logger.Info("order event poller started", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	cartHandler := sfhttp.NewCartHandler(store, productsClient, ordersClient, catalogService)
	catalogHandler := sfhttp.NewCatalogHandler(catalogService, productsClient, productsClient, shopsClient, productsClient)
	router := sfhttp.NewRouter(cartHandler, catalogHandler, mon, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("storefront gateway listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("stopped")
}

func buildCartRepository(ctx context.Context, cfg config.Config) (cart.Repository, func(), error) {
	switch cfg.CartBackend {
	case "mongo":
		db, err := cart.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		repo := cart.NewMongoRepository(db)
		if err := repo.CreateIndexes(ctx); err != nil {
			return nil, nil, err
		}
		cleanup := func() { _ = db.Client().Disconnect(context.Background()) }
		return repo, cleanup, nil
	default:
		repo, err := cart.NewFileRepository(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}
}
