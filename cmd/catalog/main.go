package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	app_catalog "storefront/internal/catalog/app/catalog"
	"storefront/internal/catalog/cache"
	memory_cache "storefront/internal/catalog/cache/memory"
	redis_cache "storefront/internal/catalog/cache/redis"
	"storefront/internal/catalog/config"
	"storefront/internal/catalog/events"
	http_products "storefront/internal/catalog/handler/http/products"
	kafka_handler "storefront/internal/catalog/handler/kafka"
	"storefront/internal/catalog/infrastructure/database"
	"storefront/internal/catalog/infrastructure/kafka"
	catalog_rpc "storefront/internal/catalog/rpc"
	postgres_product_repo "storefront/internal/catalog/repository/product_repo/postgres"
	"storefront/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Catalog Service starting...")

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()

	productCache := buildProductCache(cfg, appLogger)
	publisher, producerClose := buildPublisher(shutdownCtx, cfg, appLogger)
	defer producerClose()

	productRepository := postgres_product_repo.NewProductRepository(db, appLogger)
	catalogService := app_catalog.NewCatalogService(productRepository, productCache, publisher,
		appLogger.With(zap.String("component", "CatalogService")))

	rpcServer := catalog_rpc.NewServer(cfg.RPCAddr, catalogService, appLogger)
	go func() {
		if err := rpcServer.Serve(shutdownCtx); err != nil {
			appLogger.Error("Catalog RPC server failed", zap.Error(err))
		}
	}()

	serverMetrics := metrics.NewServerMetrics("catalog")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(serverMetrics.Middleware)

	http_products.RegisterRoutes(r, catalogService, cfg.EnableListEndpoint, appLogger)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serverAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Catalog Service started", zap.String("address", serverAddr), zap.String("rpc_address", cfg.RPCAddr))

	<-sigChan

	appLogger.Info("Shutting down Catalog Service...")
	shutdownCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Catalog Service graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Catalog Service stopped.")
}

func buildProductCache(cfg *config.Config, l *zap.Logger) cache.ProductCache {
	if !cfg.CacheEnabled {
		l.Info("Product cache disabled, all lookups go to the store")
		return cache.NewNoop()
	}

	opts := cache.Options{
		KeyPrefix: cfg.CacheKeyPrefix,
		Absolute:  cfg.CacheAbsoluteExpiration,
		Sliding:   cfg.CacheSlidingExpiration,
	}

	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		l.Info("Product cache using Redis backend", zap.String("addr", cfg.RedisAddr))
		return redis_cache.NewProductCache(client, opts, l.With(zap.String("component", "RedisProductCache")))
	default:
		l.Info("Product cache using in-process backend")
		return memory_cache.NewProductCache(opts)
	}
}

func buildPublisher(ctx context.Context, cfg *config.Config, l *zap.Logger) (events.Publisher, func()) {
	if cfg.MessagingProvider != config.MessagingProviderKafka {
		l.Info("Event publishing using log sink")
		return events.NewLogPublisher(l), func() {}
	}

	producer, err := kafka.NewProducer(cfg.GetKafkaBrokers(), l)
	if err != nil {
		// Broker unavailability must not take the catalog down; fall back
		// to the log sink and keep serving.
		l.Warn("Failed to create Kafka producer, falling back to log sink", zap.Error(err))
		return events.NewLogPublisher(l), func() {}
	}

	auditConsumer := kafka_handler.NewEventAuditConsumer(l)
	kafka.StartConsumer(ctx, cfg.GetKafkaBrokers(), cfg.KafkaEventsTopic, cfg.KafkaConsumerGroup, auditConsumer.HandleMessage, l)

	closeFn := func() {
		if err := producer.Close(); err != nil {
			l.Error("Error closing Kafka producer", zap.Error(err))
		}
	}
	return events.NewKafkaPublisher(producer, cfg.KafkaEventsTopic, l), closeFn
}
