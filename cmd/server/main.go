// Package main is the entry point for the fraud detection API server.
// It wires the storage backend, cache, prediction gateway and HTTP routes,
// then starts the server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudwatch/internal/config"
	"fraudwatch/internal/handlers"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/repositories/cache"
	"fraudwatch/internal/repositories/memory"
	"fraudwatch/internal/routes"
	"fraudwatch/internal/services/alerting"
	"fraudwatch/internal/services/ingestion"
	"fraudwatch/internal/services/notification"
	"fraudwatch/internal/services/prediction"
	"fraudwatch/internal/services/scoring"
	"fraudwatch/internal/services/stats"
	"fraudwatch/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	collector := metrics.NewCollector()
	metricsServer := collector.StartServer(config.GetEnv("METRICS_ADDR", ":9100"))

	// Storage backend: durable Postgres or in-memory with snapshots.
	var (
		txRepo         repositories.TransactionRepository
		alertRepo      repositories.AlertRepository
		snapshotter    *memory.Snapshotter
		persistenceErr func() error
	)
	storage := config.GetEnv("STORAGE_BACKEND", "memory")
	switch storage {
	case "postgres":
		db, err := repositories.InitDB()
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		txRepo = repositories.NewTransactionRepository(db)
		alertRepo = repositories.NewAlertRepository(db)
		log.Println("Connected to postgres")
	case "memory":
		memTx := memory.NewTransactionRepository()
		memAlerts := memory.NewAlertRepository()
		txRepo = memTx
		alertRepo = memAlerts

		if path := config.GetEnv("SNAPSHOT_PATH", ""); path != "" {
			snapshotter = memory.NewSnapshotter(
				path,
				config.GetDurationEnv("SNAPSHOT_INTERVAL", 30*time.Second),
				memTx, memAlerts,
				func(error) { collector.RecordSnapshotFailure() },
			)
			if err := snapshotter.Load(); err != nil {
				log.Printf("Snapshot restore failed, starting empty: %v", err)
			}
			snapshotter.Start()
			persistenceErr = snapshotter.LastError
		}
		log.Println("Using in-memory storage")
	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q", storage)
	}

	// Cache: Redis when configured, in-process otherwise.
	var cacheSvc cache.Service
	if host := config.GetEnv("REDIS_HOST", ""); host != "" {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:     host,
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		cacheSvc = redisCache
		log.Println("Connected to redis")
	} else {
		cacheSvc = cache.NewLocalCache(5 * time.Minute)
	}
	defer func() {
		if err := cacheSvc.Close(); err != nil {
			log.Printf("Failed to close cache: %v", err)
		}
	}()

	// Alert notifications: RabbitMQ when configured, logs otherwise.
	var notifier notification.Publisher
	if url := config.GetEnv("AMQP_URL", ""); url != "" {
		amqpPub, err := notification.NewAMQPPublisher(notification.AMQPConfig{
			URL:        url,
			Exchange:   config.GetEnv("AMQP_EXCHANGE", "fraudwatch.alerts"),
			RoutingKey: config.GetEnv("AMQP_ROUTING_KEY", "alert.created"),
		})
		if err != nil {
			log.Fatalf("Failed to connect to rabbitmq: %v", err)
		}
		notifier = amqpPub
		log.Println("Connected to rabbitmq")
	} else {
		notifier = notification.NewLogPublisher()
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Printf("Failed to close notifier: %v", err)
		}
	}()

	// Prediction gateway: remote model with local fallback.
	var mlClient prediction.ModelClient
	if url := config.GetEnv("ML_SERVICE_URL", "http://localhost:8000"); url != "" {
		mlClient = prediction.NewMLClient(url, config.GetDurationEnv("ML_TIMEOUT", 5*time.Second))
	}
	predictor := prediction.NewService(mlClient, scoring.NewService())

	alertSvc := alerting.NewService(alertRepo)
	statsSvc := stats.NewService(txRepo, alertRepo, cacheSvc)
	ingestSvc := ingestion.NewService(txRepo, alertRepo, predictor, alertSvc, notifier, statsSvc, collector)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Transactions: handlers.NewTransactionHandler(ingestSvc),
		Alerts:       handlers.NewAlertHandler(alertSvc, ingestSvc),
		Stats:        handlers.NewStatsHandler(statsSvc),
		Health:       handlers.NewHealthHandler(txRepo, alertRepo, storage, persistenceErr),
	})

	// Graceful shutdown: flush a final snapshot before exit.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down...")
		if snapshotter != nil {
			snapshotter.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = collector.Shutdown(ctx, metricsServer)
		_ = app.ShutdownWithContext(ctx)
	}()

	if err := app.Listen(":" + config.GetEnv("PORT", "5000")); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
