package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"svitlo-board/internal/board"
	"svitlo-board/internal/cache"
	"svitlo-board/internal/config"
	"svitlo-board/internal/metrics"
	"svitlo-board/internal/mq"
	"svitlo-board/internal/probe"
	"svitlo-board/internal/snapshot"
)

func main() {
	// Load .env if present.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Snapshot store and fetcher ---
	store := snapshot.NewStore()
	fetcher := snapshot.NewFetcher(cfg.SourceURL, cfg.Regions, cfg.FetchInterval, store)
	fetcher.SetProbe(probe.Reachable)

	// --- Redis (warm start from the last applied snapshots) ---
	redisCache, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisCache.Close()
	fetcher.SetCache(redisCache)
	fetcher.Restore(ctx)
	log.Println("redis connected")

	// --- Prometheus metrics ---
	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}
	fetcher.SetMetrics(collector)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.StartServer(ctx, cfg.MetricsAddr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
		log.Printf("metrics server starting on %s", cfg.MetricsAddr)
	}

	// --- RabbitMQ publisher ---
	mqPublisher, err := mq.NewPublisher(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("rabbitmq publisher: %v", err)
	}
	defer mqPublisher.Close()
	mqPublisher.SetMetrics(collector)
	fetcher.SetNotifier(mq.NewScheduleNotifier(mqPublisher, cfg.OverlapGroups))
	log.Println("rabbitmq connected")

	// --- Start fetch loop ---
	go fetcher.Start(ctx)
	log.Printf("schedule fetcher started (interval: %ds, regions: %v)", cfg.FetchInterval, cfg.Regions)

	// --- Fiber HTTP Server ---
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	h := &board.Handlers{Store: store, OverlapGroups: cfg.OverlapGroups}
	api := app.Group("/api")
	h.RegisterRoutes(api)

	// --- Graceful shutdown ---
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	log.Printf("board service starting on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
