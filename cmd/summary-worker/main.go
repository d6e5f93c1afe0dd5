package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"study-tracker/internal/config"
	"study-tracker/internal/db"
	"study-tracker/internal/logger"
	"study-tracker/internal/queue"
	"study-tracker/internal/sheet"
	"study-tracker/internal/summary"
	"study-tracker/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting summary worker")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid report timezone")
	}

	store, err := sheet.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to connect to record store")
	}
	repo := db.NewRepository(store)

	// Without redis only the daily schedule runs
	var consumer *queue.Consumer
	if cfg.Redis.Enabled {
		redisClient, err := queue.NewRedisClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		consumer = queue.NewConsumer(redisClient, cfg)
	}

	summaryWorker := worker.NewSummaryWorker(cfg, summary.NewService(repo, loc), consumer)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start worker
	go func() {
		if err := summaryWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Summary worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down summary worker...")

	// Cancel context to stop worker
	cancel()
	summaryWorker.Stop()

	log.Info().Msg("Summary worker exited")
}
