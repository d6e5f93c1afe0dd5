package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"study-tracker/internal/api"
	"study-tracker/internal/config"
	"study-tracker/internal/db"
	"study-tracker/internal/logger"
	"study-tracker/internal/queue"
	"study-tracker/internal/session"
	"study-tracker/internal/sheet"
	"study-tracker/internal/summary"

	"github.com/gin-gonic/gin"
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

	log.Info().Str("version", cfg.App.Version).Msg("Starting API server")

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid report timezone")
	}

	// Connect to the record store; any failure here is fatal
	store, err := sheet.Open(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to connect to record store")
	}
	repo := db.NewRepository(store)

	// Redis backs the summary queue and, optionally, sessions
	var (
		redisClient *queue.RedisClient
		producer    *queue.Producer
	)
	if cfg.Redis.Enabled {
		redisClient, err = queue.NewRedisClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		producer = queue.NewProducer(redisClient, cfg)
	}

	var sessions session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		if redisClient == nil {
			log.Fatal().Msg("Redis session backend requires redis.enabled")
		}
		sessions = session.NewRedisStore(redisClient.Client(), cfg.Session.KeyPrefix, cfg.Session.TTL)
	case config.SessionBackendBolt:
		boltStore, err := session.NewBoltStore(cfg.Session.BoltPath, cfg.Session.TTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open session database")
		}
		defer boltStore.Close()
		sessions = boltStore
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}
	log.Info().Str("backend", cfg.Session.Backend).Msg("Session store ready")

	gate := session.NewGate(repo, sessions)
	handler := api.NewHandler(cfg, loc, repo, gate, summary.NewService(repo, loc), producer)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(api.CORSMiddleware(cfg.Server.AllowOrigins))
	router.Use(api.LoggingMiddleware())
	router.Use(api.RecoveryMiddleware())

	// Setup routes
	api.SetupRoutes(router, handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
