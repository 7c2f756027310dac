package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rtanks/ratingsworker/config"
	"rtanks/ratingsworker/internal/scraper"
	"rtanks/ratingsworker/logger"
	"rtanks/ratingsworker/services/cache"
	"rtanks/ratingsworker/services/publisher"
	"rtanks/ratingsworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting ratings worker")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize cache backend
	var cacheSvc cache.CacheService
	switch cfg.CacheBackend {
	case "memcache":
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Using memcache backend")
	default:
		cacheSvc = cache.NewMemoryService()
		log.Info().Msg("Using in-memory cache backend")
	}

	// The transport client is acquired once here and released on shutdown
	fetcher := scraper.NewHTTPFetcher(cfg.FetchTimeout)
	service := scraper.NewService(cfg, fetcher, cacheSvc)
	defer func() {
		if err := service.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("Service shutdown reported an error")
		}
	}()

	if !cfg.PublisherEnabled {
		log.Info().Msg("Publisher disabled; serving on-demand lookups only")
		<-sigChan
		log.Info().Msg("Shutting down gracefully...")
		return
	}

	// Initialize publisher
	redisPublisher := publisher.NewRedisPublisher(
		ctx,
		cfg.RedisAddr,
		cfg.RedisDB,
		cfg.RedisStream,
		cfg.RedisStreamCount,
		cfg.RedisStreamMaxLength,
	)
	defer redisPublisher.Close()

	log.Info().
		Str("addr", cfg.RedisAddr).
		Int("db", cfg.RedisDB).
		Str("stream", cfg.RedisStream).
		Msg("Connected to Redis")

	// Create and start the refresh worker
	w := worker.NewWorker(ctx, service, redisPublisher, cfg.RefreshCategories, cfg.RefreshInterval)

	workerDone := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting refresh worker")
		workerDone <- w.Start()
	}()

	// Wait for shutdown signal or worker error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}
