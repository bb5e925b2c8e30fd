package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/ledgerbook/internal/adapter/http"
	"github.com/iho/ledgerbook/internal/adapter/http/handler"
	postgresRepo "github.com/iho/ledgerbook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgerbook/internal/adapter/repository/redis"
	"github.com/iho/ledgerbook/internal/infrastructure/config"
	"github.com/iho/ledgerbook/internal/infrastructure/logger"
	"github.com/iho/ledgerbook/internal/infrastructure/postgres"
	"github.com/iho/ledgerbook/internal/infrastructure/redis"
	"github.com/iho/ledgerbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations if requested
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	ledgerItemRepo := postgresRepo.NewLedgerItemRepository(pool)
	partyRepo := postgresRepo.NewPartyRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	ledgerItemUC := usecase.NewLedgerItemUseCase(txManager, ledgerItemRepo, partyRepo, idGen, retrier)
	partyUC := usecase.NewPartyUseCase(partyRepo, idGen)

	var summaryCache usecase.Cache
	if cfg.SummaryCacheTTL > 0 {
		summaryCache = redisRepo.NewCache(redisClient)
	}
	summaryUC := usecase.NewSummaryUseCase(ledgerItemRepo, summaryCache, cfg.SummaryCacheTTL)

	// Initialize handlers
	partyHandler := handler.NewPartyHandler(partyUC)
	ledgerItemHandler := handler.NewLedgerItemHandler(ledgerItemUC)
	summaryHandler := handler.NewSummaryHandler(summaryUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PartyHandler:      partyHandler,
		LedgerItemHandler: ledgerItemHandler,
		SummaryHandler:    summaryHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		Logger:            appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func serverAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}
