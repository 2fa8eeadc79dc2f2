package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/realkdc/top-thc-brands/internal/adapters/cache"
	"github.com/realkdc/top-thc-brands/internal/adapters/database"
	"github.com/realkdc/top-thc-brands/internal/api/handlers"
	"github.com/realkdc/top-thc-brands/internal/api/middleware"
	"github.com/realkdc/top-thc-brands/internal/api/routes"
	"github.com/realkdc/top-thc-brands/internal/auth"
	"github.com/realkdc/top-thc-brands/internal/domain/providers"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/redis"
	"github.com/realkdc/top-thc-brands/internal/infrastructure/observability"
	"github.com/realkdc/top-thc-brands/pkg/config"
)

const (
	serviceName    = "top-thc-brands-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Missing .env is fine; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(serviceName, cfg.Environment)
	handlers.SetVerboseErrors(!cfg.IsProduction())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; rate limiting falls back to in-process state
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Ensure tables exist. Provisioning is best effort: a managed database
	// may refuse DDL, in which case the operator creates the tables.
	provisioner := database.NewTableProvisioner(pgClient)
	for _, result := range provisioner.Provision(ctx) {
		if result.Err != nil {
			log.Warn().Err(result.Err).Str("table", result.Table).Msg("table provisioning incomplete")
		}
	}

	brandAdapter := database.NewBrandAdapter(pgClient)
	contactAdapter := database.NewContactAdapter(pgClient)
	subscriberAdapter := database.NewSubscriberAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	leaderboardAdapter := database.NewLeaderboardAdapter(pgClient)

	tokenService := auth.NewTokenService(cfg.JWT)

	brandHandler := handlers.NewBrandHandler(brandAdapter)
	contactHandler := handlers.NewContactHandler(contactAdapter)
	subscriberHandler := handlers.NewSubscriberHandler(subscriberAdapter)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardAdapter, brandAdapter, cacheProvider)
	authHandler := handlers.NewAuthHandler(userAdapter, tokenService)
	metaHandler := handlers.NewMetaHandler(serviceName, serviceVersion)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	router := routes.NewRouter(
		cfg,
		brandHandler,
		contactHandler,
		subscriberHandler,
		leaderboardHandler,
		authHandler,
		metaHandler,
		authMiddleware,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("environment", cfg.Environment).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
