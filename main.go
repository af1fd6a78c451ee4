package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spacewise-io/occupancy-engine/pkg/auth"
	"github.com/spacewise-io/occupancy-engine/pkg/cache"
	"github.com/spacewise-io/occupancy-engine/pkg/config"
	"github.com/spacewise-io/occupancy-engine/pkg/database"
	"github.com/spacewise-io/occupancy-engine/pkg/handlers"
	"github.com/spacewise-io/occupancy-engine/pkg/logging"
	"github.com/spacewise-io/occupancy-engine/pkg/middleware"
	"github.com/spacewise-io/occupancy-engine/pkg/repositories"
	"github.com/spacewise-io/occupancy-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	// Dependencies are constructed once here and injected; no package
	// holds a global store or cache handle.
	resultCache := cache.NewAggregateCache(redisClient, logger)
	tenantRepo := repositories.NewTenantRepository(db)
	roomRepo := repositories.NewRoomRepository()
	eventRepo := repositories.NewEventRepository()
	occupancyService := services.NewOccupancyService(roomRepo, eventRepo, resultCache, logger)

	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, logger)
	authMiddleware := auth.NewMiddleware(tokenService, tenantRepo, logger)
	tenantMiddleware := database.WithTenantContext(db, logger)

	// High-volume budget for sensor ingestion, tight budget for reads.
	ingestLimit := middleware.NewIPRateLimiter(
		rate.Every(time.Minute/1000), 1000, "Event ingestion rate limit exceeded.")
	readLimit := middleware.NewIPRateLimiter(
		rate.Every(15*time.Minute/100), 100, "Too many requests from this IP, please try again later.")

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	occupancyHandler := handlers.NewOccupancyHandler(occupancyService, logger)
	occupancyHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware, ingestLimit.Wrap, readLimit.Wrap)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.RequestLogger(logger)(middleware.Instrument(mux))

	server := &http.Server{
		Addr:         cfg.BindAddr + ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting occupancy-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version),
			zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown incomplete", zap.Error(err))
	}
}

// runMigrations opens a short-lived database/sql handle for golang-migrate
// and closes it before the pgx pool takes over.
func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	return database.RunMigrations(sqlDB, cfg.MigrationsPath, logger)
}
