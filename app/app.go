package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alumni-gateway/config"
	"alumni-gateway/db"
	"alumni-gateway/handler"
	"alumni-gateway/logger"
	"alumni-gateway/repository"
	"alumni-gateway/router"
	"alumni-gateway/service"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error applying database migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	r, blacklistService := buildRouter(database, redisClient)

	// Optional in-process expiry sweep. Left unscheduled by default so the
	// sweep stays an external (cron or admin) responsibility.
	if schedule := config.AppConfig.Blacklist.CleanupSchedule; schedule != "" {
		c := cron.New()
		_, err := c.AddFunc(schedule, func() {
			if _, err := blacklistService.CleanupExpiredTokens(context.Background()); err != nil {
				logger.Log.WithError(err).Error("Scheduled blacklist cleanup failed")
			}
		})
		if err != nil {
			logger.Log.Fatalf("Failed to schedule blacklist cleanup job: %v", err)
		}
		c.Start()
		defer c.Stop()
		logger.Log.WithField("schedule", schedule).Info("Blacklist cleanup job scheduled")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   config.AppConfig.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: co.Handler(r),
	}

	go func() {
		logger.Log.Infof("Gateway starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// buildRouter wires every layer together. This is the dependency
// injection point shared by Run and the integration test harness.
func buildRouter(database *sql.DB, redisClient *redis.Client) (http.Handler, *service.BlacklistService) {
	cfg := config.AppConfig

	tokenService := service.NewTokenService(
		cfg.JWT.SecretKey,
		time.Duration(cfg.JWT.AccessTokenExpiration)*time.Second,
	)
	routeValidator := service.NewRouteValidator(cfg.Gateway.OpenPaths)

	blacklistRepo := repository.NewBlacklistTokenRepository(database)

	var cache service.ICacheClient
	if redisClient != nil {
		cache = redisClient
	}
	blacklistService := service.NewBlacklistService(
		blacklistRepo,
		tokenService,
		cache,
		time.Duration(cfg.JWT.AccessTokenExpiration)*time.Second,
		time.Duration(cfg.Blacklist.CacheTTLSeconds)*time.Second,
	)
	blacklistHandler := handler.NewBlacklistHandler(blacklistService)

	proxyHandler, err := handler.NewProxyHandler(cfg.Gateway.Routes)
	if err != nil {
		logger.Log.Fatalf("Invalid gateway route configuration: %v", err)
	}

	gate := handler.NewAuthMiddleware(routeValidator, tokenService, blacklistService, cfg.Gateway.CheckRevocation)

	return router.NewRouter(blacklistHandler, gate, proxyHandler), blacklistService
}

// TestApp bundles the wired router with its backing connections for
// integration tests.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

// NewTestApp builds the full application wiring on injected connections.
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	r, _ := buildRouter(database, redisClient)
	return &TestApp{
		DB:     database,
		Redis:  redisClient,
		Router: r,
	}
}
