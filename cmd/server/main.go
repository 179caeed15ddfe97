package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chronicle-server/internal/ai"
	"chronicle-server/internal/config"
	"chronicle-server/internal/handler"
	"chronicle-server/internal/interfaces"
	"chronicle-server/internal/logger"
	"chronicle-server/internal/middleware"
	"chronicle-server/internal/service"
	memorystorage "chronicle-server/internal/storage/memory"
	"chronicle-server/internal/storage/postgres"
	redisstorage "chronicle-server/internal/storage/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// .env опционален, переменные окружения имеют приоритет.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	zap.ReplaceGlobals(log)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))
	zap.L().Info("Configuration loaded", zap.String("storage", cfg.StorageBackend), zap.String("aiClient", cfg.AIClientType))

	// --- Storage ---
	var (
		characterRepo interfaces.CharacterRepository
		sceneRepo     interfaces.SceneRepository
	)

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pgPool, err := setupPostgres(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer pgPool.Close()
		zap.L().Info("Connected to PostgreSQL")

		if err := postgres.ApplyMigrations(pgPool); err != nil {
			zap.L().Fatal("Failed to apply migrations", zap.Error(err))
		}

		characterRepo = postgres.NewCharacterRepository(pgPool, log)
		sceneRepo = postgres.NewSceneRepository(pgPool, log)
	default:
		characterRepo = memorystorage.NewCharacterRepository(log)
		sceneRepo = memorystorage.NewSceneRepository(log)
		zap.L().Info("Using in-memory storage")
	}

	// --- Recap cache (опционально) ---
	var recapCache interfaces.RecapCache
	if cfg.RedisAddr != "" {
		redisClient, err := setupRedis(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		zap.L().Info("Connected to Redis")

		recapCache = redisstorage.NewRecapCache(redisClient, cfg.RecapCacheTTL, log)
	} else {
		zap.L().Info("REDIS_ADDR not set, recap caching disabled")
	}

	// --- AI client ---
	narrativeClient, err := ai.NewNarrativeClient(cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to create narrative client", zap.Error(err))
	}

	// --- Dependency Injection ---
	chronicleSvc := service.NewChronicleService(characterRepo, sceneRepo, narrativeClient, recapCache, log)
	chronicleHandler := handler.NewChronicleHandler(chronicleSvc, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORS_ALLOWED_ORIGINS not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	chronicleHandler.RegisterRoutes(router)

	// Prometheus middleware применяется после регистрации роутов.
	p.Use(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // генерация сцены может быть долгой
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	zap.L().Debug("Setting up PostgreSQL connection...")

	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBMaxConns)

	var pool *pgxpool.Pool
	var lastErr error
	maxRetries := 20
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err = pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()

		if err != nil {
			lastErr = fmt.Errorf("unable to create postgres connection pool (attempt %d/%d): %w", attempt, maxRetries, err)
			zap.L().Warn("Postgres connection pool creation failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
			}
			continue
		}

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = pool.Ping(pingCtx)
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
			return pool, nil
		}

		pool.Close()
		lastErr = fmt.Errorf("unable to ping postgres database (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Postgres ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	zap.L().Debug("Setting up Redis connection...")
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	var client *redis.Client
	var lastErr error
	maxRetries := 20
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client = redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}
