package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/traffic_review/internal/config"
	"github.com/shenikar/traffic_review/internal/dmv"
	v1 "github.com/shenikar/traffic_review/internal/handler/http/v1"
	"github.com/shenikar/traffic_review/internal/repository"
	"github.com/shenikar/traffic_review/internal/seed"
	"github.com/shenikar/traffic_review/internal/service"
	"github.com/shenikar/traffic_review/internal/webhook"
	"github.com/shenikar/traffic_review/pkg/logger"
	"github.com/shenikar/traffic_review/pkg/postgres"
	redisclient "github.com/shenikar/traffic_review/pkg/redis"
	"github.com/shenikar/traffic_review/pkg/sqlite"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/traffic_review/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Traffic Review API
// @version 1.0
// @description Review queue for traffic violation events: fetch an event, look up the vehicle, accept or reject.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// openStore подключает выбранное хранилище. closeFn освобождает его ресурсы.
func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (service.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := runMigrations(cfg, log); err != nil {
			return nil, nil, err
		}
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info("Successfully connected to PostgreSQL")
		return repository.NewPostgresStore(dbpool), dbpool.Close, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		store, err := repository.NewSQLiteStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.WithField("path", cfg.SQLitePath).Info("Using SQLite store")
		return store, func() { db.Close() }, nil

	default:
		store, err := repository.NewMemoryStore(cfg.StoreFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open memory store: %w", err)
		}
		log.WithField("file", cfg.StoreFile).Info("Using in-memory store")
		return store, func() {}, nil
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Подключение к хранилищу
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	// Redis не обязателен: без него нет кэша DMV и вебхуков
	var (
		publisher    webhook.Publisher = webhook.NoopPublisher{}
		vehicleCache service.VehicleCache
		worker       *webhook.Worker
	)
	if cfg.RedisEnabled() {
		redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		publisher = webhook.NewRedisPublisher(redisClient)
		vehicleCache = repository.NewVehicleCache(redisClient, cfg.LookupCacheTTL)

		worker = webhook.NewWorker(redisClient, log, cfg)
		worker.Start(ctx)
	} else {
		log.Info("REDIS_ADDR is not set, vehicle cache and webhooks are disabled")
	}

	// Очередь событий
	seedEvents, err := seed.Load(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed events: %v", err)
	}

	// Инициализация сервисов
	eventService := service.NewEventService(store, log, seedEvents)
	authService := service.NewAuthService(store, log, 0)
	services := v1.Services{
		Events:      eventService,
		Annotations: service.NewAnnotationService(store, publisher, log),
		Auth:        authService,
		Lookup:      service.NewLookupService(dmv.NewMockGateway(cfg.DMVLatency, log), vehicleCache, log),
	}

	if _, err := eventService.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	if _, err := authService.RegisterReviewer(ctx, cfg.DemoReviewerEmail, cfg.DemoReviewerPassword, cfg.DemoReviewerName); err != nil {
		log.Fatalf("Failed to register demo reviewer: %v", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery())
	if log.IsLevelEnabled(logrus.DebugLevel) {
		router.Use(gin.Logger())
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-API-Key")
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Остановка воркера вебхуков
	cancel()
	if worker != nil {
		worker.Wait()
	}

	log.Info("Server gracefully stopped")
}
