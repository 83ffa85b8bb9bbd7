package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management/config"
	deliveryHttp "hospital-management/internal/delivery/http"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/infrastructure/cache"
	"hospital-management/internal/infrastructure/database"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, log, err := Setup()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// Initialize database
	gormLevel := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		gormLevel = logger.Info
	}
	db, err := database.NewPostgresConnection(cfg.DB, gormLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.DB); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("Database migrations applied")
	}

	// Initialize Redis
	ctx := context.Background()
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	server, authUsecase, err := initializeServer(cfg, log, db, redisClient)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}
	app.Server = server

	created, err := authUsecase.EnsureDefaultAdmin(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to bootstrap admin user: %w", err)
	}
	log.WithFields(logrus.Fields{
		"enabled":  cfg.Admin.Bootstrap,
		"created":  created,
		"username": cfg.Admin.Username,
	}).Info("Admin bootstrap finished")

	return app, nil
}

// Setup loads the configuration and configures logging
func Setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.App)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, usecase.AuthUsecase, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.Session)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	surgeryRepo := repository.NewSurgeryRepository()
	recordRepo := repository.NewMedicalRecordRepository()

	// Initialize Redis-backed stores
	sessions := service.NewRedisSessionStore(redisClient, log)
	notices := service.NewRedisNoticeStore(redisClient, log, cfg.Session.Expiry)

	// Initialize usecases
	authUsecase, err := usecase.NewAuthUsecase(db, log, userRepo, jwtService, sessions, cfg.App, cfg.Admin)
	if err != nil {
		return nil, nil, err
	}
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, notices)
	surgeryUsecase := usecase.NewSurgeryUsecase(db, log, userRepo, surgeryRepo)
	recordUsecase := usecase.NewMedicalRecordUsecase(db, log, userRepo, recordRepo, surgeryRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, cfg.Session.CookieName, log)
	roleMiddleware := middleware.NewRoleMiddleware(notices, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSAllowedOrigin)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, cfg.App.Name, cfg.Session)
	userHandler := handler.NewUserHandler(userUsecase, roleMiddleware)
	surgeryHandler := handler.NewSurgeryHandler(surgeryUsecase, customValidator, roleMiddleware)
	recordHandler := handler.NewMedicalRecordHandler(recordUsecase, customValidator, roleMiddleware)

	// Initialize router
	router := deliveryHttp.NewRouter(log, authHandler, userHandler, surgeryHandler, recordHandler, authMiddleware, roleMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, authUsecase, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the database and Redis connections
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
