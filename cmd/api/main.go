package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/wefi-dex/otterai-backend/pkg/validator"

	"github.com/wefi-dex/otterai-backend/internal/adapter/handler"
	"github.com/wefi-dex/otterai-backend/internal/adapter/repository"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/cache"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/database"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/external/email"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/external/otterai"
	"github.com/wefi-dex/otterai-backend/internal/infrastructure/storage"
	"github.com/wefi-dex/otterai-backend/internal/usecase/ingest"
	"github.com/wefi-dex/otterai-backend/pkg/config"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema is managed with sql-migrate. Auto-apply only when explicitly
	// enabled; production deployments run migrations from CI/CD.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying SQL migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; apply them with sql-migrate in CI/CD")
	}

	// Initialize Redis (optional, ingestion degrades to direct lookups)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		log.Println("⚠️  Redis disabled; organization lookups will not be cached")
	}

	// Initialize object storage (optional, used for payload archival)
	var archiver ingest.PayloadArchiver
	if cfg.Storage.ArchivePayloads {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = minioClient
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if cfg.Server.Environment == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	salesCallRepo := repository.NewSalesCallRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize external clients
	otterClient := otterai.NewClient(&cfg.OtterAI)
	var emailSender ingest.EmailSender
	if cfg.Email.APIKey != "" {
		emailSender = email.NewSender(&cfg.Email)
	}

	// Initialize ingestion service
	log.Println("📥 Initializing ingestion pipeline...")
	ingestService := ingest.NewService(
		salesCallRepo,
		organizationRepo,
		analyticsRepo,
		notificationRepo,
		userRepo,
		archiver,
		emailSender,
		redisClient,
		cfg,
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	webhookHandler := handler.NewWebhook(ingestService, logger)
	salesCallHandler := handler.NewSalesCallHandler(salesCallRepo, analyticsRepo, otterClient, cfg, logger)
	organizationHandler := handler.NewOrganizationHandler(organizationRepo, logger)
	userHandler := handler.NewUserHandler(userRepo, logger)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, webhookHandler, salesCallHandler, organizationHandler, userHandler, notificationHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
