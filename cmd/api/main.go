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

	pkgvalidator "github.com/twgdev/sigma-scheduler/pkg/validator"

	"github.com/twgdev/sigma-scheduler/internal/adapter/handler"
	"github.com/twgdev/sigma-scheduler/internal/adapter/repository"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/cache"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/database"
	"github.com/twgdev/sigma-scheduler/internal/infrastructure/realtime"
	meetingUsecase "github.com/twgdev/sigma-scheduler/internal/usecase/meeting"
	"github.com/twgdev/sigma-scheduler/pkg/config"
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

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	var meetingService *meetingUsecase.MeetingService

	if cfg.StoreConfigured() {
		// Initialize the record store
		log.Println("📦 Connecting to record store...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to record store: %v", err)
		}
		defer database.CloseDB(db)

		// Run migrations only when explicitly enabled in config.
		// Hosted deployments manage schema by hand in the SQL console.
		if cfg.Store.AutoMigrate {
			if cfg.Server.Environment == "production" {
				log.Fatalf("AutoMigrate is enabled in production. Disable STORE_AUTO_MIGRATE or manage schema with sql-migrate.")
			}
			log.Println("🔄 Running migrations (development only) ...")
			if err := database.Migrate(db); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		} else {
			log.Println("🔄 Skipping migrations; schema is managed out-of-band")
		}

		// Initialize Redis for the change-event bus
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		// Initialize repositories and the realtime bus
		log.Println("⚙️  Initializing repositories...")
		meetingRepo := repository.NewMeetingRepository(db)
		bus := realtime.NewBus(redisClient, logger)
		listCache := cache.NewMemoryStore()

		meetingService = meetingUsecase.NewMeetingService(meetingRepo, bus, listCache, logger, cfg.Event.ID, true)
	} else {
		log.Println("⚠️  Record store not configured, running in MOCK mode (sample data only)")
		meetingService = meetingUsecase.NewMeetingService(nil, nil, nil, logger, cfg.Event.ID, false)
	}

	// Initialize meeting handler
	log.Println("📅 Initializing meeting handler...")
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler)
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
