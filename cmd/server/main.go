package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "eventops-backend/internal/api/http"
	"eventops-backend/internal/config"
	"eventops-backend/internal/logger"
	"eventops-backend/internal/repository/postgres"
	"eventops-backend/internal/security"
	"eventops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EventOps Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiryHours)

	// Initialize Email Service (optional)
	var emailSvc service.EmailService
	if cfg.Email.Enabled {
		logger.Info("Ticket email enabled", "from", cfg.Email.FromEmail)
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	}

	// Initialize Services
	rowDelay := time.Duration(cfg.Import.RowDelayMillis) * time.Millisecond
	attendeeSvc := service.NewAttendeeService(
		store.AttendeeRepository,
		store.DeletionRepository,
		emailSvc,
		rowDelay,
	)
	importSvc := service.NewImportService(attendeeSvc)
	dispatchSvc := service.NewDispatchService(store.DispatchRepository, store.AttendeeRepository)
	deletionSvc := service.NewDeletionService(store.DeletionRepository)
	authSvc := service.NewAuthService(cfg.Auth.AdminPasswordHash, tokenManager)

	// Initialize Router
	router := httpapi.NewRouter(authSvc, attendeeSvc, importSvc, dispatchSvc, deletionSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
