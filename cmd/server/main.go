package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "cyclerent-backend/internal/api/http"
	"cyclerent-backend/internal/config"
	"cyclerent-backend/internal/logger"
	"cyclerent-backend/internal/repository/postgres"
	"cyclerent-backend/internal/security"
	"cyclerent-backend/internal/service"
	"cyclerent-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CycleRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		logger.Info("Using local document storage", "upload_dir", cfg.Storage.UploadDir)
		localStorage, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize local storage", "error", err)
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
		storageService = localStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Services
	authService := service.NewAuthService(store.Operators, tokenManager)
	contractService := service.NewContractService(store.Contracts, store.Catalog, cfg.Pricing.InsuranceFlat)
	catalogService := service.NewCatalogService(store.Catalog)
	documentService := service.NewDocumentService(store.Contracts, storageService)

	// Seed the bootstrap admin operator
	if err := authService.EnsureDefaultOperator(
		context.Background(),
		cfg.Bootstrap.AdminEmail,
		cfg.Bootstrap.AdminName,
		cfg.Bootstrap.AdminPassword,
	); err != nil {
		logger.Error("Failed to seed bootstrap operator", "error", err)
	}

	// Assemble router and serve
	router := httpapi.NewRouter(
		authService,
		contractService,
		catalogService,
		documentService,
		tokenManager,
		storageService,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
