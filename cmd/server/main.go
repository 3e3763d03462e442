package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "fleetrental-backend/internal/api/http"
	"fleetrental-backend/internal/config"
	"fleetrental-backend/internal/logger"
	"fleetrental-backend/internal/notify"
	"fleetrental-backend/internal/repository/postgres"
	"fleetrental-backend/internal/security"
	"fleetrental-backend/internal/service"
	"fleetrental-backend/internal/storage"
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
	logger.Info("Starting Fleet Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Apply schema migrations
	if err := postgres.Migrate(context.Background(), db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize artifact storage
	artifacts, err := storage.NewLocalArtifactStore(cfg.Storage.ArtifactDir)
	if err != nil {
		logger.Error("Failed to initialize artifact storage", "error", err)
		log.Fatalf("Failed to initialize artifact storage: %v", err)
	}

	// Initialize security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize notification dispatch
	sender := notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	dispatcher := notify.NewDispatcher(sender, cfg.Notify.QueueSize, cfg.Notify.Workers)
	dispatcher.Start()
	defer dispatcher.Stop()

	// Initialize Services
	authService := service.NewAuthService(store.UserRepository, tokenManager)
	vehicleService := service.NewVehicleService(store.VehicleRepository, store.UserRepository)
	missionService := service.NewMissionService(
		store.MissionRepository,
		store.VehicleRepository,
		store.UserRepository,
		dispatcher,
	)
	offerService := service.NewOfferService(
		store.OfferRepository,
		store.MissionRepository,
		store.VehicleRepository,
		store.UserRepository,
		dispatcher,
	)
	contractService := service.NewContractService(
		store.ContractRepository,
		store.OfferRepository,
		store.MissionRepository,
		store.VehicleRepository,
		store.UserRepository,
		dispatcher,
	)
	documentService := service.NewDocumentService(store.ContractRepository, store.UserRepository, artifacts, dispatcher)
	dashboardService := service.NewDashboardService(store.StatsRepository, store.UserRepository)

	// Initialize HTTP API
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authService),
		Vehicles:  httpapi.NewVehicleHandler(vehicleService),
		Missions:  httpapi.NewMissionHandler(missionService),
		Offers:    httpapi.NewOfferHandler(offerService),
		Contracts: httpapi.NewContractHandler(contractService, documentService),
		Dashboard: httpapi.NewDashboardHandler(dashboardService),
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
