package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "registrar-portal-backend/internal/api/http"
	"registrar-portal-backend/internal/config"
	"registrar-portal-backend/internal/logger"
	"registrar-portal-backend/internal/repository/postgres"
	"registrar-portal-backend/internal/security"
	"registrar-portal-backend/internal/service"

	_ "github.com/lib/pq"
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
	logger.Info("Starting Registrar Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.From,
		cfg.Email.FromName,
		cfg.Email.Disabled,
	)
	authSvc := service.NewAuthService(store.ActorRepository, store.AuditLogRepository, tokenManager)
	intakeSvc := service.NewIntakeService(store.TransactionRepository, store.CredentialRepository, store.PackageRepository, store.ActorRepository)
	workflowSvc := service.NewWorkflowService(store.TransactionRepository, store.ActorRepository, emailSvc)
	catalogSvc := service.NewCatalogService(store.DepartmentRepository, store.CredentialRepository, store.PackageRepository, store.ActorRepository, store.AuditLogRepository)
	auditSvc := service.NewAuditService(store.AuditLogRepository)
	reportSvc := service.NewReportService(store.ReportRepository)

	// Initialize HTTP handlers
	handlers := &httpapi.Handlers{
		Auth:        httpapi.NewAuthHandler(authSvc),
		Transaction: httpapi.NewTransactionHandler(intakeSvc, workflowSvc),
		Catalog:     httpapi.NewCatalogHandler(catalogSvc),
		Audit:       httpapi.NewAuditHandler(auditSvc),
		Report:      httpapi.NewReportHandler(reportSvc),
	}
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager, store.ActorRepository)

	router := httpapi.NewRouter(handlers, authMiddleware)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
