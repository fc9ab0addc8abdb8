package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/bizhub-api/internal/application/scheduler"
	"github.com/sangkips/bizhub-api/internal/application/service"
	"github.com/sangkips/bizhub-api/internal/config"
	"github.com/sangkips/bizhub-api/internal/infrastructure/database"
	"github.com/sangkips/bizhub-api/internal/infrastructure/repository"
	"github.com/sangkips/bizhub-api/internal/infrastructure/storage"
	"github.com/sangkips/bizhub-api/internal/presentation/http/handler"
	"github.com/sangkips/bizhub-api/internal/presentation/http/routes"
	"github.com/sangkips/bizhub-api/pkg/email"
	"github.com/sangkips/bizhub-api/pkg/notify"
	"github.com/sangkips/bizhub-api/pkg/oauth"
	"github.com/sangkips/bizhub-api/pkg/utils"
	"gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logLevel := logger.Warn
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Failed to open file storage: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	complianceRepo := repository.NewComplianceDocumentRepository(db)
	websiteRepo := repository.NewWebsiteRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
		AppName:      cfg.App.Name,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	smsSender, err := notify.NewSMSSenderFromConfig(cfg.SMS.Provider, notify.TwilioConfig{
		AccountSID: cfg.SMS.TwilioAccountSID,
		AuthToken:  cfg.SMS.TwilioAuthToken,
		FromNumber: cfg.SMS.TwilioFromNumber,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize SMS sender: %v", err)
		smsSender = notify.NewNullSender()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, businessRepo, passwordResetRepo, jwtManager, emailService, googleOAuthService)
	websiteService := service.NewWebsiteService(websiteRepo, businessRepo)
	businessService := service.NewBusinessService(businessRepo, userRepo, websiteService)
	leadService := service.NewLeadService(leadRepo)
	customerService := service.NewCustomerService(customerRepo)
	saleService := service.NewSaleService(saleRepo, customerRepo, businessRepo)
	quoteService := service.NewQuoteService(quoteRepo, customerRepo, businessRepo, saleService)
	taskService := service.NewTaskService(taskRepo, leadRepo, customerRepo)
	fileService := service.NewFileService(store, jwtManager, cfg.App.BaseURL, cfg.JWT.FileURLTTL)
	complianceService := service.NewComplianceService(complianceRepo, businessRepo, store, fileService)
	dashboardService := service.NewDashboardService(analyticsRepo, complianceService)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	sweeper := service.NewComplianceSweeper(complianceService, businessRepo, complianceRepo, emailService, smsSender, service.SweepConfig{
		Concurrency: cfg.Compliance.SweepConcurrency,
		Cooldown:    cfg.Compliance.AlertCooldown,
		WindowDays:  cfg.Compliance.AlertWindowDays,
	})

	// Background jobs
	jobs := scheduler.New(30 * time.Minute)
	if err := jobs.Add("compliance-sweep", cfg.Compliance.SweepCron, scheduler.SweepJob(sweeper)); err != nil {
		log.Fatalf("Failed to schedule compliance sweep: %v", err)
	}
	if err := jobs.Add("cleanup", cfg.Compliance.CleanupCron, scheduler.CleanupJob(map[string]scheduler.Purger{
		"idempotency keys":      idempotencyRepo,
		"password reset tokens": passwordResetRepo,
	})); err != nil {
		log.Fatalf("Failed to schedule cleanup: %v", err)
	}
	jobs.Start()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.App.FrontendURL, cfg.App.Env == "production"),
		Business:   handler.NewBusinessHandler(businessService),
		Lead:       handler.NewLeadHandler(leadService, cfg.Storage.UploadMaxSize),
		Customer:   handler.NewCustomerHandler(customerService),
		Sale:       handler.NewSaleHandler(saleService),
		Quote:      handler.NewQuoteHandler(quoteService),
		Task:       handler.NewTaskHandler(taskService),
		Compliance: handler.NewComplianceHandler(complianceService, cfg.Storage.UploadMaxSize),
		File:       handler.NewFileHandler(fileService),
		Website:    handler.NewWebsiteHandler(websiteService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		User:       handler.NewUserHandler(userService),
	}

	rateLimiter := routes.NewRateLimiter(cfg.RateLimit)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		BusinessRepo:    businessRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: server shutdown: %v", err)
	}
	jobs.Stop(shutdownCtx)
	rateLimiter.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server stopped")
}
