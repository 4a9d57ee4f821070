package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contentcoach/internal/auth"
	"contentcoach/internal/config"
	"contentcoach/internal/domain/services"
	"contentcoach/internal/handler"
	"contentcoach/internal/middleware"
	"contentcoach/internal/repository/postgres"
	"contentcoach/internal/service"
	serviceAuth "contentcoach/internal/service/auth"
	"contentcoach/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Firebase ID token verification
	jwtVerifier, err := auth.NewJWTVerifier(cfg.FirebaseJWKSURL, cfg.FirebaseProjectID, cfg.FirebaseIssuer, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	denylist := auth.NewTokenDenylist(cfg.TokenJanitorInterval, logger)
	defer denylist.Close()

	ctx := context.Background()
	poolOpts := postgres.DefaultPoolOptions()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL, poolOpts)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", poolOpts.MaxConns,
		"min_conns", poolOpts.MinConns,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.RunMigrations {
		migrator := postgres.NewMigrator(pool, tables, logger)
		if err := migrator.Up(ctx); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		migrator.Close()
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	formRepo := postgres.NewFormRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	settingsRepo := postgres.NewSettingsRepository(repoConfig)
	apiKeyRepo := postgres.NewAPIKeyRepository(repoConfig)
	meetingRepo := postgres.NewMeetingRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Logo storage is optional; without a bucket uploads answer 503
	var presigner services.ObjectPresigner
	if cfg.S3.Enabled() {
		s3Presigner, err := storage.NewS3Presigner(ctx, cfg.S3, logger)
		if err != nil {
			log.Fatalf("Failed to create S3 presigner: %v", err)
		}
		presigner = s3Presigner
	} else {
		logger.Warn("S3_BUCKET not set, logo uploads disabled")
	}

	// Services
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(formRepo, folderRepo)
	identityClient := auth.NewIdentityToolkitClient(cfg.IdentityToolkitURL, cfg.FirebaseAPIKey, logger)

	settingsService := service.NewSettingsService(settingsRepo, cfg.DefaultPresentationURL, logger)
	formService := service.NewFormService(formRepo, authorizer, logger)
	folderService := service.NewFolderService(folderRepo, formRepo, txManager, logger)
	dashboardService := service.NewDashboardService(formRepo, folderRepo, meetingRepo, settingsService, logger)
	adminService := service.NewAdminService(formRepo, userRepo, logger)
	apiKeyService := service.NewAPIKeyService(apiKeyRepo, 0, logger)
	sessionService := service.NewSessionService(identityClient, denylist, userRepo, logger)
	profileService := service.NewProfileService(userRepo, logger)
	meetingService := service.NewMeetingService(meetingRepo, authorizer, logger)
	logoService := service.NewLogoService(presigner, authorizer, logger)

	logger.Info("services initialized")

	// Handlers
	healthHandler := handler.NewHealthHandler(pool, logger)
	authHandler := handler.NewAuthHandler(sessionService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	formHandler := handler.NewFormHandler(formService, logger)
	folderHandler := handler.NewFolderHandler(folderService, formService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	logoHandler := handler.NewLogoHandler(logoService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)
	apiKeyHandler := handler.NewAPIKeyHandler(apiKeyService, logger)

	requireAdmin := middleware.RequireAdmin(adminService, logger)
	requireSuperAdmin := middleware.RequireSuperAdmin(cfg.SuperAdminEmail, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/password", authHandler.UpdatePassword)
	mux.HandleFunc("POST /api/auth/password-reset", authHandler.SendPasswordReset)

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.GetDashboard)
	mux.HandleFunc("GET /api/dashboard/summary", dashboardHandler.GetSummary)

	// Forms
	mux.HandleFunc("GET /api/forms", formHandler.ListForms)
	mux.HandleFunc("POST /api/forms", formHandler.CreateForm)
	mux.HandleFunc("GET /api/forms/{id}", formHandler.GetForm)
	mux.HandleFunc("PATCH /api/forms/{id}", formHandler.UpdateForm)
	mux.HandleFunc("DELETE /api/forms/{id}", formHandler.DeleteForm)
	mux.HandleFunc("PUT /api/forms/{id}/folder", formHandler.MoveForm)
	mux.HandleFunc("POST /api/forms/{id}/archive", formHandler.ToggleArchive)
	mux.HandleFunc("POST /api/forms/{id}/meetings", meetingHandler.Schedule)
	mux.HandleFunc("GET /api/forms/{id}/meetings", meetingHandler.ListForForm)
	mux.HandleFunc("POST /api/forms/{id}/logo-upload", logoHandler.PresignUpload)

	// Folders
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.RenameFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/archive", folderHandler.ToggleArchive)
	mux.HandleFunc("POST /api/folders/{id}/drop", folderHandler.DropOnFolder)
	mux.HandleFunc("POST /api/folders/root/drop", folderHandler.DropOnRoot)

	// Meetings
	mux.HandleFunc("GET /api/meetings/upcoming", meetingHandler.ListUpcoming)
	mux.HandleFunc("DELETE /api/meetings/{id}", meetingHandler.Cancel)

	// Current user
	mux.HandleFunc("GET /api/users/me", profileHandler.GetProfile)
	mux.HandleFunc("PATCH /api/users/me", profileHandler.UpdateProfile)
	mux.HandleFunc("GET /api/users/me/settings", settingsHandler.GetSettings)
	mux.HandleFunc("PATCH /api/users/me/settings", settingsHandler.UpdateSettings)

	// Admin
	mux.Handle("GET /api/admin/forms", requireAdmin(http.HandlerFunc(adminHandler.ListForms)))
	mux.Handle("DELETE /api/admin/forms/{id}", requireAdmin(http.HandlerFunc(adminHandler.DeleteForm)))
	mux.Handle("GET /api/admin/api-keys", requireSuperAdmin(http.HandlerFunc(apiKeyHandler.ListKeys)))
	mux.Handle("POST /api/admin/api-keys", requireSuperAdmin(http.HandlerFunc(apiKeyHandler.CreateKey)))
	mux.Handle("DELETE /api/admin/api-keys/{id}", requireSuperAdmin(http.HandlerFunc(apiKeyHandler.RevokeKey)))

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Logging → Recovery → Auth → Routes
	h = middleware.AuthMiddleware(jwtVerifier, denylist, apiKeyService, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server failed", "error", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
