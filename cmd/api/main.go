package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/config"
	_ "github.com/Alfiasnyah78/labubu-projectv2/docs" // Important for Swagger
	v1 "github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/v1"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/repository/postgres"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/usecase"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/auth"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/database"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/email"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/logger"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/redis"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           AlmondSense Admin API
// @version         1.0
// @description     Back-office API for the AlmondSense lead-intake website.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting admin backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (shared rate-limit counters). The limiter falls back
	// to an in-process window when Redis is unavailable, so startup
	// continues either way.
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	submissionRepo := postgres.NewSubmissionRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Setup Email Sender
	if cfg.ResendAPIKey == "" {
		logger.Log.Warn("RESEND_API_KEY not configured - email dispatch will fail")
	}
	sender := email.NewResendClient(cfg.ResendAPIKey)

	// 7. Setup UseCases
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	authUC := usecase.NewAuthUsecase(userRepo)
	notificationUC := usecase.NewNotificationUsecase(sender, cfg.EmailFrom, cfg.AdminEmail, logger.Log)
	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, notificationUC, logger.Log)
	profileUC := usecase.NewProfileUsecase(profileRepo)

	// 8. Setup Auth Provider (JWKS)
	// Assuming Supabase URL is like https://xyz.supabase.co
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		NotificationUC: notificationUC,
		SubmissionUC:   submissionUC,
		ProfileUC:      profileUC,
		JWKSProvider:   jwksProvider,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
