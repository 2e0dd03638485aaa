package v1

import (
	"net/http"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/config"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/middleware"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/response"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/auth"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	NotificationUC domain.NotificationUsecase
	SubmissionUC   domain.SubmissionUsecase
	ProfileUC      domain.ProfileUsecase
	JWKSProvider   *auth.Provider
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes. The email endpoint is rate limited per client; all
	// other requests pass through untouched.
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	emailLimiter := ratelimit.NewFixedWindowLimiter(
		deps.Config.RateLimitEmailThreshold,
		window,
		deps.Config.RateLimitMaxTrackedKeys,
		nil,
	)
	public := v1.Group("")
	public.Use(middleware.RateLimitMiddleware(
		middleware.EmailRateLimitConfig(deps.Config.RateLimitEmailThreshold, window),
		emailLimiter,
	))
	NewNotificationHandler(public, deps.NotificationUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		protected.GET("/admin/me", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{
				"id":    c.GetString(string(domain.KeyUserID)),
				"email": c.GetString(string(domain.KeyUserEmail)),
				"role":  c.GetString(string(domain.KeyUserRole)),
			})
		})

		NewSubmissionHandler(protected, deps.SubmissionUC)
		NewProfileHandler(protected, deps.ProfileUC)
	}

	return r
}
