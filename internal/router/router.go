package router

import (
	"log"

	"github.com/gin-gonic/gin"

	"clausevet/internal/config"
	"clausevet/internal/handler"
	"clausevet/internal/middleware"
	"clausevet/internal/service"
)

// Setup configures the Gin engine with all routes and middleware. With no
// user accounts configured, authentication is disabled and the analysis
// routes are public.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	analysisH *handler.AnalysisHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)

	// Analysis routes - protected when auth is configured
	protected := v1.Group("")
	if cfg.Auth.Enabled() {
		protected.Use(middleware.AuthMiddleware(authSvc))
	} else {
		log.Printf("router.Setup: no user accounts configured, authentication disabled")
	}

	analyses := protected.Group("/analyses")
	analyses.POST("", analysisH.Create)
	analyses.GET("", analysisH.List)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.DELETE("/:id", analysisH.Delete)
	analyses.GET("/:id/report", reportH.GetReport)
	analyses.GET("/:id/export", reportH.Export)

	return r
}
