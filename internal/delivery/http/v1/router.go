package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"portfolio-contact-api/config"
	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/internal/usecase"
	"portfolio-contact-api/pkg/apperror"
)

type RouterDeps struct {
	ContactUC  domain.ContactUsecase
	HealthUC   usecase.HealthUsecase
	Config     *config.Config
	APILimiter *middleware.APIRateLimiter // optional per-IP throttle
	Logger     *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: append([]string{cfg.FrontendURL}, cfg.AllowedOrigins...),
		AllowLocalhost: !cfg.IsProduction(),
	}))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(gin.Logger())
	if deps.APILimiter != nil {
		r.Use(deps.APILimiter.Middleware())
	}
	r.Use(middleware.ErrorHandler(deps.Logger))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	healthUC := deps.HealthUC
	if healthUC == nil {
		healthUC = usecase.NewHealthUsecase(usecase.HealthDeps{})
	}
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", healthUC.Check(c.Request.Context()))
	})

	// Public routes
	NewContactHandler(v1, deps.ContactUC, cfg.TrustProxyHeaders)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Resource not found"))
	})

	return r
}
