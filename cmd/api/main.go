package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-contact-api/config"
	_ "portfolio-contact-api/docs" // Important for Swagger
	"portfolio-contact-api/internal/delivery/http/middleware"
	v1 "portfolio-contact-api/internal/delivery/http/v1"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/internal/usecase"
	"portfolio-contact-api/pkg/circuitbreaker"
	"portfolio-contact-api/pkg/email"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/metrics"
	"portfolio-contact-api/pkg/ratelimit"
	"portfolio-contact-api/pkg/redis"
	"portfolio-contact-api/pkg/security"
	"portfolio-contact-api/pkg/spam"
	"portfolio-contact-api/pkg/validation"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Contact form backend for a personal portfolio site.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio contact API", "port", cfg.Port)

	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	securityLog := security.InitSecurityLogger("portfolio-contact-api", env)
	defer func() { _ = securityLog.Sync() }()

	metrics.Register()

	// Background jobs stop with this context
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// 3. Setup Rate Limiter (redis when available, memory otherwise)
	limitCfg := ratelimit.Config{Limit: cfg.ContactRateLimitMax, Window: cfg.ContactRateLimitWindow}
	memLimiter := ratelimit.NewMemoryLimiter(limitCfg)
	memLimiter.StartJanitor(bgCtx, 5*time.Minute)

	var limiter domain.RateLimiter = memLimiter
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			limiter = ratelimit.NewRedisLimiter(redis.Client(), limitCfg, memLimiter, logger.Log)
			logger.Log.Info("Rate limiting backed by redis")
		}
	}
	defer func() { _ = redis.Close() }()

	// 4. Setup Email Service
	dispatcher := email.NewDispatcher(
		newSender(cfg),
		email.Config{To: cfg.ContactEmailTo, Timeout: cfg.EmailSendTimeout},
		circuitbreaker.NewWrapper(circuitbreaker.DefaultConfig("email")),
	)
	if !dispatcher.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable", "provider", cfg.EmailProvider)
	}

	// 5. Setup UseCase
	contactUC := usecase.NewContactUsecase(usecase.ContactDeps{
		RateLimiter: limiter,
		Spam:        spam.NewHeuristicClassifier(),
		Validator:   validation.NewContactValidator(),
		Dispatcher:  dispatcher,
		SecurityLog: securityLog,
		Logger:      logger.Log,
		Info:        contactInfo(cfg),
	})

	// 6. Setup Router
	gin.SetMode(cfg.GinMode)
	apiLimiter := middleware.NewAPIRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.APIRateLimitRPS,
		Burst: cfg.APIRateLimitBurst,
	})
	apiLimiter.StartCleanup(bgCtx)

	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:  contactUC,
		HealthUC:   usecase.NewHealthUsecase(healthDeps(cfg, dispatcher)),
		Config:     cfg,
		APILimiter: apiLimiter,
		Logger:     logger.Log,
	})
	if !cfg.TrustProxyHeaders {
		// gin's ClientIP (used by the API throttle) should not read forwarded headers either
		if err := router.SetTrustedProxies(nil); err != nil {
			logger.Log.Warn("Failed to reset trusted proxies", "error", err)
		}
	}

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
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

// healthDeps probes redis whenever it is configured, so a redis that failed
// to connect at boot reports degraded rather than disabled.
func healthDeps(cfg *config.Config, dispatcher *email.Dispatcher) usecase.HealthDeps {
	deps := usecase.HealthDeps{Email: dispatcher}
	if cfg.UpstashRedisURL != "" {
		deps.RedisPing = redis.HealthCheck
	}
	return deps
}

func newSender(cfg *config.Config) email.Sender {
	if cfg.EmailProvider == "resend" {
		return email.NewResendSender(email.ResendConfig{
			APIKey:      cfg.ResendAPIKey,
			SenderEmail: cfg.SMTPFromEmail,
			SenderName:  cfg.ContactFromName,
		})
	}
	return email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		FromName:  cfg.ContactFromName,
	})
}

func contactInfo(cfg *config.Config) domain.ContactInfo {
	info := domain.ContactInfo{
		Email:    cfg.ContactInfoEmail,
		Phone:    cfg.ContactInfoPhone,
		Location: cfg.ContactInfoLocation,
	}
	socials := []domain.SocialLink{
		{Label: "GitHub", URL: cfg.ContactInfoGitHub},
		{Label: "LinkedIn", URL: cfg.ContactInfoLinkedIn},
		{Label: "Twitter", URL: cfg.ContactInfoTwitter},
	}
	for _, s := range socials {
		if s.URL != "" {
			info.Socials = append(info.Socials, s)
		}
	}
	return info
}
