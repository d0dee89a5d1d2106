package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	FrontendURL string
	// Extra CORS origins on top of FrontendURL, comma separated
	AllowedOrigins []string
	// Whether CF-Connecting-IP / X-Real-IP / X-Forwarded-For are trusted
	TrustProxyHeaders bool
	// Email transport: "smtp" or "resend"
	EmailProvider string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Resend Configuration
	ResendAPIKey string
	// Contact mail routing
	ContactEmailTo   string
	ContactFromName  string
	EmailSendTimeout time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Contact form throttling
	ContactRateLimitMax    int
	ContactRateLimitWindow time.Duration
	// Coarse per-IP API throttle
	APIRateLimitRPS   float64
	APIRateLimitBurst int
	// Alternate channels shown with the contact form
	ContactInfoEmail    string
	ContactInfoPhone    string
	ContactInfoLocation string
	ContactInfoGitHub   string
	ContactInfoLinkedIn string
	ContactInfoTwitter  string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; a missing .env is fine in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS"),
		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),
		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "smtp")),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		// Contact routing
		ContactEmailTo:   getEnv("CONTACT_EMAIL_TO", ""),
		ContactFromName:  getEnv("CONTACT_FROM_NAME", "Portfolio Contact Form"),
		EmailSendTimeout: getEnvSeconds("EMAIL_SEND_TIMEOUT_SECONDS", 10),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting (5 submissions per hour per client by default)
		ContactRateLimitMax:    getEnvInt("CONTACT_RATE_LIMIT_MAX", 5),
		ContactRateLimitWindow: getEnvSeconds("CONTACT_RATE_LIMIT_WINDOW_SECONDS", 3600),
		APIRateLimitRPS:        getEnvFloat("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst:      getEnvInt("API_RATE_LIMIT_BURST", 20),
		// Contact info
		ContactInfoEmail:    getEnv("CONTACT_INFO_EMAIL", ""),
		ContactInfoPhone:    getEnv("CONTACT_INFO_PHONE", ""),
		ContactInfoLocation: getEnv("CONTACT_INFO_LOCATION", ""),
		ContactInfoGitHub:   getEnv("CONTACT_INFO_GITHUB", ""),
		ContactInfoLinkedIn: getEnv("CONTACT_INFO_LINKEDIN", ""),
		ContactInfoTwitter:  getEnv("CONTACT_INFO_TWITTER", ""),
	}

	if cfg.SMTPFromEmail == "" {
		cfg.SMTPFromEmail = cfg.SMTPUsername
	}
	if cfg.ContactInfoEmail == "" {
		cfg.ContactInfoEmail = cfg.ContactEmailTo
	}

	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO is missing. Contact submissions cannot be delivered.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory store.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvSeconds reads a whole number of seconds as a duration
func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty items
func getEnvList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimRight(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
