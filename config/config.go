package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	// Resend transactional email transport
	ResendAPIKey string
	EmailFrom    string // Verified sender, e.g. "AlmondSense <onboarding@resend.dev>"
	AdminEmail   string // Default recipient for new-submission alerts
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitEmailThreshold int
	RateLimitMaxTrackedKeys int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// A trailing slash breaks the derived JWKS URL (.co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		ResendAPIKey:      getEnv("RESEND_API_KEY", ""),
		EmailFrom:         getEnv("EMAIL_FROM", "AlmondSense <onboarding@resend.dev>"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600), // 1 hour window
		RateLimitEmailThreshold: getEnvInt("RATE_LIMIT_EMAIL_THRESHOLD", 10),  // 10 emails per window per client
		RateLimitMaxTrackedKeys: getEnvInt("RATE_LIMIT_MAX_KEYS", 10000),      // cap on tracked client buckets
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Dashboard endpoints may fail to connect.")
	}

	// Deliberately not fatal: a missing key only surfaces as an
	// authentication failure at the transport layer.
	if cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY not configured. Email delivery will fail at the transport.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
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
