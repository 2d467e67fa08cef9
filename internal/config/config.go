package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr   string
	IsProduction bool

	// Identity provider settings
	ProjectID       string
	WebAPIKey       string // Identity Toolkit Web API key; empty degrades password sign-in
	IdentityBaseURL string // Identity Toolkit REST endpoint base
	IdentityTimeout time.Duration

	// ID token verification
	TokenIssuer string // expected "iss" claim, derived from ProjectID when empty
	JWKSURL     string // signing key set for provider-issued ID tokens

	// Custom token minting
	ServiceAccountEmail string // signer identity for RS256 custom tokens
	ServiceAccountKey   string // PEM-encoded RSA private key (empty enables dev HS256 mode)
	CustomTokenSecret   string // HS256 dev secret used when no service account key is set
	CustomTokenTTL      time.Duration

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	SignupRateLimit          int    // requests per minute
	LoginRateLimit           int    // requests per minute
	RateLimitCleanupInterval time.Duration

	// Redis (rate limiting store)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	// Metrics
	MetricsEnabled bool
	MetricsToken   string // optional bearer token protecting /metrics
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	projectID := getEnv("PROJECT_ID", "")

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		IsProduction: getEnv("GIN_MODE", "") == "release",

		ProjectID:       projectID,
		WebAPIKey:       getEnv("WEB_API_KEY", ""),
		IdentityBaseURL: getEnv("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com/v1"),
		IdentityTimeout: getEnvDuration("IDENTITY_TIMEOUT", 10*time.Second),

		TokenIssuer: getEnv("TOKEN_ISSUER", defaultIssuer(projectID)),
		JWKSURL: getEnv(
			"JWKS_URL",
			"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com",
		),

		ServiceAccountEmail: getEnv("SERVICE_ACCOUNT_EMAIL", ""),
		ServiceAccountKey:   getEnv("SERVICE_ACCOUNT_KEY", ""),
		CustomTokenSecret:   getEnv("CUSTOM_TOKEN_SECRET", "dev-custom-token-secret-change-in-production"),
		CustomTokenTTL:      getEnvDuration("CUSTOM_TOKEN_TTL", time.Hour),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "users.db"),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", false),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		SignupRateLimit:          getEnvInt("SIGNUP_RATE_LIMIT", 10),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 30),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),
	}
}

// defaultIssuer derives the expected ID token issuer from the project ID.
func defaultIssuer(projectID string) string {
	if projectID == "" {
		return ""
	}
	return "https://securetoken.google.com/" + projectID
}

// Validate checks configuration consistency. A missing Web API key is not an
// error: password sign-in degrades to a configuration failure at call time
// while signup and token verification keep working.
func (c *Config) Validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("PROJECT_ID is required")
	}

	if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
		return fmt.Errorf("unsupported DATABASE_DRIVER: %s", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}

	if c.ServiceAccountKey != "" && c.ServiceAccountEmail == "" {
		return fmt.Errorf("SERVICE_ACCOUNT_EMAIL is required when SERVICE_ACCOUNT_KEY is set")
	}

	if c.EnableRateLimit {
		switch c.RateLimitStore {
		case RateLimitStoreMemory, RateLimitStoreRedis:
		default:
			return fmt.Errorf("unsupported RATE_LIMIT_STORE: %s", c.RateLimitStore)
		}
		if c.SignupRateLimit <= 0 || c.LoginRateLimit <= 0 {
			return fmt.Errorf("rate limits must be positive when rate limiting is enabled")
		}
	}

	if c.IsProduction && c.ServiceAccountKey == "" &&
		strings.HasPrefix(c.CustomTokenSecret, "dev-") {
		return fmt.Errorf("CUSTOM_TOKEN_SECRET must be changed in production")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
