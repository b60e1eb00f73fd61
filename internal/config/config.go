package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	Port                    string
	Environment             string
	LogLevel                string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	DatabaseURL             string
	DBMaxConns              int32
	DBMinConns              int32
	SessionSecret           string
	SessionTTL              time.Duration
	SessionCleanupInterval  time.Duration
	JWTSecret               string
	TokenTTL                time.Duration
	TokenCookieTTL          time.Duration
	StripeSecretKey         string
	CORSOrigins             []string
	RateLimitRPM            int
	AuthRateLimitRPM        int
	TrustProxyHeaders       bool
	StaticDir               string
}

// Load reads the environment (and .env if present) and validates the result.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read fills a Config from the environment without validating it.
func Read() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "5000"),
		Environment:             strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		SessionSecret:           strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionTTL:              getDuration("SESSION_TTL", 24*time.Hour),
		SessionCleanupInterval:  getDuration("SESSION_CLEANUP_INTERVAL", time.Hour),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:                getDuration("TOKEN_TTL", 0),
		TokenCookieTTL:          getDuration("TOKEN_COOKIE_TTL", time.Hour),
		StripeSecretKey:         strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		CORSOrigins:             splitCSV(os.Getenv("CORS_ORIGINS")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 20),
		TrustProxyHeaders:       getBool("TRUST_PROXY_HEADERS", false),
		StaticDir:               getEnv("STATIC_DIR", "./build"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}

	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS cannot contain \"*\" because requests carry cookies; list explicit origins")
		}
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL cannot be negative")
	}

	if c.TokenCookieTTL <= 0 {
		return fmt.Errorf("TOKEN_COOKIE_TTL must be positive")
	}

	return nil
}

// ValidateDatabase checks only what the operator CLI needs.
func (c *Config) ValidateDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}

	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
