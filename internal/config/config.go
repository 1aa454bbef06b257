package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nekogravitycat/focus-planner-backend/internal/timeline"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	RateLimitPerMinute int
	RateLimitBurst     int

	// Timeline is the default day-view layout; requests may override it.
	Timeline timeline.Config
	// SlotScanMaxDays bounds the next-available-slot search.
	SlotScanMaxDays int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	var err error
	if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	if cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12); err != nil {
		return nil, err
	}

	if cfg.RateLimitPerMinute, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 300); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 50); err != nil {
		return nil, err
	}

	// Timeline layout defaults, validated up front rather than on first request.
	def := timeline.DefaultConfig()
	cfg.Timeline = def
	if cfg.Timeline.StartHour, err = getEnvAsInt("TIMELINE_START_HOUR", def.StartHour); err != nil {
		return nil, err
	}
	if cfg.Timeline.EndHour, err = getEnvAsInt("TIMELINE_END_HOUR", def.EndHour); err != nil {
		return nil, err
	}
	if cfg.Timeline.GranularityMinutes, err = getEnvAsInt("TIMELINE_GRANULARITY_MINUTES", def.GranularityMinutes); err != nil {
		return nil, err
	}
	rowHeight, err := getEnvAsInt("TIMELINE_ROW_HEIGHT_PX", int(def.RowHeightPx))
	if err != nil {
		return nil, err
	}
	cfg.Timeline.RowHeightPx = float64(rowHeight)
	if err := cfg.Timeline.Validate(); err != nil {
		return nil, fmt.Errorf("invalid TIMELINE_* settings: %w", err)
	}

	if cfg.SlotScanMaxDays, err = getEnvAsInt("SLOT_SCAN_MAX_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.SlotScanMaxDays < 1 {
		return nil, fmt.Errorf("SLOT_SCAN_MAX_DAYS must be at least 1")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
