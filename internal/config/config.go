package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppEnv          = "dev"
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "studyhall.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "24h"
	defaultHallLockTTL     = "30s"
	defaultRedisPrefix     = "studyhall:lock:"
	defaultOperatingHours  = "12"
	defaultReportTimezone  = "UTC"
	defaultSeatMaxX        = "800"
	defaultSeatMaxY        = "600"
	defaultSeatMinPrice    = "50"
	defaultSeatMaxPrice    = "1000"
	defaultMetricsEnabled  = "true"
	defaultShutdownTimeout = "10s"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPAddr string

	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// Empty RedisAddr keeps hall locks in-process.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	HallLockTTL   time.Duration

	OperatingHoursPerDay float64
	ReportLocation       *time.Location

	SeatMaxX     int
	SeatMaxY     int
	SeatMinPrice float64
	SeatMaxPrice float64

	// Extra origins allowed by CORS on top of the local dev ones.
	CORSAllowedOrigins []string

	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.LogLevel = strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisPrefix = getEnv("REDIS_LOCK_PREFIX", defaultRedisPrefix)
	cfg.MetricsEnabled = parseBoolEnv("METRICS_ENABLED", defaultMetricsEnabled)
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.HallLockTTL, err = parseDurationEnv("HALL_LOCK_TTL", defaultHallLockTTL); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.OperatingHoursPerDay, err = parseFloatEnv("REPORT_OPERATING_HOURS", defaultOperatingHours); err != nil {
		return nil, err
	}
	if cfg.SeatMaxX, err = parseIntEnv("SEAT_MAX_X", defaultSeatMaxX); err != nil {
		return nil, err
	}
	if cfg.SeatMaxY, err = parseIntEnv("SEAT_MAX_Y", defaultSeatMaxY); err != nil {
		return nil, err
	}
	if cfg.SeatMinPrice, err = parseFloatEnv("SEAT_MIN_PRICE", defaultSeatMinPrice); err != nil {
		return nil, err
	}
	if cfg.SeatMaxPrice, err = parseFloatEnv("SEAT_MAX_PRICE", defaultSeatMaxPrice); err != nil {
		return nil, err
	}

	tz := strings.TrimSpace(getEnv("REPORT_TIMEZONE", defaultReportTimezone))
	if cfg.ReportLocation, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE value %q: %w", tz, err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.HallLockTTL <= 0 {
		return fmt.Errorf("HALL_LOCK_TTL must be > 0")
	}
	if cfg.OperatingHoursPerDay <= 0 || cfg.OperatingHoursPerDay > 24 {
		return fmt.Errorf("REPORT_OPERATING_HOURS must be in (0, 24]")
	}
	if cfg.SeatMaxX <= 0 || cfg.SeatMaxY <= 0 {
		return fmt.Errorf("SEAT_MAX_X and SEAT_MAX_Y must be > 0")
	}
	if cfg.SeatMinPrice < 0 || cfg.SeatMaxPrice < cfg.SeatMinPrice {
		return fmt.Errorf("SEAT_MIN_PRICE must be >= 0 and <= SEAT_MAX_PRICE")
	}

	if isProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
