package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort             = "5000"
	defaultDatabaseURL      = "workspace.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultJWTAccessTTL     = "1h"
	defaultCurrency         = "ETB"
	defaultBookingTxTimeout = "10s"
	defaultDBMaxOpenConns   = "20"
	defaultDBMaxIdleConns   = "5"
	defaultDBConnLifetime   = "30m"
	defaultSMTPPort         = "587"
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
	defaultShutdownTimeout  = "15s"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether enough is configured to actually send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	JWTSecret          string
	JWTAccessTTL       time.Duration
	Currency           string
	BookingTxTimeout   time.Duration
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string
	LogLevel           string
	LogFormat          string
	SMTP               SMTPConfig
}

// LoadDotEnv reads .env files when present; a missing file is not an error.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logrus.WithError(err).Warnf("[CONFIG] failed to load %s", f)
		}
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(getEnv("BOOKING_CURRENCY", defaultCurrency)))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat)))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.BookingTxTimeout, err = parseDurationEnv("BOOKING_TX_TIMEOUT", defaultBookingTxTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.DBConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", defaultDBConnLifetime); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = parseIntEnv("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = parseIntEnv("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns); err != nil {
		return nil, err
	}

	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Password: os.Getenv("SMTP_PASS"),
		From:     strings.TrimSpace(getEnv("SMTP_FROM", os.Getenv("SMTP_USER"))),
	}
	if cfg.SMTP.Port, err = parseIntEnv("SMTP_PORT", defaultSMTPPort); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.BookingTxTimeout <= 0 {
		return fmt.Errorf("BOOKING_TX_TIMEOUT must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	if len(cfg.Currency) != 3 {
		return fmt.Errorf("BOOKING_CURRENCY must be a 3-letter code, got %q", cfg.Currency)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be one of: text, json")
	}
	if cfg.SMTP.Port <= 0 {
		return fmt.Errorf("SMTP_PORT must be > 0")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func IsProdLike(env string) bool {
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
