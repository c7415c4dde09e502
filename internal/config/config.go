package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Compliance ComplianceConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// ComplianceConfig contains the tunable thresholds of the compliance engine.
// Thresholds are configuration, never hard-coded at call sites.
type ComplianceConfig struct {
	// DosageWarningMargin is the fraction of the per-drug dosage ceiling at
	// which a treatment is flagged as a warning (0.10 = within 10%).
	DosageWarningMargin float64
	// WithdrawalWarningDays flags treatments whose withdrawal-safe date falls
	// within this many days of the evaluation date.
	WithdrawalWarningDays int
	// OveruseWindowDays is the trailing window scanned for overuse patterns.
	OveruseWindowDays int
	// OveruseMaxCount is the per-animal administration count above which the
	// same active ingredient is flagged.
	OveruseMaxCount int
	// OveruseMaxCumulativeDays caps the cumulative treatment duration of one
	// active ingredient within the window.
	OveruseMaxCumulativeDays int
	// ProductContext selects the withdrawal period: "meat" or "milk".
	ProductContext string
	// RunSchedule is the cron expression for the recurring compliance run.
	RunSchedule string
	// ScannerEnabled controls whether the API process starts the scheduler.
	ScannerEnabled bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "herdsafe"),
			User:            getEnv("DB_USER", "herdsafe"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			Path:            getEnv("DB_PATH", "herdsafe.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Compliance: ComplianceConfig{
			DosageWarningMargin:      getEnvAsFloat("COMPLIANCE_DOSAGE_WARNING_MARGIN", 0.10),
			WithdrawalWarningDays:    getEnvAsInt("COMPLIANCE_WITHDRAWAL_WARNING_DAYS", 2),
			OveruseWindowDays:        getEnvAsInt("COMPLIANCE_OVERUSE_WINDOW_DAYS", 90),
			OveruseMaxCount:          getEnvAsInt("COMPLIANCE_OVERUSE_MAX_COUNT", 3),
			OveruseMaxCumulativeDays: getEnvAsInt("COMPLIANCE_OVERUSE_MAX_CUMULATIVE_DAYS", 21),
			ProductContext:           getEnv("COMPLIANCE_PRODUCT_CONTEXT", "meat"),
			RunSchedule:              getEnv("COMPLIANCE_RUN_SCHEDULE", "0 6 * * *"),
			ScannerEnabled:           getEnvAsBool("COMPLIANCE_SCANNER_ENABLED", true),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
