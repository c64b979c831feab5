package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Ledger   LedgerConfig
	Chaos    ChaosConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// StoreConfig selects and prepares the persistence backend
type StoreConfig struct {
	Driver         string
	RunMigrations  bool
	IdempotencyTTL time.Duration
}

// LedgerConfig holds the validation thresholds
type LedgerConfig struct {
	DepositLimit       decimal.Decimal
	WithdrawFloor      decimal.Decimal
	WithdrawPercentCap decimal.Decimal
}

// ChaosConfig controls failure injection into the store
type ChaosConfig struct {
	FailureRate  float64
	MinLatencyMS int
	MaxLatencyMS int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "ledger"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Store: StoreConfig{
			Driver:         getEnv("STORE_DRIVER", StoreDriverPostgres),
			RunMigrations:  getEnvAsBool("RUN_MIGRATIONS", true),
			IdempotencyTTL: getEnvAsDuration("IDEMPOTENCY_TTL", "24h"),
		},
		Ledger: LedgerConfig{
			DepositLimit:       getEnvAsDecimal("DEPOSIT_LIMIT", "10000.00"),
			WithdrawFloor:      getEnvAsDecimal("WITHDRAW_FLOOR", "100.00"),
			WithdrawPercentCap: getEnvAsDecimal("WITHDRAW_PERCENT_CAP", "0.90"),
		},
		Chaos: ChaosConfig{
			FailureRate:  getEnvAsFloat("CHAOS_FAILURE_RATE", 0),
			MinLatencyMS: getEnvAsInt("CHAOS_MIN_LATENCY_MS", 0),
			MaxLatencyMS: getEnvAsInt("CHAOS_MAX_LATENCY_MS", 0),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("invalid store driver: %s (must be %s or %s)", c.Store.Driver, StoreDriverPostgres, StoreDriverMemory)
	}

	if c.Store.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency ttl must be positive")
	}

	if !c.Ledger.DepositLimit.IsPositive() {
		return fmt.Errorf("deposit limit must be positive, got %s", c.Ledger.DepositLimit)
	}
	if c.Ledger.WithdrawFloor.IsNegative() {
		return fmt.Errorf("withdraw floor cannot be negative, got %s", c.Ledger.WithdrawFloor)
	}
	if !c.Ledger.WithdrawPercentCap.IsPositive() || c.Ledger.WithdrawPercentCap.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("withdraw percent cap must be in (0, 1], got %s", c.Ledger.WithdrawPercentCap)
	}

	if c.Chaos.FailureRate < 0 || c.Chaos.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.Chaos.FailureRate)
	}
	if c.Chaos.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.Chaos.MaxLatencyMS < c.Chaos.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.Chaos.MaxLatencyMS, c.Chaos.MinLatencyMS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDecimal falls back to defaultValue when the variable is unset or
// not a decimal. defaultValue must itself be a valid decimal.
func getEnvAsDecimal(key, defaultValue string) decimal.Decimal {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.RequireFromString(defaultValue)
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
