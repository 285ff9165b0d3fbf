package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Ledger storage
	LedgerFile string

	// Generator
	GeneratorTransactions int
	GeneratorStart        time.Time
	GeneratorEnd          time.Time

	// Rate limiting
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),
		LedgerFile:  getEnv("LEDGER_FILE", "transactions.csv"),
	}

	var err error
	if cfg.GeneratorTransactions, err = getEnvInt("GENERATOR_TRANSACTIONS", 600); err != nil {
		return nil, err
	}
	if cfg.GeneratorStart, err = getEnvDate("GENERATOR_START", defaultGeneratorStart()); err != nil {
		return nil, err
	}
	if cfg.GeneratorEnd, err = getEnvDate("GENERATOR_END", defaultGeneratorEnd()); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getEnvFloat("RATE_LIMIT_PER_SECOND", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.LedgerFile == "" {
		return fmt.Errorf("LEDGER_FILE is required")
	}
	if c.GeneratorTransactions < 0 {
		return fmt.Errorf("GENERATOR_TRANSACTIONS must not be negative")
	}
	if c.GeneratorStart.After(c.GeneratorEnd) {
		return fmt.Errorf("GENERATOR_START must not be after GENERATOR_END")
	}
	return nil
}

// defaultGeneratorStart covers roughly eighteen months of history ending today.
func defaultGeneratorStart() time.Time {
	return defaultGeneratorEnd().AddDate(0, -18, 0)
}

func defaultGeneratorEnd() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return f, nil
}

func getEnvDate(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date (YYYY-MM-DD): %w", key, err)
	}
	return d, nil
}
