// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Persistence
	DBPath string

	// Quote sources
	AlphaVantageURL string
	AlphaVantageKey string
	YahooQuoteURL   string
	QuoteTimeout    time.Duration

	// Exchange rates
	ExchangeRateURL string
	RateFallback    float64
	RateTTL         time.Duration

	// Price cache / refresh
	PriceTTL             time.Duration
	PriceRefreshInterval time.Duration
}

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:   getEnv("PORT", "8080"),
		Env:    getEnv("ENV", "development"),
		DBPath: getEnv("DB_PATH", "projectdollar.db"),

		AlphaVantageURL: getEnv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
		AlphaVantageKey: getEnv("ALPHA_VANTAGE_KEY", "demo"),
		YahooQuoteURL:   getEnv("YAHOO_QUOTE_URL", "https://query1.finance.yahoo.com/v7/finance/quote"),

		ExchangeRateURL: getEnv("EXCHANGE_RATE_URL", "https://api.exchangerate-api.com/v4/latest/EUR"),
	}

	cfg.QuoteTimeout = getDuration("QUOTE_TIMEOUT", 5*time.Second)
	cfg.RateTTL = getDuration("RATE_TTL", time.Hour)
	cfg.PriceTTL = getDuration("PRICE_TTL", 5*time.Minute)
	cfg.PriceRefreshInterval = getDuration("PRICE_REFRESH_INTERVAL", 2*time.Minute)
	cfg.RateFallback = getFloat("RATE_FALLBACK", 1.08)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getFloat parses a float environment variable, falling back to the default
// on absence or parse failure.
func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Printf("Warning: invalid %s value %q, falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return f
}
