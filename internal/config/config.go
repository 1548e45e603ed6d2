package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Yahoo     YahooConfig
	Market    MarketConfig
	Valuation ValuationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience

	// RateLimitPerSecond caps inbound API requests per client IP; 0 disables.
	RateLimitPerSecond float64
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// YahooConfig holds the market data client configuration
type YahooConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        uint64
}

// MarketConfig holds the market-rate proxies and the constants used when a
// proxy cannot be fetched.
type MarketConfig struct {
	RiskFreeSymbol       string
	EquityIndexSymbol    string
	RiskFreeFallback     float64
	EquityReturnFallback float64
	RatesTTL             time.Duration
	// RefreshSchedule is a cron spec; empty disables the scheduled refresh.
	RefreshSchedule string
}

// ValuationConfig holds model defaults
type ValuationConfig struct {
	DefaultLongTermGrowth float64
	DefaultTicker         string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	p := &parser{}
	config := &Config{
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "5001"),
			Host:               getEnv("SERVER_HOST", "localhost"),
			RateLimitPerSecond: p.float("API_RATE_LIMIT_PER_SECOND", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Yahoo: YahooConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			Timeout:           p.duration("YAHOO_TIMEOUT", 10*time.Second),
			RequestsPerSecond: p.float("YAHOO_REQUESTS_PER_SECOND", 5),
			MaxRetries:        p.uint("YAHOO_MAX_RETRIES", 0),
		},
		Market: MarketConfig{
			RiskFreeSymbol:       getEnv("RISK_FREE_SYMBOL", "^TNX"),
			EquityIndexSymbol:    getEnv("EQUITY_INDEX_SYMBOL", "^SP500TR"),
			RiskFreeFallback:     p.float("RISK_FREE_FALLBACK", 0.0422),
			EquityReturnFallback: p.float("EQUITY_RETURN_FALLBACK", 0.1119),
			RatesTTL:             p.duration("MARKET_RATES_TTL", time.Hour),
			RefreshSchedule:      getEnvAllowEmpty("MARKET_REFRESH_SCHEDULE", "@every 1h"),
		},
		Valuation: ValuationConfig{
			DefaultLongTermGrowth: p.float("DEFAULT_LONG_TERM_GROWTH", 0.035),
			DefaultTicker:         strings.ToUpper(getEnv("DEFAULT_TICKER", "WMT")),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty distinguishes an unset variable from one set to "".
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parser collects every malformed variable so Load can report them together.
type parser struct {
	err error
}

func (p *parser) float(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(fmt.Errorf("invalid %s %q: %w", key, value, err))
		return defaultValue
	}
	return f
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		p.fail(fmt.Errorf("invalid %s %q: %w", key, value, err))
		return defaultValue
	}
	return d
}

func (p *parser) uint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		p.fail(fmt.Errorf("invalid %s %q: %w", key, value, err))
		return defaultValue
	}
	return n
}

func (p *parser) fail(err error) {
	p.err = multierr.Append(p.err, err)
}
