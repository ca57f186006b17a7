// Package config loads application configuration from environment variables
// with sane defaults. The returned Config is plain immutable data; nothing
// here is mutated after Load.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Summary   SummaryConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Store     StoreConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ScraperConfig controls scraping behavior.
type ScraperConfig struct {
	// DefaultTimeout is the per-fetch timeout applied when a request does
	// not specify one.
	DefaultTimeout time.Duration // default: 10s

	// DefaultRetries is the attempt count applied when a request does not
	// specify one.
	DefaultRetries int // default: 3

	// UserAgent overrides the built-in desktop-browser user agent.
	UserAgent string
}

// SummaryConfig controls the summarization step.
type SummaryConfig struct {
	// Sentences is how many sentences the summary keeps.
	Sentences int // default: 3
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the scrape response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// StoreConfig selects and configures the persistence sinks.
// An empty SQLitePath disables the SQLite sink; an empty WebhookURL
// disables the webhook sink. With neither set, results are held in memory.
type StoreConfig struct {
	SQLitePath    string
	WebhookURL    string
	WebhookSecret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SKIM_HOST", "0.0.0.0"),
			Port: envIntOr("SKIM_PORT", 8080),
			Mode: envOr("SKIM_MODE", "release"),
		},
		Scraper: ScraperConfig{
			DefaultTimeout: envDurationOr("SKIM_FETCH_TIMEOUT", 10*time.Second),
			DefaultRetries: envIntOr("SKIM_RETRIES", 3),
			UserAgent:      os.Getenv("SKIM_USER_AGENT"),
		},
		Summary: SummaryConfig{
			Sentences: envIntOr("SKIM_SUMMARY_SENTENCES", 3),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SKIM_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SKIM_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SKIM_RATE_RPS", 5.0),
			Burst:             envIntOr("SKIM_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SKIM_CACHE_MAX_ENTRIES", 1000),
		},
		Store: StoreConfig{
			SQLitePath:    os.Getenv("SKIM_SQLITE_PATH"),
			WebhookURL:    os.Getenv("SKIM_WEBHOOK_URL"),
			WebhookSecret: os.Getenv("SKIM_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("SKIM_LOG_LEVEL", "info"),
			Format: envOr("SKIM_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
