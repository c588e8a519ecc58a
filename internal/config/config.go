package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the market terminal core.
type Config struct {
	// Upstream base URLs (configurable for testing against mock servers)
	SeedBaseURL   string `mapstructure:"seed_base_url"`
	Query1BaseURL string `mapstructure:"query1_base_url"`
	Query2BaseURL string `mapstructure:"query2_base_url"`
	UserAgent     string `mapstructure:"user_agent"`

	// Cache TTLs per namespace
	QuoteTTL      time.Duration `mapstructure:"quote_ttl"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	CommentaryTTL time.Duration `mapstructure:"commentary_ttl"`

	// Pacing and retry tuning. Authentication failures get a longer
	// backoff than per-batch failures; the exact values are not
	// load-bearing and may be tuned.
	BatchDelay         time.Duration `mapstructure:"batch_delay"`
	WindowSize         int           `mapstructure:"window_size"`
	WindowDelay        time.Duration `mapstructure:"window_delay"`
	RetryDelay         time.Duration `mapstructure:"retry_delay"`
	RateLimitDelay     time.Duration `mapstructure:"rate_limit_delay"`
	HandshakeRateDelay time.Duration `mapstructure:"handshake_rate_delay"`

	// LLM commentary settings
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIModel   string `mapstructure:"openai_model"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// Local state
	WatchlistPath string `mapstructure:"watchlist_path"`
	LogLevel      string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over config file
// values.
//
// No field is strictly required: the Yahoo endpoints are public beyond the
// cookie/crumb handshake the client performs itself, and the OpenAI key is
// only checked when commentary generation is actually requested.
//
// Expected environment variables (all optional):
//   - SEED_BASE_URL, QUERY1_BASE_URL, QUERY2_BASE_URL
//   - MARKETTERM_USER_AGENT
//   - OPENAI_API_KEY, OPENAI_MODEL, OPENAI_BASE_URL
//   - MARKETTERM_WATCHLIST_PATH
//   - MARKETTERM_LOG_LEVEL
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.AutomaticEnv()

	// Set defaults for base URLs and the browser-like user agent the
	// upstream expects
	v.SetDefault("seed_base_url", "https://fc.yahoo.com")
	v.SetDefault("query1_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("query2_base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	// Cache defaults
	v.SetDefault("quote_ttl", 5*time.Minute)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("commentary_ttl", 60*time.Minute)

	// Pacing defaults
	v.SetDefault("batch_delay", 500*time.Millisecond)
	v.SetDefault("window_size", 5)
	v.SetDefault("window_delay", 300*time.Millisecond)
	v.SetDefault("retry_delay", 2*time.Second)
	v.SetDefault("rate_limit_delay", 5*time.Second)
	v.SetDefault("handshake_rate_delay", 30*time.Second)

	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.marketterm")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("seed_base_url", "SEED_BASE_URL")
	v.BindEnv("query1_base_url", "QUERY1_BASE_URL")
	v.BindEnv("query2_base_url", "QUERY2_BASE_URL")
	v.BindEnv("user_agent", "MARKETTERM_USER_AGENT")
	v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	v.BindEnv("openai_model", "OPENAI_MODEL")
	v.BindEnv("openai_base_url", "OPENAI_BASE_URL")
	v.BindEnv("watchlist_path", "MARKETTERM_WATCHLIST_PATH")
	v.BindEnv("log_level", "MARKETTERM_LOG_LEVEL")

	// Unmarshal config into struct
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.WatchlistPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			config.WatchlistPath = "watchlists.json"
		} else {
			config.WatchlistPath = filepath.Join(home, ".marketterm", "watchlists.json")
		}
	}

	if config.WindowSize < 1 {
		return nil, fmt.Errorf("window_size must be at least 1, got %d", config.WindowSize)
	}

	return config, nil
}
