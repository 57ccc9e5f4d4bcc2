package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrInvalidPort   = errors.New("PORT must be in 1..65535")
	ErrInvalidWindow = errors.New("rate limit window must be positive")
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Trends    TrendsConfig
	Search    SearchConfig
	Suggest   SuggestConfig
	YouTube   YouTubeConfig
	Cache     CacheConfig
	Explore   ExploreConfig
}

type ServerConfig struct {
	Port int
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	MaxCalls int
	Window   time.Duration
}

type TrendsConfig struct {
	BaseURL string
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

type SearchConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SuggestConfig struct {
	BaseURL string
	Timeout time.Duration
}

type YouTubeConfig struct {
	BaseURL string
	Timeout time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type ExploreConfig struct {
	Delay time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvIntOrDefault("PORT", 8080),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			MaxCalls: getEnvIntOrDefault("RATE_LIMIT_MAX_CALLS", 100),
			Window:   time.Duration(getEnvIntOrDefault("RATE_LIMIT_WINDOW_SEC", 60)) * time.Second,
		},
		Trends: TrendsConfig{
			BaseURL: getEnvOrDefault("TRENDS_BASE_URL", "https://trends.google.com"),
			Timeout: time.Duration(getEnvIntOrDefault("TRENDS_TIMEOUT_SEC", 25)) * time.Second,
			Retries: getEnvIntOrDefault("TRENDS_RETRIES", 2),
			Backoff: time.Duration(getEnvIntOrDefault("TRENDS_BACKOFF_MS", 500)) * time.Millisecond,
		},
		Search: SearchConfig{
			BaseURL: getEnvOrDefault("SEARCH_BASE_URL", "https://www.google.com"),
			Timeout: time.Duration(getEnvIntOrDefault("SEARCH_TIMEOUT_SEC", 5)) * time.Second,
		},
		Suggest: SuggestConfig{
			BaseURL: getEnvOrDefault("SUGGEST_BASE_URL", "https://suggestqueries.google.com"),
			Timeout: time.Duration(getEnvIntOrDefault("SUGGEST_TIMEOUT_SEC", 5)) * time.Second,
		},
		YouTube: YouTubeConfig{
			BaseURL: getEnvOrDefault("YOUTUBE_BASE_URL", "https://www.youtube.com"),
			Timeout: time.Duration(getEnvIntOrDefault("YOUTUBE_TIMEOUT_SEC", 15)) * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 600)) * time.Second,
		},
		Explore: ExploreConfig{
			Delay: time.Duration(getEnvIntOrDefault("EXPLORE_DELAY_MS", 200)) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.RateLimit.Window <= 0 {
		return ErrInvalidWindow
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
