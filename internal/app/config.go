package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	CacheTTL           time.Duration
	CacheFlushInterval time.Duration
	ResolveTimeout     time.Duration
	LyricsTimeout      time.Duration

	PlayerBaseURL  string
	CatalogBaseURL string
	LyricsBaseURL  string
	UserAgent      string

	CORSAllowedOrigins []string
}

func LoadConfig() Config {
	return Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":5000"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		CacheTTL:           getEnvDuration("CACHE_TTL", time.Hour),
		CacheFlushInterval: getEnvDuration("CACHE_FLUSH_INTERVAL", time.Hour),
		ResolveTimeout:     getEnvDuration("RESOLVE_TIMEOUT", 15*time.Second),
		LyricsTimeout:      getEnvDuration("LYRICS_TIMEOUT", 10*time.Second),

		PlayerBaseURL:  getEnv("PLAYER_BASE_URL", ""),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", ""),
		LyricsBaseURL:  getEnv("LYRICS_BASE_URL", ""),
		UserAgent:      getEnv("USER_AGENT", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	// Accept bare integers as seconds alongside Go duration syntax.
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if seconds <= 0 {
			return fallback
		}
		return time.Duration(seconds) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
