package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	APIOrigin           string
	RequestTimeoutSecs  int
	VideoTimeoutSecs    int
	TokenPath           string
	AdminListenAddr     string
	AdminSessionTTLSecs int
	StatsPollSeconds    int
	HealthDiskPath      string
	CorsOrigins         []string
	LogLevel            string
	LogFormat           string
}

func Load() Config {
	return Config{
		APIOrigin:           envOr("CHICKHEALTH_API_ORIGIN", "http://localhost:8000"),
		RequestTimeoutSecs:  envOrInt("CHICKHEALTH_REQUEST_TIMEOUT", 30),
		VideoTimeoutSecs:    envOrInt("CHICKHEALTH_VIDEO_TIMEOUT", 180),
		TokenPath:           envOr("CHICKHEALTH_TOKEN_PATH", ""),
		AdminListenAddr:     envOr("ADMIN_LISTEN_ADDR", ":8081"),
		AdminSessionTTLSecs: envOrInt("ADMIN_SESSION_TTL_SECONDS", 28800),
		StatsPollSeconds:    envOrInt("ADMIN_STATS_POLL_INTERVAL", 15),
		HealthDiskPath:      envOr("ADMIN_HEALTH_DISK_PATH", "/"),
		CorsOrigins:         parseCSV(envOr("CORS_ORIGINS", "")),
		LogLevel:            envOr("LOG_LEVEL", "info"),
		LogFormat:           envOr("LOG_FORMAT", "console"),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
