package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.APIOrigin)
	assert.Equal(t, 30, cfg.RequestTimeoutSecs)
	assert.Equal(t, 180, cfg.VideoTimeoutSecs)
	assert.Equal(t, ":8081", cfg.AdminListenAddr)
	assert.Nil(t, cfg.CorsOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHICKHEALTH_API_ORIGIN", "https://api.chickhealth.vn ")
	t.Setenv("CHICKHEALTH_REQUEST_TIMEOUT", "10")
	t.Setenv("ADMIN_SESSION_TTL_SECONDS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.vn, https://b.vn,,")

	cfg := Load()
	assert.Equal(t, "https://api.chickhealth.vn", cfg.APIOrigin)
	assert.Equal(t, 10, cfg.RequestTimeoutSecs)
	assert.Equal(t, 28800, cfg.AdminSessionTTLSecs)
	assert.Equal(t, []string{"https://a.vn", "https://b.vn"}, cfg.CorsOrigins)
}
