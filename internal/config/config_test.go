package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("REGISTRATION_STRICT_VALIDATION", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Client.APIBaseURL)
	assert.Equal(t, "/risk-check", cfg.Client.PostRegistrationPath)
	assert.True(t, cfg.Client.StrictValidation)
	assert.Equal(t, "/api", cfg.Proxy.Prefix)
	assert.True(t, cfg.Proxy.ChangeOrigin)
	assert.False(t, cfg.Proxy.Secure)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, time.Hour, cfg.Session.DefaultTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_URL", "https://auth.example.com/")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REGISTRATION_STRICT_VALIDATION", "false")
	t.Setenv("SESSION_DEFAULT_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://auth.example.com", cfg.Client.APIBaseURL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.False(t, cfg.Client.StrictValidation)
	assert.Equal(t, 15*time.Minute, cfg.Session.DefaultTTL())
}

func TestLoad_RejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "cookie")

	_, err := Load()
	require.Error(t, err)
}

func TestStaticConfig_MountPath(t *testing.T) {
	cases := map[string]string{
		"./":      "/",
		"":        "/",
		"/":       "/",
		"/app/":   "/app",
		"./app":   "/app",
		"assets/": "/assets",
	}
	for base, want := range cases {
		assert.Equal(t, want, StaticConfig{Base: base}.MountPath(), base)
	}
}
