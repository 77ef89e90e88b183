package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_HOST", "SERVER_PORT", "PORT", "DATABASE_URL", "DATABASE_NAME", "CORS_ALLOWED_ORIGINS", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Empty(t, cfg.Database.URL)
	require.True(t, cfg.CORS.AllowAllOrigins)
	require.Equal(t, "development", cfg.Environment)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "fesdmit")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.example.com, https://admin.example.com")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	require.Equal(t, "fesdmit", cfg.Database.Name)
	require.False(t, cfg.CORS.AllowAllOrigins)
	require.Equal(t, []string{"https://portal.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "production", cfg.Environment)
}

func TestPortFallbackToPlatformVariable(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "7000")

	cfg := Load()
	require.Equal(t, 7000, cfg.Server.Port)
}

func TestBadPortFallsBackToDefault(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("PORT", "")

	cfg := Load()
	require.Equal(t, 8000, cfg.Server.Port)
}
