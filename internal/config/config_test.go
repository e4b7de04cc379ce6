package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("supabase variables with defaults", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://demo.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "anon-key")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DriverPostgREST, cfg.Store.Driver)
		assert.Equal(t, "https://demo.supabase.co", cfg.Store.URL)
		assert.Equal(t, "anon-key", cfg.Store.Key)
		assert.Equal(t, "3001", cfg.Server.Port)
		assert.Equal(t, ":3001", cfg.Server.Addr())
		assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
		require.NotNil(t, cfg.Observability)
		assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
		assert.Equal(t, "development", cfg.Observability.Environment)
		assert.False(t, cfg.Observability.NewRelicEnabled())
	})

	t.Run("missing store credentials", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "")
		t.Setenv("SUPABASE_ANON_KEY", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Store.URL")
		assert.Contains(t, err.Error(), "Store.Key")
	})

	t.Run("memory driver needs no credentials", func(t *testing.T) {
		t.Setenv("CARPOOL_STORE__DRIVER", DriverMemory)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, DriverMemory, cfg.Store.Driver)
	})

	t.Run("prefixed variables override aliases", func(t *testing.T) {
		t.Setenv("SUPABASE_URL", "https://alias.supabase.co")
		t.Setenv("SUPABASE_ANON_KEY", "alias-key")
		t.Setenv("CARPOOL_STORE__URL", "https://explicit.supabase.co")
		t.Setenv("CARPOOL_SERVER__PORT", "8080")
		t.Setenv("CARPOOL_SERVER__CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("CARPOOL_PRIMARY__ENV", "production")
		t.Setenv("CARPOOL_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://explicit.supabase.co", cfg.Store.URL)
		assert.Equal(t, "alias-key", cfg.Store.Key)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
		assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
		assert.True(t, cfg.Observability.IsProduction())
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("CARPOOL_STORE__DRIVER", "sqlite")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oneof")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("CARPOOL_STORE__DRIVER", DriverMemory)
		t.Setenv("CARPOOL_OBSERVABILITY__LOGGING__LEVEL", "verbose")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid logging level")
	})
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	assert.Equal(t, "warn", cfg.GetLogLevel())
}

func TestEnvKeyValue(t *testing.T) {
	key, value := envKeyValue(EnvPrefix+"SERVER__PORT", "9090")
	assert.Equal(t, "server.port", key)
	assert.Equal(t, "9090", value)

	key, value = envKeyValue(EnvPrefix+"SERVER__CORS_ALLOWED_ORIGINS", " http://a.test, ,http://b.test ")
	assert.Equal(t, "server.cors_allowed_origins", key)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, value)
}
