package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{"STORAGE_BACKEND": "memory"}))
	require.NoError(t, err)

	assert.Equal(t, StorageBackendMemory, cfg.StorageBackend)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "200-M", cfg.RateLimit)
	assert.True(t, cfg.RunMigrations)
}

func TestFromViper(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
		wantErr   string
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name:      "postgres requires url",
			overrides: map[string]any{"STORAGE_BACKEND": "postgres"},
			wantErr:   "PGSQL_URL is required",
		},
		{
			name:      "unknown backend",
			overrides: map[string]any{"STORAGE_BACKEND": "redis"},
			wantErr:   "unknown STORAGE_BACKEND",
		},
		{
			name:      "non-positive lock timeout",
			overrides: map[string]any{"STORAGE_BACKEND": "memory", "LOCK_TIMEOUT": "0s"},
			wantErr:   "LOCK_TIMEOUT must be positive",
		},
		{
			name:      "production needs a real secret",
			overrides: map[string]any{"STORAGE_BACKEND": "memory", "IS_PRODUCTION": true},
			wantErr:   "JWT_SECRET must be set",
		},
		{
			name: "invalid lock timeout falls back",
			overrides: map[string]any{
				"STORAGE_BACKEND": "memory",
				"LOCK_TIMEOUT":    "soon",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5*time.Second, cfg.LockTimeout)
			},
		},
		{
			name: "explicit values",
			overrides: map[string]any{
				"STORAGE_BACKEND":      "Postgres",
				"PGSQL_URL":            "postgres://localhost/recharge",
				"LOCK_TIMEOUT":         "750ms",
				"LOG_LEVEL":            "debug",
				"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StorageBackendPostgres, cfg.StorageBackend)
				assert.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
				assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := fromViper(newTestViper(tt.overrides))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
