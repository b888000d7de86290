package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := config.Load(writeConfig(t, "service:\n  name: clip-test\n"))
	require.NoError(t, err)

	assert.Equal(t, "clip-test", cfg.Service.Name)
	assert.Equal(t, 8000, cfg.Service.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, config.RequestLogNone, cfg.RequestLog.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TranscriptionTTL)
	assert.Equal(t, "clipsmart_processing_logs", cfg.Elasticsearch.Index)
	assert.False(t, cfg.Assistant.Enabled())
	assert.False(t, cfg.ObjectStore.Enabled())
}

func TestLoad_EnvOverridesFileAndDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CLIPSMART_PORT", "9100")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("APP_DEBUG", "yes")

	cfg, err := config.Load(writeConfig(t, "service:\n  port: 8100\n"))
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Service.Port)
	assert.True(t, cfg.Service.Debug)
	assert.True(t, cfg.Assistant.Enabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Service.CORSOrigins)
}

func TestLoad_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("AWS_BUCKET_NAME", "clips")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.True(t, cfg.ObjectStore.Enabled())
	assert.Equal(t, "us-east-1", cfg.ObjectStore.Region)
}

func TestLoad_EnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("REDIS_ADDRESS=cache:6379\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_ADDRESS") })

	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "cache:6379", cfg.Redis.Address)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:    "bad port",
			mutate:  func(c *config.Config) { c.Service.Port = 70000 },
			wantErr: "service.port",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.RequestLog.Backend = "mongo" },
			wantErr: "request_log.backend",
		},
		{
			name: "elasticsearch without url",
			mutate: func(c *config.Config) {
				c.RequestLog.Backend = config.RequestLogElasticsearch
			},
			wantErr: "elasticsearch.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var ve *config.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	t.Parallel()

	d := config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "clips", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/clips?sslmode=disable", d.URL())
	assert.Contains(t, d.DSN(), "dbname=clips")
}
