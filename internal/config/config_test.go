package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: ":9090"
database:
  driver: sqlite
  url: "file:mood.db"
auth:
  jwt_secret: "secret"
  token_ttl: 2h
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:mood.db", cfg.Database.URL)
	assert.True(t, cfg.Database.AutoMigrate, "auto_migrate のデフォルトは true")
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
database:
  url: "postgres://from-file"
auth:
  jwt_secret: "file-secret"
`)
	t.Setenv("APP_DATABASE_URL", "postgres://from-env")
	t.Setenv("APP_AUTH_JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres://from-env", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, DefaultDatabaseDriver, cfg.Database.Driver)
	assert.Equal(t, DefaultTokenTTL, cfg.Auth.TokenTTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "未対応のドライバ",
			body: "database:\n  driver: oracle\n  url: x\nauth:\n  jwt_secret: s\n",
		},
		{
			name: "database.url が空",
			body: "auth:\n  jwt_secret: s\n",
		},
		{
			name: "jwt_secret が空",
			body: "database:\n  url: x\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.body)
			cfg, err := LoadConfig(dir)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
