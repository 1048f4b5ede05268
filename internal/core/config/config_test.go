package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("APP_JWT_SECRET", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.HTTP.Port)
	assert.Equal(t, "/api", cfg.App.HTTP.Prefix)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 1440, cfg.JWT.AccessTokenTTLMin)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 5000, cfg.DB.ConnectTimeoutMS)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	p := writeYAML(t, `
app:
  http:
    port: 9090
    prefix: /v2
jwt:
  secret: from-file
  access_token_ttl_min: 60
db:
  driver: mongo
  dsn: mongodb://localhost:27017
  database: feedback
  connect_timeout_ms: 1500
log:
  level: debug
  json: true
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.HTTP.Port)
	assert.Equal(t, "/v2", cfg.App.HTTP.Prefix)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.AccessTokenTTLMin)
	assert.Equal(t, "mongo", cfg.DB.Driver)
	assert.Equal(t, "feedback", cfg.DB.Database)
	assert.Equal(t, 1500, cfg.DB.ConnectTimeoutMS)
	assert.True(t, cfg.Log.JSON)
	// 文件未写的键保持默认
	assert.Equal(t, 10, cfg.App.HTTP.WriteTimeoutSec)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeYAML(t, `
jwt:
  secret: from-file
db:
  driver: sqlite
`)
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_DB_DRIVER", "postgres")
	t.Setenv("APP_APP_HTTP_PORT", "7070")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 7070, cfg.App.HTTP.Port)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		t.Setenv("APP_JWT_SECRET", "")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("explicit file missing", func(t *testing.T) {
		t.Setenv("APP_JWT_SECRET", "x")
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("unsupported driver", func(t *testing.T) {
		p := writeYAML(t, "jwt:\n  secret: x\ndb:\n  driver: oracle\n")
		_, err := Load(p)
		assert.Error(t, err)
	})
}
