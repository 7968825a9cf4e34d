package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "session:\n  secret: test-secret\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "sistema_calificaciones", cfg.Mongo.Database)
	assert.Equal(t, "sesion", cfg.Session.CookieName)
	assert.Equal(t, 10*time.Second, cfg.MongoTimeout())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
mongo:
  database: escuela
  timeout: 3s
session:
  secret: test-secret
  ttl: 1h
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "escuela", cfg.Mongo.Database)
	assert.Equal(t, 3*time.Second, cfg.MongoTimeout())
	assert.Equal(t, time.Hour, cfg.SessionTTL())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "session:\n  secret: test-secret\n")

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MONGO_DATABASE", "otra_base")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "otra_base", cfg.Mongo.Database)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"8080\"\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session secret")
}

func TestLoadConfigRejectsBadDurations(t *testing.T) {
	path := writeConfigFile(t, `
session:
  secret: test-secret
  ttl: doce-horas
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
