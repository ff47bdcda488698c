package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Addr)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 24, cfg.App.JWTExpiresHours)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.App.CORSOrigins)
	assert.Equal(t, "./data", cfg.DB.DataDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FSUBS_APP_ADDR", ":9999")
	t.Setenv("FSUBS_APP_JWT_SECRET", "testing-secret")
	t.Setenv("FSUBS_DB_DATA_DIR", "/tmp/fsubs-test")
	t.Setenv("FSUBS_APP_CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.App.Addr)
	assert.Equal(t, "testing-secret", cfg.App.JWTSecret)
	assert.Equal(t, "/tmp/fsubs-test", cfg.DB.DataDir)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.App.CORSOrigins)
}

func TestEnvToKey(t *testing.T) {
	assert.Equal(t, "app.jwt_secret", envToKey("FSUBS_APP_JWT_SECRET"))
	assert.Equal(t, "db.data_dir", envToKey("FSUBS_DB_DATA_DIR"))
	assert.Equal(t, "app.addr", envToKey("FSUBS_APP_ADDR"))
}
