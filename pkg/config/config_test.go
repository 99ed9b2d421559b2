package config

import (
	"testing"
	"time"

	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredDBVars(t *testing.T) {
	t.Helper()
	t.Setenv("CLIENTLINE_DB_HOST", "localhost")
	t.Setenv("CLIENTLINE_DB_PORT", "5432")
	t.Setenv("CLIENTLINE_DB_USER", "clientline")
	t.Setenv("CLIENTLINE_DB_PASSWORD", "secret")
	t.Setenv("CLIENTLINE_DB_NAME", "clientline")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredDBVars(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.HealthPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, 0, cfg.BcryptCost)
}

func TestLoadConfig_MissingRequiredDBParam(t *testing.T) {
	setRequiredDBVars(t)
	t.Setenv("CLIENTLINE_DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIENTLINE_DB_PASSWORD")
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredDBVars(t)
	t.Setenv("CLIENTLINE_PORT", "8888")
	t.Setenv("CLIENTLINE_LOG_LEVEL", "debug")
	t.Setenv("CLIENTLINE_DB_MAX_OPEN_CONNS", "50")
	t.Setenv("CLIENTLINE_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8888", cfg.Server.Port)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidate_PortConflict(t *testing.T) {
	setRequiredDBVars(t)
	t.Setenv("CLIENTLINE_PORT", "9090")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be different")
}

func TestValidate_BcryptCostBounds(t *testing.T) {
	setRequiredDBVars(t)
	t.Setenv("CLIENTLINE_BCRYPT_COST", "99")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost")
}

func TestDatabaseURL(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		User:     "app",
		Password: "p@ss word",
		Name:     "clientline",
		SSLMode:  "require",
	}

	url := d.URL()
	assert.Contains(t, url, "postgres://")
	assert.Contains(t, url, "db.internal:5432")
	assert.Contains(t, url, "sslmode=require")
	// Credentials must survive URL encoding.
	assert.Contains(t, url, "p%40ss")
}
