package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data.db", cfg.Database.Path)
	assert.NotEmpty(t, cfg.Invoice.Company)
	assert.Len(t, cfg.Invoice.Address, 2)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_SERVER_PORT", "8088")
	t.Setenv("APP_SERVER_ENV", "production")
	t.Setenv("APP_SERVER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("APP_DATABASE_DRIVER", "postgres")
	t.Setenv("APP_DATABASE_HOST", "db.internal")
	t.Setenv("APP_DATABASE_NAME", "billing")
	t.Setenv("APP_INVOICE_FONT_PATH", "/usr/share/fonts/DejaVuSans.ttf")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "/usr/share/fonts/DejaVuSans.ttf", cfg.Invoice.FontPath)
	assert.Equal(t,
		"host=db.internal user=postgres password= dbname=billing port=5432 sslmode=disable",
		cfg.Database.PostgresDSN())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`server:
  port: 9001
database:
  path: /tmp/shop.db
invoice:
  company: Acme
  address:
    - 1 Main St
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	chdir(t, dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "/tmp/shop.db", cfg.Database.Path)
	assert.Equal(t, "Acme", cfg.Invoice.Company)
	assert.Equal(t, []string{"1 Main St"}, cfg.Invoice.Address)
}

func TestLoadConfig_UnsupportedDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_DATABASE_DRIVER", "oracle")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestPostgresDSN_Explicit(t *testing.T) {
	d := DatabaseConfig{DSN: "postgres://u:p@h/db", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@h/db", d.PostgresDSN())
}
