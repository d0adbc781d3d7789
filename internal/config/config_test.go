package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 16.0, cfg.Billing.TaxRate)
	assert.Equal(t, "memory", cfg.Blob.Driver)
	assert.Equal(t, "VE", cfg.Phone.Region)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.DevMode())
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
billing:
  tax_rate: 12
log:
  format: json
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12.0, cfg.Billing.TaxRate)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8080},
			Blob:    BlobConfig{Driver: "memory"},
			Billing: BillingConfig{TaxRate: 16},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.JWTSecret = "short"
	assert.ErrorContains(t, cfg.Validate(), "jwt_secret")

	cfg = valid()
	cfg.Blob.Driver = "s3"
	assert.ErrorContains(t, cfg.Validate(), "s3_bucket")

	cfg = valid()
	cfg.Jobs.ReconcileCron = "not a cron"
	assert.ErrorContains(t, cfg.Validate(), "jobs.reconcile_cron")

	cfg = valid()
	cfg.Jobs.LowStockCron = "0 7 * * *"
	assert.NoError(t, cfg.Validate())

	cfg = valid()
	cfg.Auth.HostedURL = "https://auth.example.com"
	assert.ErrorContains(t, cfg.Validate(), "hosted")
}
