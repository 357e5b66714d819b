package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Catalog.MinPrice)
	assert.Equal(t, 5000, cfg.Catalog.MaxPrice)
	assert.Equal(t, "Jyoti's World", cfg.Catalog.SiteLabel)
	assert.Equal(t, "Custom", cfg.Catalog.DefaultBrand)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, int64(10<<20), cfg.Catalog.MaxUploadBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CATALOG_MAX_PRICE=8000\nSTORAGE_DRIVER=Memory\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("CATALOG_MAX_PRICE")
		os.Unsetenv("STORAGE_DRIVER")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Catalog.MaxPrice)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
}

func TestProcessEnvWinsOverEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CATALOG_SITE_LABEL=From File\n"), 0644))
	t.Setenv("CATALOG_SITE_LABEL", "From Env")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Catalog.SiteLabel)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{MinPrice: 0, MaxPrice: 5000},
			Storage: StorageConfig{Driver: StorageDriverFile},
		}
	}

	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Storage.Driver = "redis"
	assert.ErrorContains(t, cfg.Validate(), "unknown storage driver")

	cfg = valid()
	cfg.Catalog.MinPrice = -1
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Catalog.MinPrice = 6000
	assert.ErrorContains(t, cfg.Validate(), "exceeds max price")

	cfg = valid()
	cfg.Environment = "production"
	cfg.Storage.Driver = StorageDriverPostgres
	assert.ErrorContains(t, cfg.Validate(), "database password")
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "catalog", SSLMode: "disable"}
	assert.Contains(t, cfg.DSN(), "host=db")
	assert.Contains(t, cfg.DSN(), "dbname=catalog")
	assert.Contains(t, cfg.DSN(), "TimeZone=UTC")
}
