package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cf, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "8080", cf.ServerPort)
	require.Equal(t, DbDriverSqlite, cf.DbDriver)
	require.Equal(t, 10*time.Minute, cf.ProductCacheTTL)
	require.Equal(t, time.Second, cf.RateLimitRefill)
	require.Equal(t, 100, cf.RateLimitCapacity)
	require.Empty(t, cf.RateLimitType)
	require.Nil(t, cf.GetKafkaBrokers())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SERVER_PORT=9090\n" +
		"DB_DRIVER=postgres\n" +
		"REDIS_DB=2\n" +
		"PRODUCT_CACHE_TTL=30s\n" +
		"KAFKA_BROKERS=a:9092,b:9092\n" +
		"RATE_LIMIT_TYPE=token_bucket\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cf, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cf.ServerPort)
	require.Equal(t, DbDriverPostgres, cf.DbDriver)
	require.Equal(t, 2, cf.RedisDB)
	require.Equal(t, 30*time.Second, cf.ProductCacheTTL)
	require.Equal(t, []string{"a:9092", "b:9092"}, cf.GetKafkaBrokers())
	require.Equal(t, "token_bucket", cf.RateLimitType)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("LOG_LEVEL", "debug")

	cf, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "7070", cf.ServerPort)
	require.Equal(t, "debug", cf.LogLevel)
}

func TestLoadCatalogSeed(t *testing.T) {
	dir := t.TempDir()

	t.Run("ok", func(t *testing.T) {
		path := filepath.Join(dir, "seed.yaml")
		content := "products:\n" +
			"  - type: widget\n" +
			"    unitPrice: 10\n" +
			"  - type: gadget\n" +
			"    unitPrice: 25\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		seed, err := LoadCatalogSeed(path)
		require.NoError(t, err)
		require.Len(t, seed.Products, 2)
		require.Equal(t, ProductSeed{Type: "gadget", UnitPrice: 25}, seed.Products[1])
	})

	t.Run("missing type", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("products:\n  - unitPrice: 3\n"), 0o600))
		_, err := LoadCatalogSeed(path)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalogSeed(filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
	})
}
