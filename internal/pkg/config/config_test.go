package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `server:
  port: 8080
mongo:
  uri: mongodb://localhost:27017
  db_name: mutualdb
  min_pool_size: 5
  max_pool_size: 20
redis:
  addr: localhost:6379
  db: 0
report:
  bucket_name: overdue-reports
downstreams:
  notification_url: http://localhost:9001
  associates_url: http://localhost:9002
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromConfigFilePath(t *testing.T) {
	t.Run("Success with defaults", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)

		cfg, err := LoadFromConfigFilePath(path)

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
		assert.Equal(t, "mutualdb", cfg.Mongo.DBName)
		assert.Equal(t, uint64(5), cfg.Mongo.MinPoolSize)
		assert.Equal(t, uint64(20), cfg.Mongo.MaxPoolSize)
		assert.Equal(t, 30*time.Minute, cfg.Mongo.MaxConnIdleTime)
		assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, 15*time.Minute, cfg.Redis.CatalogTTL)
		assert.Equal(t, "overdue-reports", cfg.Report.BucketName)
		assert.Equal(t, 10*time.Second, cfg.Downstreams.RequestTimeout)
		assert.Equal(t, "info", cfg.Logging.LogLevel)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("MONGO_DB_NAME", "mutualdb-staging")
		t.Setenv("REDIS_CATALOG_TTL_MINUTES", "5")
		t.Setenv("DOWNSTREAM_REQUEST_TIMEOUT_SECONDS", "3")

		cfg, err := LoadFromConfigFilePath(path)

		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "mutualdb-staging", cfg.Mongo.DBName)
		assert.Equal(t, 5*time.Minute, cfg.Redis.CatalogTTL)
		assert.Equal(t, 3*time.Second, cfg.Downstreams.RequestTimeout)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadFromConfigFilePath(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := writeConfigFile(t, "server: [not a mapping")
		_, err := LoadFromConfigFilePath(path)
		assert.Error(t, err)
	})
}

func TestValidateConfig(t *testing.T) {
	t.Run("Min pool size out of range", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("MONGO_MIN_POOL_SIZE", "2")

		_, err := LoadFromConfigFilePath(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_pool_size")
	})

	t.Run("Max pool size out of range", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("MONGO_MAX_POOL_SIZE", "100")

		_, err := LoadFromConfigFilePath(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_pool_size")
	})

	t.Run("Idle time out of range", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("MONGO_MAX_CONN_IDLE_MINUTES", "5")

		_, err := LoadFromConfigFilePath(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_conn_idle_minutes")
	})

	t.Run("Catalog TTL must be positive", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("REDIS_CATALOG_TTL_MINUTES", "0")

		_, err := LoadFromConfigFilePath(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog_ttl_minutes")
	})

	t.Run("Downstream timeout out of range", func(t *testing.T) {
		path := writeConfigFile(t, validConfigYAML)
		t.Setenv("DOWNSTREAM_REQUEST_TIMEOUT_SECONDS", "60")

		_, err := LoadFromConfigFilePath(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_timeout_seconds")
	})
}

func TestGetEnvOrDefaultAsInt(t *testing.T) {
	t.Run("Unset returns default", func(t *testing.T) {
		assert.Equal(t, 42, GetEnvOrDefaultAsInt("UNSET_INT_VAR", 42))
	})

	t.Run("Set returns value", func(t *testing.T) {
		t.Setenv("SOME_INT_VAR", "7")
		assert.Equal(t, 7, GetEnvOrDefaultAsInt("SOME_INT_VAR", 42))
	})

	t.Run("Invalid returns default", func(t *testing.T) {
		t.Setenv("SOME_INT_VAR", "not-a-number")
		assert.Equal(t, 42, GetEnvOrDefaultAsInt("SOME_INT_VAR", 42))
	})
}

func TestGetEnvOrDefaultAsUint64(t *testing.T) {
	t.Run("Unset returns default", func(t *testing.T) {
		assert.Equal(t, uint64(10), GetEnvOrDefaultAsUint64("UNSET_UINT_VAR", 10))
	})

	t.Run("Negative is invalid", func(t *testing.T) {
		t.Setenv("SOME_UINT_VAR", "-3")
		assert.Equal(t, uint64(10), GetEnvOrDefaultAsUint64("SOME_UINT_VAR", 10))
	})
}

func TestGetEnvOrDefaultAsString(t *testing.T) {
	t.Run("Unset returns default", func(t *testing.T) {
		assert.Equal(t, "fallback", GetEnvOrDefaultAsString("UNSET_STR_VAR", "fallback"))
	})

	t.Run("Blank returns default", func(t *testing.T) {
		t.Setenv("SOME_STR_VAR", "   ")
		assert.Equal(t, "fallback", GetEnvOrDefaultAsString("SOME_STR_VAR", "fallback"))
	})

	t.Run("Set returns value", func(t *testing.T) {
		t.Setenv("SOME_STR_VAR", "value")
		assert.Equal(t, "value", GetEnvOrDefaultAsString("SOME_STR_VAR", "fallback"))
	})
}
