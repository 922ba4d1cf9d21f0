package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDRESS", "CONTEXT_TIMEOUT", "STORE_DRIVER", "CACHE_HOST", "CACHE_DB",
		"IDENTITY_TIMEOUT", "IDENTITY_RPS", "IDENTITY_CACHE_TTL", "THREAD_MAX_DEPTH", "LIKE_RECONCILE_SPEC",
		"MONGO_TRANSACTIONS", "CORS_ORIGINS", "MONGODB_DB_NAME"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, 30*time.Second, cfg.ContextTimeout)
	assert.Equal(t, DriverMySQL, cfg.StoreDriver)
	assert.Equal(t, "blogs", cfg.Mongo.DBName)
	assert.False(t, cfg.Mongo.Transactions)
	assert.False(t, cfg.Cache.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Keycloak.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Keycloak.CacheTTL)
	assert.Equal(t, 64, cfg.ThreadMaxDepth)
	assert.Empty(t, cfg.LikeReconcileSpec)
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("CONTEXT_TIMEOUT", "5")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MONGO_TRANSACTIONS", "true")
	t.Setenv("CACHE_HOST", "redis")
	t.Setenv("CACHE_PORT", "6379")
	t.Setenv("CACHE_DB", "2")
	t.Setenv("KEYCLOAK_URL", "http://kc:8080/")
	t.Setenv("IDENTITY_TIMEOUT", "750ms")
	t.Setenv("IDENTITY_RPS", "2.5")
	t.Setenv("THREAD_MAX_DEPTH", "8")
	t.Setenv("LIKE_RECONCILE_SPEC", "@every 10m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.True(t, cfg.Mongo.Transactions)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, "redis:6379", cfg.Cache.Addr())
	assert.Equal(t, 2, cfg.Cache.DB)
	assert.Equal(t, "http://kc:8080", cfg.Keycloak.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.Keycloak.Timeout)
	assert.Equal(t, 2.5, cfg.Keycloak.RPS)
	assert.Equal(t, 8, cfg.ThreadMaxDepth)
	assert.Equal(t, "@every 10m", cfg.LikeReconcileSpec)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("CONTEXT_TIMEOUT", "soon")
	t.Setenv("CACHE_DB", "x")
	t.Setenv("IDENTITY_RPS", "fast")
	t.Setenv("MONGO_TRANSACTIONS", "maybe")

	cfg := Load()

	assert.Equal(t, defaultTimeout, cfg.ContextTimeout)
	assert.Equal(t, defaultCacheDB, cfg.Cache.DB)
	assert.Equal(t, defaultIdentityRPS, cfg.Keycloak.RPS)
	assert.False(t, cfg.Mongo.Transactions)
}

func TestConfigureLogger(t *testing.T) {
	defer logrus.SetFormatter(&logrus.TextFormatter{})
	defer logrus.SetLevel(logrus.GetLevel())

	Config{LogLevel: "debug", LogFormat: "json"}.ConfigureLogger()
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	Config{LogLevel: "loud"}.ConfigureLogger()
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)
}
