package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultAddress         = ":9090"
	defaultTimeout         = 30 * time.Second
	defaultStoreDriver     = DriverMySQL
	defaultMongoDBName     = "blogs"
	defaultCacheDB         = 0
	defaultIdentityTimeout = 3 * time.Second
	defaultIdentityRPS     = 20.0
	defaultIdentityBurst   = 10
	defaultIdentityTTL     = 10 * time.Minute
	defaultMaxDepth        = 64
	defaultServiceName     = "blog-threads"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
	DriverBadger = "badger"
)

type Database struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

type Mongo struct {
	URL          string
	DBName       string
	Transactions bool
}

// Cache is disabled when Host is empty.
type Cache struct {
	Host string
	Port string
	Pass string
	DB   int
}

func (c Cache) Enabled() bool { return c.Host != "" }

func (c Cache) Addr() string { return c.Host + ":" + c.Port }

type Keycloak struct {
	URL          string
	Realm        string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	RPS          float64
	Burst        int
	CacheTTL     time.Duration
}

// Config holds every setting read from the environment at startup.
type Config struct {
	ServiceName    string
	Address        string
	ContextTimeout time.Duration
	StoreDriver    string
	BadgerDir      string
	Database       Database
	Mongo          Mongo
	Cache          Cache
	Keycloak       Keycloak
	ThreadMaxDepth int
	// LikeReconcileSpec is a cron spec, empty disables the job.
	LikeReconcileSpec string
	LogLevel          string
	LogFormat         string
	CORSOrigins       []string
}

// Load reads .env when present and then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file loaded, reading the environment only")
	}

	return Config{
		ServiceName:    getString("SERVICE_NAME", defaultServiceName),
		Address:        getString("SERVER_ADDRESS", defaultAddress),
		ContextTimeout: getDuration("CONTEXT_TIMEOUT", defaultTimeout),
		StoreDriver:    strings.ToLower(getString("STORE_DRIVER", defaultStoreDriver)),
		BadgerDir:      os.Getenv("BADGER_DIR"),
		Database: Database{
			Host: os.Getenv("DATABASE_HOST"),
			Port: os.Getenv("DATABASE_PORT"),
			User: os.Getenv("DATABASE_USER"),
			Pass: os.Getenv("DATABASE_PASS"),
			Name: os.Getenv("DATABASE_NAME"),
		},
		Mongo: Mongo{
			URL:          os.Getenv("MONGODB_URL"),
			DBName:       getString("MONGODB_DB_NAME", defaultMongoDBName),
			Transactions: getBool("MONGO_TRANSACTIONS", false),
		},
		Cache: Cache{
			Host: os.Getenv("CACHE_HOST"),
			Port: os.Getenv("CACHE_PORT"),
			Pass: os.Getenv("CACHE_PASS"),
			DB:   getInt("CACHE_DB", defaultCacheDB),
		},
		Keycloak: Keycloak{
			URL:          strings.TrimRight(os.Getenv("KEYCLOAK_URL"), "/"),
			Realm:        os.Getenv("KEYCLOAK_REALM"),
			ClientID:     os.Getenv("KEYCLOAK_CLIENT_ID"),
			ClientSecret: os.Getenv("KEYCLOAK_CLIENT_SECRET"),
			Timeout:      getDuration("IDENTITY_TIMEOUT", defaultIdentityTimeout),
			RPS:          getFloat("IDENTITY_RPS", defaultIdentityRPS),
			Burst:        getInt("IDENTITY_BURST", defaultIdentityBurst),
			CacheTTL:     getDuration("IDENTITY_CACHE_TTL", defaultIdentityTTL),
		},
		ThreadMaxDepth:    getInt("THREAD_MAX_DEPTH", defaultMaxDepth),
		LikeReconcileSpec: os.Getenv("LIKE_RECONCILE_SPEC"),
		LogLevel:          getString("LOG_LEVEL", "info"),
		LogFormat:         getString("LOG_FORMAT", "text"),
		CORSOrigins:       getList("CORS_ORIGINS"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %d", key, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %v", key, def)
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %t", key, def)
		return def
	}
	return b
}

// getDuration accepts Go durations ("3s") and bare seconds ("30").
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.Warnf("failed to parse %s, using default %s", key, def)
		return def
	}
	return d
}

func getList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var res []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}

// ConfigureLogger applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func (c Config) ConfigureLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
