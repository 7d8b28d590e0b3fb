package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	BackendTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Cart persistence. Backend "file" keeps one JSON snapshot per owner
	// under StateDir; "mongo" stores snapshots in MongoDB instead.
	CartBackend string
	StateDir    string
	MongoURI    string
	MongoDBName string

	// Catalog cache. Empty RedisAddr disables caching entirely.
	RedisAddr     string
	RedisPassword string

	// Order event consumer. Empty broker list disables the poller.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Debug metrics endpoint and per-operation counters.
	MonitorEnabled bool
}

func Load() Config {
	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout:  parseDuration(getEnv("BACKEND_TIMEOUT", "10s"), 10*time.Second),
		RequestTimeout:  parseDuration(getEnv("REQUEST_TIMEOUT", "30s"), 30*time.Second),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),

		CartBackend: getEnv("CART_BACKEND", "file"),
		StateDir:    getEnv("STATE_DIR", "./state"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "storefront"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		KafkaBrokers: splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "order-events"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "storefront-consumer"),

		MonitorEnabled: getEnv("MONITOR_ENABLED", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
