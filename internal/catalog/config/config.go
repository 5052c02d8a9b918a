package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	MessagingProviderLog   = "log"
	MessagingProviderKafka = "kafka"

	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type Config struct {
	HTTPPort int    `env:"CATALOG_HTTP_PORT"`
	RPCAddr  string `env:"CATALOG_RPC_ADDR"`

	DBConfig struct {
		DBHost     string `env:"CATALOG_DB_HOST"`
		DBPort     string `env:"CATALOG_DB_PORT"`
		DBUser     string `env:"CATALOG_DB_USER"`
		DBPassword string `env:"CATALOG_DB_PASSWORD"`
		DBName     string `env:"CATALOG_DB_NAME"`
		DBSSLMode  string `env:"CATALOG_DB_SSLMODE"`
	}
	MigrationsPath string `env:"CATALOG_MIGRATIONS_PATH"`

	CacheEnabled            bool          `env:"CATALOG_CACHE_ENABLED"`
	CacheBackend            string        `env:"CATALOG_CACHE_BACKEND"`
	CacheKeyPrefix          string        `env:"CATALOG_CACHE_KEY_PREFIX"`
	CacheAbsoluteExpiration time.Duration `env:"CATALOG_CACHE_ABSOLUTE_EXPIRATION"`
	CacheSlidingExpiration  time.Duration `env:"CATALOG_CACHE_SLIDING_EXPIRATION"`
	RedisAddr               string        `env:"CATALOG_REDIS_ADDR"`
	RedisPassword           string        `env:"CATALOG_REDIS_PASSWORD"`

	MessagingProvider  string `env:"CATALOG_MESSAGING_PROVIDER"`
	KafkaURL           string `env:"KAFKA_BROKER_URL"`
	KafkaEventsTopic   string `env:"KAFKA_CATALOG_EVENTS_TOPIC"`
	KafkaConsumerGroup string `env:"KAFKA_CONSUMER_GROUP"`

	EnableListEndpoint bool `env:"CATALOG_ENABLE_LIST"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	port, err := strconv.Atoi(getEnvOrDefault("CATALOG_HTTP_PORT", "8081"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_HTTP_PORT: %w", err)
	}
	cfg.HTTPPort = port
	cfg.RPCAddr = getEnvOrDefault("CATALOG_RPC_ADDR", ":9081")

	cfg.DBConfig.DBHost = getEnvOrDefault("CATALOG_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("CATALOG_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("CATALOG_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("CATALOG_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("CATALOG_DB_NAME", "catalog_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("CATALOG_DB_SSLMODE", "disable")
	cfg.MigrationsPath = getEnvOrDefault("CATALOG_MIGRATIONS_PATH", "file:///app/migrations/catalog")

	cfg.CacheEnabled, err = strconv.ParseBool(getEnvOrDefault("CATALOG_CACHE_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_ENABLED: %w", err)
	}
	cfg.CacheBackend = getEnvOrDefault("CATALOG_CACHE_BACKEND", CacheBackendMemory)
	if cfg.CacheBackend != CacheBackendRedis && cfg.CacheBackend != CacheBackendMemory {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_BACKEND: %q", cfg.CacheBackend)
	}
	cfg.CacheKeyPrefix = getEnvOrDefault("CATALOG_CACHE_KEY_PREFIX", "catalog:products")

	absolute, err := time.ParseDuration(getEnvOrDefault("CATALOG_CACHE_ABSOLUTE_EXPIRATION", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_ABSOLUTE_EXPIRATION: %w", err)
	}
	if absolute <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_ABSOLUTE_EXPIRATION must be positive, got %s", absolute)
	}
	cfg.CacheAbsoluteExpiration = absolute

	// Zero disables the sliding window; absolute expiration is always armed.
	sliding, err := time.ParseDuration(getEnvOrDefault("CATALOG_CACHE_SLIDING_EXPIRATION", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_SLIDING_EXPIRATION: %w", err)
	}
	if sliding < 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_SLIDING_EXPIRATION must not be negative, got %s", sliding)
	}
	cfg.CacheSlidingExpiration = sliding

	cfg.RedisAddr = getEnvOrDefault("CATALOG_REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnvOrDefault("CATALOG_REDIS_PASSWORD", "")

	cfg.MessagingProvider = getEnvOrDefault("CATALOG_MESSAGING_PROVIDER", MessagingProviderLog)
	if cfg.MessagingProvider != MessagingProviderLog && cfg.MessagingProvider != MessagingProviderKafka {
		return nil, fmt.Errorf("invalid CATALOG_MESSAGING_PROVIDER: %q", cfg.MessagingProvider)
	}
	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaEventsTopic = getEnvOrDefault("KAFKA_CATALOG_EVENTS_TOPIC", "catalog.events")
	cfg.KafkaConsumerGroup = getEnvOrDefault("KAFKA_CONSUMER_GROUP", "catalog-audit-group")

	cfg.EnableListEndpoint, err = strconv.ParseBool(getEnvOrDefault("CATALOG_ENABLE_LIST", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_ENABLE_LIST: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
