package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	CatalogTransportHTTP = "http"
	CatalogTransportRPC  = "rpc"
)

type Config struct {
	HTTPPort int `env:"ORDERS_HTTP_PORT"`

	DBConfig struct {
		DBHost     string `env:"ORDERS_DB_HOST"`
		DBPort     string `env:"ORDERS_DB_PORT"`
		DBUser     string `env:"ORDERS_DB_USER"`
		DBPassword string `env:"ORDERS_DB_PASSWORD"`
		DBName     string `env:"ORDERS_DB_NAME"`
		DBSSLMode  string `env:"ORDERS_DB_SSLMODE"`
	}
	MigrationsPath string `env:"ORDERS_MIGRATIONS_PATH"`

	CatalogTransport   string        `env:"ORDERS_CATALOG_TRANSPORT"`
	CatalogHTTPBaseURL string        `env:"ORDERS_CATALOG_HTTP_BASE_URL"`
	CatalogRPCAddr     string        `env:"ORDERS_CATALOG_RPC_ADDR"`
	CatalogCallTimeout time.Duration `env:"ORDERS_CATALOG_CALL_TIMEOUT"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	port, err := strconv.Atoi(getEnvOrDefault("ORDERS_HTTP_PORT", "8082"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDERS_HTTP_PORT: %w", err)
	}
	cfg.HTTPPort = port

	cfg.DBConfig.DBHost = getEnvOrDefault("ORDERS_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("ORDERS_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("ORDERS_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("ORDERS_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("ORDERS_DB_NAME", "orders_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("ORDERS_DB_SSLMODE", "disable")
	cfg.MigrationsPath = getEnvOrDefault("ORDERS_MIGRATIONS_PATH", "file:///app/migrations/orders")

	cfg.CatalogTransport = getEnvOrDefault("ORDERS_CATALOG_TRANSPORT", CatalogTransportHTTP)
	if cfg.CatalogTransport != CatalogTransportHTTP && cfg.CatalogTransport != CatalogTransportRPC {
		return nil, fmt.Errorf("invalid ORDERS_CATALOG_TRANSPORT: %q", cfg.CatalogTransport)
	}
	cfg.CatalogHTTPBaseURL = getEnvOrDefault("ORDERS_CATALOG_HTTP_BASE_URL", "http://localhost:8081")
	cfg.CatalogRPCAddr = getEnvOrDefault("ORDERS_CATALOG_RPC_ADDR", "localhost:9081")

	timeout, err := time.ParseDuration(getEnvOrDefault("ORDERS_CATALOG_CALL_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ORDERS_CATALOG_CALL_TIMEOUT: %w", err)
	}
	cfg.CatalogCallTimeout = timeout

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
