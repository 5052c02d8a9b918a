package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	GatewayPort       int
	CatalogServiceURL string
	OrdersServiceURL  string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	gatewayPortStr := os.Getenv("GATEWAY_PORT")
	if gatewayPortStr == "" {
		gatewayPortStr = "8080"
	}
	port, err := strconv.Atoi(gatewayPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_PORT: %w", err)
	}
	cfg.GatewayPort = port

	cfg.CatalogServiceURL = os.Getenv("CATALOG_SERVICE_HOST")
	if cfg.CatalogServiceURL == "" {
		cfg.CatalogServiceURL = "http://localhost:8081"
	}

	cfg.OrdersServiceURL = os.Getenv("ORDERS_SERVICE_HOST")
	if cfg.OrdersServiceURL == "" {
		cfg.OrdersServiceURL = "http://localhost:8082"
	}

	return cfg, nil
}
