package main

import (
	"fmt"
	"log"
	"net/http"

	"storefront/internal/gateway/config"
	"storefront/internal/gateway/router"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	r, err := router.NewRouter(cfg)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.GatewayPort)
	log.Printf("Starting API Gateway on port %d", cfg.GatewayPort)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
