package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

type productListDTO struct {
	Items []productDTO `json:"items"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient talks to the catalog service's request/response API.
func NewHTTPClient(baseURL string, timeout time.Duration, l *zap.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  l.With(zap.String("component", "CatalogHTTPClient")),
	}
}

func (c *httpClient) GetProduct(ctx context.Context, id uuid.UUID) (*Product, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%s", c.baseURL, id), nil)
	if err != nil {
		c.logger.Warn("Failed to build catalog request", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Catalog request failed", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Unexpected catalog response status",
			zap.String("product_id", id.String()),
			zap.Int("status_code", resp.StatusCode))
		return nil, false
	}

	var dto productDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		c.logger.Warn("Failed to decode catalog response", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}

	product, err := mapDTO(dto)
	if err != nil {
		c.logger.Warn("Malformed product in catalog response", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}
	return product, true
}

func (c *httpClient) GetAvailableProducts(ctx context.Context) []Product {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products?pageSize=100", c.baseURL), nil)
	if err != nil {
		c.logger.Warn("Failed to build catalog list request", zap.Error(err))
		return []Product{}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Catalog list request failed", zap.Error(err))
		return []Product{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Unexpected catalog list response status", zap.Int("status_code", resp.StatusCode))
		return []Product{}
	}

	var list productListDTO
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		c.logger.Warn("Failed to decode catalog list response", zap.Error(err))
		return []Product{}
	}

	return mapAvailable(list.Items, c.logger)
}

func mapDTO(dto productDTO) (*Product, error) {
	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", dto.ID, err)
	}
	return &Product{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Stock:       dto.Stock,
	}, nil
}

// mapAvailable keeps only products with stock on hand; malformed entries are
// skipped rather than failing the whole list.
func mapAvailable(dtos []productDTO, l *zap.Logger) []Product {
	products := make([]Product, 0, len(dtos))
	for _, dto := range dtos {
		if dto.Stock <= 0 {
			continue
		}
		product, err := mapDTO(dto)
		if err != nil {
			l.Warn("Skipping malformed product in catalog list", zap.String("product_id", dto.ID), zap.Error(err))
			continue
		}
		products = append(products, *product)
	}
	return products
}
