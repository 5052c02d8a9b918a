package rpc

import (
	"time"

	"storefront/internal/catalog/app/catalog"
)

// Wire types for the catalog RPC endpoint. Identities and prices travel as
// strings and timestamps as RFC3339 so the contract stays language-neutral.

type GetProductArgs struct {
	ID string `json:"id"`
}

type ListProductsArgs struct{}

type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

type GetProductReply struct {
	Found   bool        `json:"found"`
	Product *ProductDTO `json:"product,omitempty"`
}

type ListProductsReply struct {
	Products []ProductDTO `json:"products"`
}

func mapResponseToDTO(res *catalog.ProductResponse) ProductDTO {
	dto := ProductDTO{
		ID:          res.ID,
		Name:        res.Name,
		Description: res.Description,
		Price:       res.Price.String(),
		Stock:       res.Stock,
		CreatedAt:   res.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if res.UpdatedAt != nil {
		dto.UpdatedAt = res.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return dto
}
