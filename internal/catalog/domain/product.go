package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product data")

// Product is the catalog's source-of-truth record. It is owned by the
// product repository and mutated only through the catalog service.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(id uuid.UUID, name, description string, price decimal.Decimal, stock int) (*Product, error) {
	if id == uuid.Nil || name == "" {
		return nil, ErrInvalidProduct
	}
	if price.IsNegative() || stock < 0 {
		return nil, ErrInvalidProduct
	}
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Apply overwrites the mutable fields and stamps UpdatedAt.
func (p *Product) Apply(name, description string, price decimal.Decimal, stock int) error {
	if name == "" || price.IsNegative() || stock < 0 {
		return ErrInvalidProduct
	}
	now := time.Now().UTC()
	p.Name = name
	p.Description = description
	p.Price = price
	p.Stock = stock
	p.UpdatedAt = &now
	return nil
}
