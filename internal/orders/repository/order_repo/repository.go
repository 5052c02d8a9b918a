package order_repo

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/orders/domain"
)

// OrderRepository persists orders together with their frozen line items.
// Implementations report absence with sql.ErrNoRows.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, order *domain.Order) error
}
