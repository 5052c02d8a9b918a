package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/orders/domain"
	"storefront/internal/orders/repository/order_repo"
)

// memOrderRepository is the in-memory OrderRepository used in tests. It
// mirrors the postgres implementation's absence contract (sql.ErrNoRows).
type memOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewOrderRepository() order_repo.OrderRepository {
	return &memOrderRepository{orders: make(map[uuid.UUID]domain.Order)}
}

func (r *memOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

func (r *memOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	o := order
	o.Items = append([]domain.OrderItem(nil), order.Items...)
	return &o, nil
}

func (r *memOrderRepository) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		o := order
		o.Items = append([]domain.OrderItem(nil), order.Items...)
		orders = append(orders, &o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *memOrderRepository) UpdateOrderStatus(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Status = order.Status
	stored.UpdatedAt = order.UpdatedAt
	r.orders[order.ID] = stored
	return nil
}
