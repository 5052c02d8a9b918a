package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/orders/domain"
	"storefront/internal/orders/repository/order_repo"
)

type pgOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sql.DB, l *zap.Logger) order_repo.OrderRepository {
	return &pgOrderRepository{db: db, logger: l}
}

func (r *pgOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction for order creation", zap.String("order_id", order.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic during order creation transaction, rolling back", zap.String("order_id", order.ID.String()))
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			r.logger.Warn("Rolling back order creation transaction due to error", zap.String("order_id", order.ID.String()), zap.Error(err))
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				r.logger.Error("Failed to commit order creation transaction", zap.String("order_id", order.ID.String()), zap.Error(err))
			} else {
				r.logger.Debug("Order creation transaction committed", zap.String("order_id", order.ID.String()))
			}
		}
	}()

	orderQuery := `INSERT INTO orders (id, customer_name, status, total, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.ExecContext(ctx, orderQuery, order.ID, order.CustomerName, order.Status, order.Total, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tx failed to create order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity) VALUES ($1, $2, $3, $4, $5)`
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity)
		if err != nil {
			return fmt.Errorf("tx failed to create order item: %w", err)
		}
	}

	return err
}

func (r *pgOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{}
	query := `SELECT id, customer_name, status, total, created_at, updated_at FROM orders WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.CustomerName, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get order by ID", zap.String("order_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}

	items, err := r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *pgOrderRepository) GetAllOrders(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	query := `SELECT id, customer_name, status, total, created_at, updated_at FROM orders ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query all orders", zap.Error(err))
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		order := &domain.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.Status, &order.Total, &order.CreatedAt, &order.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan row for all orders", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Rows error for all orders", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for _, order := range orders {
		items, err := r.getOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	return orders, nil
}

func (r *pgOrderRepository) UpdateOrderStatus(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, order.ID, order.Status, order.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update order status", zap.String("order_id", order.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected for order update", zap.String("order_id", order.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *pgOrderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `SELECT product_id, product_name, unit_price, quantity FROM order_items WHERE order_id = $1`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		r.logger.Error("Failed to query order items", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get order items for %s: %w", orderID, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			r.logger.Error("Failed to scan order item row", zap.String("order_id", orderID.String()), zap.Error(err))
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}
