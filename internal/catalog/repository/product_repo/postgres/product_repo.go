package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/catalog/domain"
	"storefront/internal/catalog/repository/product_repo"
)

type pgProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProductRepository(db *sql.DB, l *zap.Logger) product_repo.ProductRepository {
	return &pgProductRepository{db: db, logger: l}
}

func (r *pgProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (id, name, description, price, stock, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.Stock, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create product", zap.String("product_id", product.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to create product: %w", err)
	}
	r.logger.Debug("Product created successfully", zap.String("product_id", product.ID.String()))
	return nil
}

func (r *pgProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product := &domain.Product{}
	query := `SELECT id, name, description, price, stock, created_at, updated_at FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get product by ID", zap.String("product_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return product, nil
}

func (r *pgProductRepository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	query := `SELECT id, name, description, price, stock, created_at, updated_at FROM products ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query all products", zap.Error(err))
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product := &domain.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.CreatedAt, &product.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan row for all products", zap.Error(err))
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Rows error for all products", zap.Error(err))
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return products, nil
}

func (r *pgProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `UPDATE products SET name = $2, description = $3, price = $4, stock = $5, updated_at = $6 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.Stock, product.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to update product", zap.String("product_id", product.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to update product %s: %w", product.ID, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected for product update", zap.String("product_id", product.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		r.logger.Warn("No rows affected when updating product, product might not exist", zap.String("product_id", product.ID.String()))
		return sql.ErrNoRows
	}
	r.logger.Debug("Product updated successfully", zap.String("product_id", product.ID.String()))
	return nil
}

func (r *pgProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete product", zap.String("product_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected for product delete", zap.String("product_id", id.String()), zap.Error(err))
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	r.logger.Debug("Product deleted successfully", zap.String("product_id", id.String()))
	return nil
}
