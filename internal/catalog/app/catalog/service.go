package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/catalog/cache"
	"storefront/internal/catalog/domain"
	"storefront/internal/catalog/events"
	"storefront/internal/catalog/repository/product_repo"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product data")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CatalogService orchestrates the product store, the lookaside cache and the
// event publisher behind one read/write API.
//
// Side effects are strictly ordered: the store mutation always happens first,
// then the event publication, then the cache invalidation. The store is the
// only dependency whose failure fails the operation; a broken cache degrades
// reads to the store and a broken publisher skips the event, both with a
// warning in the log.
type CatalogService interface {
	GetProduct(ctx context.Context, productID string) (*ProductResponse, error)
	ListProducts(ctx context.Context, page, pageSize int) (*ProductListResponse, error)
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (bool, error)
	DeleteProduct(ctx context.Context, productID string) (bool, error)
}

type catalogService struct {
	productRepo product_repo.ProductRepository
	cache       cache.ProductCache
	publisher   events.Publisher
	logger      *zap.Logger
}

func NewCatalogService(
	productRepo product_repo.ProductRepository,
	productCache cache.ProductCache,
	publisher events.Publisher,
	logger *zap.Logger,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		cache:       productCache,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.logger.Debug("Invalid product ID", zap.String("product_id", productID), zap.Error(err))
		return nil, ErrInvalidProduct
	}

	if view, ok := s.cacheGet(ctx, id); ok {
		return mapProductToResponse(view.ToDomain()), nil
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("Product not found", zap.String("product_id", productID))
			return nil, ErrProductNotFound
		}
		s.logger.Error("Failed to get product from repository", zap.String("product_id", productID), zap.Error(err))
		return nil, errors.New("internal server error")
	}

	s.cacheSet(ctx, product)
	return mapProductToResponse(product), nil
}

func (s *catalogService) ListProducts(ctx context.Context, page, pageSize int) (*ProductListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	products, err := s.loadAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	totalItems := len(products)
	// Total pages are derived from the clamped page size, so the page count
	// and the page contents always agree.
	totalPages := (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	return &ProductListResponse{
		Items:      mapProductsToResponse(products[start:end]),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

func (s *catalogService) loadAllProducts(ctx context.Context) ([]*domain.Product, error) {
	if views, ok := s.cacheGetAll(ctx); ok {
		products := make([]*domain.Product, len(views))
		for i, view := range views {
			products[i] = view.ToDomain()
		}
		return products, nil
	}

	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		s.logger.Error("Failed to get all products from repository", zap.Error(err))
		return nil, errors.New("internal server error")
	}

	s.cacheSetAll(ctx, products)
	return products, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := domain.NewProduct(uuid.New(), req.Name, req.Description, req.Price, req.Stock)
	if err != nil {
		s.logger.Warn("Invalid create product request", zap.Error(err))
		return nil, ErrInvalidProduct
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("product_id", product.ID.String()), zap.Error(err))
		return nil, errors.New("failed to create product")
	}

	event, eventErr := domain.NewProductCreatedEvent(product)
	s.publish(ctx, event, eventErr)
	s.cacheSet(ctx, product)

	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))
	return mapProductToResponse(product), nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, productID string, req *UpdateProductRequest) (bool, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.logger.Debug("Invalid product ID", zap.String("product_id", productID), zap.Error(err))
		return false, ErrInvalidProduct
	}

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to load product for update", zap.String("product_id", productID), zap.Error(err))
		return false, errors.New("internal server error")
	}

	if err := product.Apply(req.Name, req.Description, req.Price, req.Stock); err != nil {
		s.logger.Warn("Invalid update product request", zap.String("product_id", productID), zap.Error(err))
		return false, ErrInvalidProduct
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to update product", zap.String("product_id", productID), zap.Error(err))
		return false, errors.New("failed to update product")
	}

	event, eventErr := domain.NewProductUpdatedEvent(product)
	s.publish(ctx, event, eventErr)
	s.cacheRemove(ctx, id)

	s.logger.Info("Product updated", zap.String("product_id", productID))
	return true, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productID string) (bool, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.logger.Debug("Invalid product ID", zap.String("product_id", productID), zap.Error(err))
		return false, ErrInvalidProduct
	}

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to delete product", zap.String("product_id", productID), zap.Error(err))
		return false, errors.New("failed to delete product")
	}

	event, eventErr := domain.NewProductDeletedEvent(id)
	s.publish(ctx, event, eventErr)
	s.cacheRemove(ctx, id)

	s.logger.Info("Product deleted", zap.String("product_id", productID))
	return true, nil
}

// publish hands the event to the transport and absorbs any failure. Catalog
// mutation success is independent of event delivery success.
func (s *catalogService) publish(ctx context.Context, event domain.Event, err error) {
	if err != nil {
		s.logger.Warn("Failed to build domain event, skipping publication", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event, continuing",
			zap.String("event_id", event.EventID.String()),
			zap.String("event_type", event.Type),
			zap.Error(err))
	}
}

// Cache helpers. A cache error is a miss on the read side and a no-op on the
// write side; it degrades performance, never correctness.

func (s *catalogService) cacheGet(ctx context.Context, id uuid.UUID) (*cache.CachedProduct, bool) {
	view, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("Cache read failed, falling back to store", zap.String("product_id", id.String()), zap.Error(err))
		return nil, false
	}
	return view, ok
}

func (s *catalogService) cacheGetAll(ctx context.Context) ([]cache.CachedProduct, bool) {
	views, ok, err := s.cache.GetAll(ctx)
	if err != nil {
		s.logger.Warn("Cache list read failed, falling back to store", zap.Error(err))
		return nil, false
	}
	return views, ok
}

func (s *catalogService) cacheSet(ctx context.Context, product *domain.Product) {
	if err := s.cache.Set(ctx, product.ID, cache.SnapshotProduct(product)); err != nil {
		s.logger.Warn("Failed to populate product cache", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}

func (s *catalogService) cacheSetAll(ctx context.Context, products []*domain.Product) {
	views := make([]cache.CachedProduct, len(products))
	for i, product := range products {
		views[i] = cache.SnapshotProduct(product)
	}
	if err := s.cache.SetAll(ctx, views); err != nil {
		s.logger.Warn("Failed to populate product list cache", zap.Error(err))
	}
}

func (s *catalogService) cacheRemove(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Remove(ctx, id); err != nil {
		s.logger.Warn("Failed to remove product from cache", zap.String("product_id", id.String()), zap.Error(err))
	}
	if err := s.cache.RemoveAll(ctx); err != nil {
		s.logger.Warn("Failed to remove product list from cache", zap.Error(err))
	}
}
