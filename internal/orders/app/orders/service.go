package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/orders/clients/catalog"
	"storefront/internal/orders/domain"
	"storefront/internal/orders/repository/order_repo"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidOrder    = errors.New("invalid order data")
	ErrProductNotFound = errors.New("product not found")
)

// OrderService takes orders against read-only product information fetched
// through the downstream catalog client. Line items are frozen copies of the
// product's name and unit price at order time.
type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*OrderResponse, error)
	GetAllOrders(ctx context.Context) ([]*OrderResponse, error)
	CancelOrder(ctx context.Context, orderID string) (bool, error)
	GetAvailableProducts(ctx context.Context) []ProductResponse
}

type orderService struct {
	orderRepo     order_repo.OrderRepository
	catalogClient catalog.Client
	logger        *zap.Logger
}

func NewOrderService(orderRepo order_repo.OrderRepository, catalogClient catalog.Client, logger *zap.Logger) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderResponse, error) {
	if req.CustomerName == "" || len(req.Items) == 0 {
		return nil, ErrInvalidOrder
	}

	// Validation happens before any catalog or store access.
	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			s.logger.Warn("Invalid product ID in order request", zap.String("product_id", item.ProductID), zap.Error(err))
			return nil, ErrInvalidOrder
		}
		if item.Quantity <= 0 {
			return nil, ErrInvalidOrder
		}
		productIDs[i] = id
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, reqItem := range req.Items {
		product, found := s.catalogClient.GetProduct(ctx, productIDs[i])
		if !found {
			// A catalog outage and a genuinely missing product look the
			// same here; the order is rejected either way.
			s.logger.Info("Product not found in catalog", zap.String("product_id", productIDs[i].String()))
			return nil, ErrProductNotFound
		}
		items[i] = domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    reqItem.Quantity,
		}
	}

	order, err := domain.NewOrder(uuid.New(), req.CustomerName, items)
	if err != nil {
		s.logger.Warn("Failed to build order domain object", zap.Error(err))
		return nil, ErrInvalidOrder
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to save order", zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, errors.New("failed to create order")
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer", order.CustomerName),
		zap.String("total", order.Total.String()))
	return mapOrderToResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		s.logger.Debug("Invalid order ID", zap.String("order_id", orderID), zap.Error(err))
		return nil, ErrInvalidOrder
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Debug("Order not found", zap.String("order_id", orderID))
			return nil, ErrOrderNotFound
		}
		s.logger.Error("Failed to get order from repository", zap.String("order_id", orderID), zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrderToResponse(order), nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]*OrderResponse, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		s.logger.Error("Failed to get all orders from repository", zap.Error(err))
		return nil, errors.New("internal server error")
	}
	return mapOrdersToResponse(orders), nil
}

func (s *orderService) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		s.logger.Debug("Invalid order ID", zap.String("order_id", orderID), zap.Error(err))
		return false, ErrInvalidOrder
	}

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to load order for cancel", zap.String("order_id", orderID), zap.Error(err))
		return false, errors.New("internal server error")
	}

	if err := order.Cancel(); err != nil {
		s.logger.Warn("Cannot cancel order", zap.String("order_id", orderID), zap.Error(err))
		return false, ErrInvalidOrder
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Error("Failed to update order status", zap.String("order_id", orderID), zap.Error(err))
		return false, errors.New("failed to cancel order")
	}

	s.logger.Info("Order cancelled", zap.String("order_id", orderID))
	return true, nil
}

func (s *orderService) GetAvailableProducts(ctx context.Context) []ProductResponse {
	products := s.catalogClient.GetAvailableProducts(ctx)
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = mapProductToResponse(product)
	}
	return responses
}
