package orders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/orders/app/orders"
)

type OrderHandler struct {
	service orders.OrderService
	logger  *zap.Logger
}

func NewOrderHandler(s orders.OrderService, l *zap.Logger) *OrderHandler {
	return &OrderHandler{service: s, logger: l}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orders.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreateOrder", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidOrder) {
			h.logger.Warn("Bad request for CreateOrder", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, orders.ErrProductNotFound) {
			h.logger.Info("Order references unknown product")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("Error creating order", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	res, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidOrder) {
			h.logger.Warn("Invalid order ID in GetOrder request", zap.String("order_id", orderID))
			http.Error(w, "Invalid order ID", http.StatusBadRequest)
			return
		}
		if errors.Is(err, orders.ErrOrderNotFound) {
			h.logger.Info("Order not found", zap.String("order_id", orderID))
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting order", zap.String("order_id", orderID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetAllOrders(r.Context())
	if err != nil {
		h.logger.Error("Error getting all orders", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	ok, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrInvalidOrder) {
			h.logger.Warn("Bad request for CancelOrder", zap.String("order_id", orderID), zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Error cancelling order", zap.String("order_id", orderID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.logger.Info("Order not found for cancel", zap.String("order_id", orderID))
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *OrderHandler) GetAvailableProducts(w http.ResponseWriter, r *http.Request) {
	res := h.service.GetAvailableProducts(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
