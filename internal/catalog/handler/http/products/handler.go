package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"storefront/internal/catalog/app/catalog"
)

type ProductHandler struct {
	service catalog.CatalogService
	logger  *zap.Logger
}

func NewProductHandler(s catalog.CatalogService, l *zap.Logger) *ProductHandler {
	return &ProductHandler{service: s, logger: l}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreateProduct", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			h.logger.Warn("Bad request for CreateProduct", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Error creating product", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	res, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			h.logger.Warn("Invalid product ID in GetProduct request", zap.String("product_id", productID))
			http.Error(w, "Invalid product ID", http.StatusBadRequest)
			return
		}
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.logger.Info("Product not found", zap.String("product_id", productID))
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting product", zap.String("product_id", productID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "pageSize", catalog.DefaultPageSize)

	res, err := h.service.ListProducts(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("Error listing products", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req catalog.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for UpdateProduct", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ok, err := h.service.UpdateProduct(r.Context(), productID, &req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			h.logger.Warn("Bad request for UpdateProduct", zap.String("product_id", productID), zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Error updating product", zap.String("product_id", productID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.logger.Info("Product not found for update", zap.String("product_id", productID))
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	ok, err := h.service.DeleteProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			h.logger.Warn("Invalid product ID in DeleteProduct request", zap.String("product_id", productID))
			http.Error(w, "Invalid product ID", http.StatusBadRequest)
			return
		}
		h.logger.Error("Error deleting product", zap.String("product_id", productID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.logger.Info("Product not found for delete", zap.String("product_id", productID))
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseIntQuery(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
