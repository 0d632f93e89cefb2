package handler

import (
	"log/slog"
	"net/http"

	"katalog/internal/domain/services"
	"katalog/internal/httputil"
)

// ProductHandler handles product CRUD HTTP requests. Handlers only
// talk to services, never repositories.
type ProductHandler struct {
	products services.ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(products services.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// CreateProduct adds a catalog entry from a name and source link
// POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProductRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.CreateProduct(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, product)
}

// ListProducts returns one page of the catalog
// GET /api/products?page=1&per_page=5&q=szampon
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := httputil.QueryInt(r, "page", 1)
	perPage := httputil.QueryInt(r, "per_page", 5)
	query := r.URL.Query().Get("q")

	result, err := h.products.ListProducts(r.Context(), page, perPage, query)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetProduct returns a product with its reviews
// GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct re-generates a product from a new name/link
// PUT /api/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req services.UpdateProductRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product and its reviews
// DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt(r, "id")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheck reports liveness
// GET /health
func (h *ProductHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
