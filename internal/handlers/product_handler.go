package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mobimart/storefront/internal/models"
)

// ProductHandler serves the public product catalog from the caller's
// session-scoped read-through cache.
type ProductHandler struct {
	logger *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(logger *slog.Logger) *ProductHandler {
	return &ProductHandler{logger: logger}
}

// productView is a Product plus derived display fields.
type productView struct {
	models.Product
	Brand string `json:"brand"`
}

func toProductView(p models.Product) productView {
	return productView{Product: p, Brand: models.BrandName(p.BrandID)}
}

// ListProducts handles GET /api/product
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	products, err := sess.Catalog.Products(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	WriteJSON(w, http.StatusOK, views, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: invalid ID supplied
// - 404: product not found (or deleted)
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := parseProductID(w, r, h.logger)
	if !ok {
		return
	}

	p, err := sess.Catalog.Product(r.Context(), id)
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	if p == nil {
		h.logger.Info("product not found", "productId", id)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, toProductView(*p), h.logger)
}

// parseProductID reads and validates the productId URL parameter.
func parseProductID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (models.ProductID, bool) {
	raw := chi.URLParam(r, "productId")
	if raw == "" {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", logger)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		logger.Warn("invalid product ID format", "productId", raw)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", logger)
		return 0, false
	}
	return models.ProductID(id), true
}
