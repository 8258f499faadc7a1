package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mobimart/storefront/internal/models"
)

// OrderHandler serves the caller's order history from the remote service.
type OrderHandler struct {
	log *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(log *slog.Logger) *OrderHandler {
	return &OrderHandler{log: log}
}

// ListOrders handles GET /api/orders: all orders owned by the caller.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.log)
	if !ok {
		return
	}
	if sess.Anonymous() {
		WriteError(w, http.StatusUnauthorized, "Login required", h.log)
		return
	}

	orders, err := sess.Client.GetUserOrders(r.Context())
	if err != nil {
		writeBackendError(w, err, h.log)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /api/orders/{orderId}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.log)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "orderId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", h.log)
		return
	}

	order, err := sess.Client.GetOrder(r.Context(), models.OrderID(id))
	if err != nil {
		writeBackendError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}
