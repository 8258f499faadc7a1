package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobimart/storefront/internal/checkout"
	"github.com/mobimart/storefront/internal/models"
)

// CheckoutHandler drives the checkout orchestrator.
type CheckoutHandler struct {
	logger *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

type checkoutRequest struct {
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod"`
}

type checkoutResponse struct {
	OrderID models.OrderID `json:"orderId"`
}

// PlaceOrder handles POST /api/checkout:
// - 200: order created, cart consumed remotely
// - 400: invalid address or payment method (no remote call made)
// - 401: anonymous caller
// - 409: empty cart
// - 412: no saved profile
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}
	if sess.Anonymous() {
		WriteError(w, http.StatusUnauthorized, "Login required to checkout", h.logger)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	orderID, err := sess.Checkout.PlaceOrder(r.Context(), req.DeliveryAddress, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidAddress):
			WriteError(w, http.StatusBadRequest, "Name, phone, street and city are required", h.logger)
		case errors.Is(err, checkout.ErrInvalidPaymentMethod):
			WriteError(w, http.StatusBadRequest, "Unsupported payment method", h.logger)
		case errors.Is(err, checkout.ErrProfileRequired):
			WriteError(w, http.StatusPreconditionFailed, "Profile required before checkout", h.logger)
		default:
			writeBackendError(w, err, h.logger)
		}
		return
	}

	h.logger.Info("order placed", "orderId", orderID, "paymentMethod", req.PaymentMethod)
	WriteJSON(w, http.StatusOK, checkoutResponse{OrderID: orderID}, h.logger)
}
