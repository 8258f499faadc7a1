package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobimart/storefront/internal/cart"
	"github.com/mobimart/storefront/internal/checkout"
	"github.com/mobimart/storefront/internal/models"
	"github.com/mobimart/storefront/internal/money"
)

// CartHandler exposes the cart reconciliation engine over HTTP.
type CartHandler struct {
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(logger *slog.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// cartResponse is the enriched cart plus derived totals for display.
type cartResponse struct {
	Items          []models.EnrichedCartItem `json:"items"`
	Count          int64                     `json:"count"`
	TotalPKR       int64                     `json:"totalPkr"`
	TotalFormatted string                    `json:"totalFormatted"`
}

func buildCartResponse(c models.EnrichedCart) cartResponse {
	var count int64
	for _, it := range c.Items {
		count += it.Quantity
	}
	total := checkout.Total(c)
	return cartResponse{
		Items:          c.Items,
		Count:          count,
		TotalPKR:       total,
		TotalFormatted: money.FormatPKR(total),
	}
}

// GetCart handles GET /api/cart: the authoritative cart joined with product
// snapshots. Lines whose product was deleted come back with a null product.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	enriched, err := sess.Cart.EnrichedCart(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, buildCartResponse(enriched), h.logger)
}

type addLineRequest struct {
	ProductID models.ProductID `json:"productId"`
	Quantity  int64            `json:"quantity"`
}

// AddLine handles POST /api/cart/items: adds quantity units of a product.
// A repeated add for the same product increments the existing line.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := sess.Cart.AddLine(r.Context(), req.ProductID, req.Quantity); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.logger.Info("cart line added", "productId", req.ProductID, "quantity", req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}

type setQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// SetLineQuantity handles PUT /api/cart/items/{productId}: replaces the
// line's quantity, removing the line when quantity is zero.
func (h *CartHandler) SetLineQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := parseProductID(w, r, h.logger)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := sess.Cart.SetLineQuantity(r.Context(), id, req.Quantity); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.logger.Info("cart line updated", "productId", id, "quantity", req.Quantity)
	w.WriteHeader(http.StatusNoContent)
}

type replaceCartRequest struct {
	Items []models.CartItem `json:"items"`
}

// ReplaceCart handles PUT /api/cart: rewrites the whole cart to the given
// line list, for bulk operations such as "reorder".
func (h *CartHandler) ReplaceCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	var req replaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := sess.Cart.ReplaceCart(r.Context(), req.Items); err != nil {
		h.writeCartError(w, err)
		return
	}
	h.logger.Info("cart replaced", "lines", len(req.Items))
	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /api/cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	if err := sess.Cart.Clear(r.Context()); err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCartError distinguishes local validation failures, partial replay
// failures, and remote errors. A partial replay is reported explicitly so
// the client knows to refetch before trusting displayed totals.
func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	var replayErr *cart.ReplayError
	switch {
	case errors.Is(err, cart.ErrNegativeQuantity), errors.Is(err, cart.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
	case errors.As(err, &replayErr):
		h.logger.Error("cart replay incomplete",
			"unapplied", len(replayErr.Unapplied),
			"target", len(replayErr.Target),
			"error", replayErr.Err,
		)
		WriteError(w, http.StatusBadGateway, "Cart update incomplete; refresh your cart", h.logger)
	default:
		writeBackendError(w, err, h.logger)
	}
}
