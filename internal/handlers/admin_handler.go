package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mobimart/storefront/internal/models"
)

// AdminHandler covers the admin bootstrap flows and catalog mutations.
// Authorization is enforced by the remote service; this layer translates
// outcomes. Claim and transfer return closed result enums, and every case is
// branched explicitly rather than collapsed into a generic error.
type AdminHandler struct {
	logger *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger) *AdminHandler {
	return &AdminHandler{logger: logger}
}

type adminResultResponse struct {
	Result string `json:"result"`
}

// ClaimAdmin handles POST /api/admin/claim.
func (h *AdminHandler) ClaimAdmin(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	result, err := sess.Account.ClaimAdmin(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}

	switch result {
	case models.ClaimSuccess:
		h.logger.Info("admin role claimed")
		WriteJSON(w, http.StatusOK, adminResultResponse{Result: string(result)}, h.logger)
	case models.ClaimAlreadyExists:
		WriteJSON(w, http.StatusConflict, adminResultResponse{Result: string(result)}, h.logger)
	case models.ClaimAnonymousCaller:
		WriteJSON(w, http.StatusUnauthorized, adminResultResponse{Result: string(result)}, h.logger)
	default:
		h.logger.Error("unknown claim result", "result", result)
		WriteError(w, http.StatusBadGateway, "Unknown claim result", h.logger)
	}
}

// TransferAdmin handles POST /api/admin/transfer.
func (h *AdminHandler) TransferAdmin(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	result, err := sess.Account.TransferAdmin(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}

	switch result {
	case models.TransferSuccess:
		h.logger.Info("admin role transferred")
		WriteJSON(w, http.StatusOK, adminResultResponse{Result: string(result)}, h.logger)
	case models.TransferAnonymousCaller:
		WriteJSON(w, http.StatusUnauthorized, adminResultResponse{Result: string(result)}, h.logger)
	case models.TransferAuthenticationError:
		WriteJSON(w, http.StatusForbidden, adminResultResponse{Result: string(result)}, h.logger)
	default:
		h.logger.Error("unknown transfer result", "result", result)
		WriteError(w, http.StatusBadGateway, "Unknown transfer result", h.logger)
	}
}

type productIDResponse struct {
	ProductID models.ProductID `json:"productId"`
}

// AddProduct handles POST /api/admin/product.
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	id, err := sess.Catalog.AddProduct(r.Context(), p)
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	h.logger.Info("product added", "productId", id, "name", p.Name)
	WriteJSON(w, http.StatusCreated, productIDResponse{ProductID: id}, h.logger)
}

// UpdateProduct handles PUT /api/admin/product/{productId}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := parseProductID(w, r, h.logger)
	if !ok {
		return
	}

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := sess.Catalog.UpdateProduct(r.Context(), id, p); err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	h.logger.Info("product updated", "productId", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/admin/product/{productId}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := parseProductID(w, r, h.logger)
	if !ok {
		return
	}

	if err := sess.Catalog.DeleteProduct(r.Context(), id); err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	h.logger.Info("product deleted", "productId", id)
	w.WriteHeader(http.StatusNoContent)
}
