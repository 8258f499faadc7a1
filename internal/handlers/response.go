package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/middleware"
	"github.com/mobimart/storefront/internal/session"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// sessionOr401 pulls the session installed by the auth middleware. A missing
// session means the handler is mounted outside the middleware chain.
func sessionOr401(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*session.Session, bool) {
	sess, ok := middleware.SessionFrom(r.Context())
	if !ok {
		logger.Error("no session in request context", "path", r.URL.Path)
		WriteError(w, http.StatusUnauthorized, "No session", logger)
		return nil, false
	}
	return sess, true
}

// writeBackendError maps remote contract errors onto HTTP statuses. Anything
// unrecognized is a 502: the remote collaborator failed, not this service.
func writeBackendError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, backend.ErrUnauthenticated):
		WriteError(w, http.StatusUnauthorized, "Login required", logger)
	case errors.Is(err, backend.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Admin role required", logger)
	case errors.Is(err, backend.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", logger)
	case errors.Is(err, backend.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "Order not found", logger)
	case errors.Is(err, backend.ErrEmptyCart):
		WriteError(w, http.StatusConflict, "Cart is empty", logger)
	case errors.Is(err, backend.ErrNoProfile):
		WriteError(w, http.StatusPreconditionFailed, "Profile required before checkout", logger)
	default:
		logger.Error("remote service call failed", "error", err)
		WriteError(w, http.StatusBadGateway, "Remote service unavailable", logger)
	}
}
