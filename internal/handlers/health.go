package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger      *slog.Logger
	backendMode string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, backendMode string) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		backendMode: backendMode,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	BackendMode string    `json:"backendMode"`
	Version     string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		BackendMode: h.backendMode,
		Version:     "1.0.0",
	}
	WriteJSON(w, http.StatusOK, response, h.logger)
}
