package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mobimart/storefront/internal/middleware"
	"github.com/mobimart/storefront/internal/models"
	"github.com/mobimart/storefront/internal/session"
)

// AccountHandler covers login/logout and the caller's role and profile.
// Identity verification itself belongs to the external identity provider;
// this handler only binds a verified identity to a session token.
type AccountHandler struct {
	store  *session.Store
	logger *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(store *session.Store, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{store: store, logger: logger}
}

type loginRequest struct {
	Identity string `json:"identity"`
}

type loginResponse struct {
	Token string          `json:"token"`
	Role  models.UserRole `json:"role"`
}

// Login handles POST /api/session: issues a session token for an identity
// asserted by the identity provider. Session state is warmed concurrently;
// a warmup failure is logged but does not fail the login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	identity := strings.TrimSpace(req.Identity)
	if identity == "" {
		WriteError(w, http.StatusBadRequest, "Identity is required", h.logger)
		return
	}

	sess := h.store.Create(identity)
	if err := sess.Warmup(r.Context()); err != nil {
		h.logger.Warn("session warmup failed", "error", err)
	}

	role := sess.Account.Role(r.Context())
	h.logger.Info("session created", "role", role)
	WriteJSON(w, http.StatusOK, loginResponse{Token: sess.Token, Role: role}, h.logger)
}

// Logout handles DELETE /api/session.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := r.Header.Get(middleware.SessionHeader); token != "" {
		h.store.Delete(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	Role    models.UserRole     `json:"role"`
	Admin   bool                `json:"admin"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

// Me handles GET /api/me: the caller's role, admin flag and saved profile,
// if any.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := sess.Account.Profile(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	admin, err := sess.Account.IsAdmin(r.Context())
	if err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, meResponse{
		Role:    sess.Account.Role(r.Context()),
		Admin:   admin,
		Profile: profile,
	}, h.logger)
}

// SaveProfile handles PUT /api/me/profile. Checkout requires a profile, so
// the presentation layer calls this from its profile-setup step.
func (h *AccountHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOr401(w, r, h.logger)
	if !ok {
		return
	}
	if sess.Anonymous() {
		WriteError(w, http.StatusUnauthorized, "Login required", h.logger)
		return
	}

	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if strings.TrimSpace(profile.Name) == "" {
		WriteError(w, http.StatusBadRequest, "Profile name is required", h.logger)
		return
	}

	if err := sess.Account.SaveProfile(r.Context(), profile); err != nil {
		writeBackendError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
