package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobimart/storefront/internal/models"
)

func TestLogin_IssuesToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/session", "", loginRequest{Identity: "user-1"})
	requireStatus(t, w, http.StatusOK)
	resp := decodeBody[loginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleUser, resp.Role)
}

func TestLogin_BlankIdentityRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/session", "", loginRequest{Identity: "   "})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user-1")

	w := env.do(t, http.MethodDelete, "/api/session", token, nil)
	requireStatus(t, w, http.StatusNoContent)

	w = env.do(t, http.MethodGet, "/api/cart", token, nil)
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestMe_AnonymousIsGuestWithoutProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/me", "", nil)
	requireStatus(t, w, http.StatusOK)
	resp := decodeBody[meResponse](t, w)
	assert.Equal(t, models.RoleGuest, resp.Role)
	assert.False(t, resp.Admin)
	assert.Nil(t, resp.Profile)
}

func TestMe_AdminFlagFollowsClaim(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user-1")

	w := env.do(t, http.MethodPost, "/api/admin/claim", token, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/me", token, nil)
	requireStatus(t, w, http.StatusOK)
	resp := decodeBody[meResponse](t, w)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.True(t, resp.Admin)
}

func TestSaveProfile_RoundTrips(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user-1")

	profile := models.UserProfile{Name: "Ayesha Khan", Email: "ayesha@example.com", Phone: "0300-1234567"}
	w := env.do(t, http.MethodPut, "/api/me/profile", token, profile)
	requireStatus(t, w, http.StatusNoContent)

	w = env.do(t, http.MethodGet, "/api/me", token, nil)
	requireStatus(t, w, http.StatusOK)
	resp := decodeBody[meResponse](t, w)
	if assert.NotNil(t, resp.Profile) {
		assert.Equal(t, profile, *resp.Profile)
	}
}

func TestSaveProfile_AnonymousRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/me/profile", "", models.UserProfile{Name: "X"})
	requireStatus(t, w, http.StatusUnauthorized)
}
