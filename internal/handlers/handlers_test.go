package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/middleware"
	"github.com/mobimart/storefront/internal/models"
	"github.com/mobimart/storefront/internal/session"
	"github.com/mobimart/storefront/pkg/logger"
)

// testEnv mounts the full API surface over a seeded in-memory backend, the
// way cmd/server wires it.
type testEnv struct {
	router *chi.Mux
	store  *session.Store
	mem    *backend.Memory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New("error")
	mem := backend.NewMemoryWithSeed()
	store := session.NewStore(mem.ForIdentity, 0)

	productHandler := NewProductHandler(log)
	cartHandler := NewCartHandler(log)
	checkoutHandler := NewCheckoutHandler(log)
	orderHandler := NewOrderHandler(log)
	accountHandler := NewAccountHandler(store, log)
	adminHandler := NewAdminHandler(log)

	r := chi.NewRouter()
	r.Post("/api/session", accountHandler.Login)
	r.Delete("/api/session", accountHandler.Logout)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SessionAuth(store))
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/cart", cartHandler.GetCart)
		r.Put("/cart", cartHandler.ReplaceCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddLine)
		r.Put("/cart/items/{productId}", cartHandler.SetLineQuantity)
		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{orderId}", orderHandler.GetOrder)
		r.Get("/me", accountHandler.Me)
		r.Put("/me/profile", accountHandler.SaveProfile)
		r.Post("/admin/claim", adminHandler.ClaimAdmin)
		r.Post("/admin/transfer", adminHandler.TransferAdmin)
		r.Post("/admin/product", adminHandler.AddProduct)
		r.Put("/admin/product/{productId}", adminHandler.UpdateProduct)
		r.Delete("/admin/product/{productId}", adminHandler.DeleteProduct)
	})

	return &testEnv{router: r, store: store, mem: mem}
}

// login issues a session token for the given identity.
func (e *testEnv) login(t *testing.T, identity string) string {
	t.Helper()
	return e.store.Create(identity).Token
}

// loginWithProfile issues a session and saves a profile so the identity can
// check out.
func (e *testEnv) loginWithProfile(t *testing.T, identity string) string {
	t.Helper()
	err := e.mem.ForIdentity(identity).SaveCallerUserProfile(context.Background(), models.UserProfile{
		Name: "Ayesha Khan", Email: "ayesha@example.com", Phone: "0300-1234567",
	})
	require.NoError(t, err)
	return e.login(t, identity)
}

// do performs a request against the test router.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set(middleware.SessionHeader, token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
