package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobimart/storefront/internal/models"
)

// stubRPC runs a remote-service stub that records the last request and
// answers every call with the given status and body.
type stubRPC struct {
	server *httptest.Server

	lastPath   string
	lastMethod string
	lastAuth   string
	lastBody   []byte

	status int
	body   string
}

func newStubRPC(t *testing.T, status int, body string) *stubRPC {
	t.Helper()
	s := &stubRPC{status: status, body: body}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastPath = r.URL.Path
		s.lastMethod = r.Method
		s.lastAuth = r.Header.Get("Authorization")
		s.lastBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func TestHTTPClient_GetCartRoundTrip(t *testing.T) {
	stub := newStubRPC(t, http.StatusOK, `{"items":[{"productId":3,"quantity":2}]}`)
	client := NewHTTPClient(stub.server.URL, "token-1", time.Second)

	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/rpc/getCart", stub.lastPath)
	assert.Equal(t, http.MethodPost, stub.lastMethod)
	assert.Equal(t, "Bearer token-1", stub.lastAuth)
	assert.Equal(t, []models.CartItem{{ProductID: 3, Quantity: 2}}, cart.Items)
}

func TestHTTPClient_AddToCartSendsArgs(t *testing.T) {
	stub := newStubRPC(t, http.StatusOK, `{}`)
	client := NewHTTPClient(stub.server.URL, "token-1", time.Second)

	require.NoError(t, client.AddToCart(context.Background(), 7, 4))

	assert.Equal(t, "/rpc/addToCart", stub.lastPath)
	assert.JSONEq(t, `{"productId":7,"quantity":4}`, string(stub.lastBody))
}

func TestHTTPClient_CheckoutRoundTrip(t *testing.T) {
	stub := newStubRPC(t, http.StatusOK, `{"orderId":42}`)
	client := NewHTTPClient(stub.server.URL, "token-1", time.Second)

	id, err := client.Checkout(context.Background(), models.DeliveryAddress{
		Name: "Ayesha Khan", Phone: "0300-1234567", Street: "14-B Gulberg III",
		City: "Lahore", Country: "Pakistan",
	}, models.CashOnDelivery)
	require.NoError(t, err)

	assert.Equal(t, "/rpc/checkout", stub.lastPath)
	assert.Equal(t, models.OrderID(42), id)
}

func TestHTTPClient_AnonymousOmitsAuthorization(t *testing.T) {
	stub := newStubRPC(t, http.StatusOK, `{"items":[]}`)
	client := NewHTTPClient(stub.server.URL, Anonymous, time.Second)

	_, err := client.GetCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stub.lastAuth)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		call   func(c *HTTPClient) error
		want   error
	}{
		{
			name:   "401 is unauthenticated",
			status: http.StatusUnauthorized,
			call: func(c *HTTPClient) error {
				_, err := c.Checkout(context.Background(), models.DeliveryAddress{}, models.CashOnDelivery)
				return err
			},
			want: ErrUnauthenticated,
		},
		{
			name:   "403 is forbidden",
			status: http.StatusForbidden,
			call: func(c *HTTPClient) error {
				return c.DeleteProduct(context.Background(), 1)
			},
			want: ErrForbidden,
		},
		{
			name:   "404 on a product lookup",
			status: http.StatusNotFound,
			call: func(c *HTTPClient) error {
				_, err := c.GetProduct(context.Background(), 99)
				return err
			},
			want: ErrProductNotFound,
		},
		{
			name:   "404 on an order lookup",
			status: http.StatusNotFound,
			call: func(c *HTTPClient) error {
				_, err := c.GetOrder(context.Background(), 99)
				return err
			},
			want: ErrOrderNotFound,
		},
		{
			name:   "412 is a missing profile",
			status: http.StatusPreconditionFailed,
			call: func(c *HTTPClient) error {
				_, err := c.Checkout(context.Background(), models.DeliveryAddress{}, models.CashOnDelivery)
				return err
			},
			want: ErrNoProfile,
		},
		{
			name:   "409 is an empty cart",
			status: http.StatusConflict,
			call: func(c *HTTPClient) error {
				_, err := c.Checkout(context.Background(), models.DeliveryAddress{}, models.CashOnDelivery)
				return err
			},
			want: ErrEmptyCart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStubRPC(t, tt.status, `{"error":"remote says no"}`)
			client := NewHTTPClient(stub.server.URL, "token-1", time.Second)

			err := tt.call(client)
			require.ErrorIs(t, err, tt.want)
			// The remote message survives for logs.
			assert.Contains(t, err.Error(), "remote says no")
		})
	}
}

func TestHTTPClient_UnmappedStatusIsNotASentinel(t *testing.T) {
	stub := newStubRPC(t, http.StatusInternalServerError, `{"error":"boom"}`)
	client := NewHTTPClient(stub.server.URL, "token-1", time.Second)

	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	for _, sentinel := range []error{
		ErrUnauthenticated, ErrForbidden, ErrProductNotFound, ErrOrderNotFound, ErrEmptyCart, ErrNoProfile,
	} {
		assert.NotErrorIs(t, err, sentinel)
	}
	assert.Contains(t, err.Error(), "boom")
}
