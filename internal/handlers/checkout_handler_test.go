package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mobimart/storefront/internal/models"
)

func shippableAddress() models.DeliveryAddress {
	return models.DeliveryAddress{
		Name:   "Ayesha Khan",
		Phone:  "0300-1234567",
		Street: "14-B Gulberg III",
		City:   "Lahore",
	}
}

func TestCheckout_Succeeds(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginWithProfile(t, "user-1")

	w := env.do(t, http.MethodPost, "/api/cart/items", token, addLineRequest{ProductID: 1, Quantity: 2})
	requireStatus(t, w, http.StatusNoContent)

	w = env.do(t, http.MethodPost, "/api/checkout", token, checkoutRequest{
		DeliveryAddress: shippableAddress(),
		PaymentMethod:   models.CashOnDelivery,
	})
	requireStatus(t, w, http.StatusOK)
	resp := decodeBody[checkoutResponse](t, w)
	assert.NotZero(t, resp.OrderID)

	// The remote side consumed the cart; the next read reflects that.
	w = env.do(t, http.MethodGet, "/api/cart", token, nil)
	requireStatus(t, w, http.StatusOK)
	cart := decodeBody[cartResponse](t, w)
	assert.Empty(t, cart.Items)

	// And the order shows up in history.
	w = env.do(t, http.MethodGet, "/api/orders", token, nil)
	requireStatus(t, w, http.StatusOK)
	orders := decodeBody[[]models.Order](t, w)
	assert.Len(t, orders, 1)
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginWithProfile(t, "user-1")

	w := env.do(t, http.MethodPost, "/api/checkout", token, checkoutRequest{
		DeliveryAddress: shippableAddress(),
		PaymentMethod:   models.CashOnDelivery,
	})
	requireStatus(t, w, http.StatusConflict)
}

func TestCheckout_AnonymousRejected(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/checkout", "", checkoutRequest{
		DeliveryAddress: shippableAddress(),
		PaymentMethod:   models.CashOnDelivery,
	})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestCheckout_InvalidAddressRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.loginWithProfile(t, "user-1")

	addr := shippableAddress()
	addr.Phone = "   "
	w := env.do(t, http.MethodPost, "/api/checkout", token, checkoutRequest{
		DeliveryAddress: addr,
		PaymentMethod:   models.CashOnDelivery,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestCheckout_MissingProfileRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "user-no-profile")

	w := env.do(t, http.MethodPost, "/api/cart/items", token, addLineRequest{ProductID: 1, Quantity: 1})
	requireStatus(t, w, http.StatusNoContent)

	w = env.do(t, http.MethodPost, "/api/checkout", token, checkoutRequest{
		DeliveryAddress: shippableAddress(),
		PaymentMethod:   models.OnlineCard,
	})
	requireStatus(t, w, http.StatusPreconditionFailed)
}
