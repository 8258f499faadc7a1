// Package checkout gates order submission on a valid delivery address and a
// selected payment method, then performs exactly one remote checkout call.
// It also owns the pure order-total computation over an enriched cart.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/models"
)

// DefaultCountry fills the address country when the caller leaves it blank.
const DefaultCountry = "Pakistan"

var (
	// ErrInvalidAddress rejects PlaceOrder before any remote call when a
	// required address field is blank.
	ErrInvalidAddress = errors.New("delivery address is missing required fields")

	// ErrInvalidPaymentMethod rejects an unknown payment method locally.
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")

	// ErrProfileRequired is returned when the caller has no saved profile.
	ErrProfileRequired = errors.New("a saved profile is required to place an order")
)

// Orchestrator performs the checkout flow for one session.
type Orchestrator struct {
	client backend.Client
}

// NewOrchestrator creates a checkout orchestrator for one session.
func NewOrchestrator(client backend.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// ValidateAddress reports whether the address can be shipped to: name,
// phone, street and city must all be non-blank after trimming whitespace.
// Postal code and country are never required.
func ValidateAddress(addr models.DeliveryAddress) bool {
	required := []string{addr.Name, addr.Phone, addr.Street, addr.City}
	for _, f := range required {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// PlaceOrder validates locally, confirms the caller has a saved profile, and
// issues the single remote checkout call. On success the remote service has
// consumed the cart; callers must refetch rather than assume emptiness. On
// any failure no order exists and the cart is untouched.
func (o *Orchestrator) PlaceOrder(ctx context.Context, addr models.DeliveryAddress, method models.PaymentMethod) (models.OrderID, error) {
	if !ValidateAddress(addr) {
		return 0, ErrInvalidAddress
	}
	if !method.Valid() {
		return 0, ErrInvalidPaymentMethod
	}
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = DefaultCountry
	}

	profile, err := o.client.GetCallerUserProfile(ctx)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, ErrProfileRequired
	}

	return o.client.Checkout(ctx, addr, method)
}

// Total sums price times quantity over lines whose product resolved. A line
// with a deleted product contributes zero but remains in the cart view, so a
// user sees the unavailable line instead of being silently undercharged.
func Total(cart models.EnrichedCart) int64 {
	var total int64
	for _, line := range cart.Items {
		if line.Product == nil {
			continue
		}
		total += line.Product.PricePKR * line.Quantity
	}
	return total
}
