// Package backend defines the RPC contract of the remote catalog/order
// service and provides two implementations: an HTTP/JSON client for a real
// deployment and an in-memory service for local development and tests.
//
// All durable state (products, carts, orders, roles, profiles) lives behind
// this contract, keyed by caller identity. The storefront never persists any
// of it beyond request-scoped caches.
package backend

import (
	"context"
	"errors"

	"github.com/mobimart/storefront/internal/models"
)

var (
	// ErrUnauthenticated is returned for operations that require a signed-in
	// caller when the caller is anonymous.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrEmptyCart is returned by Checkout when the caller's cart is empty.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoProfile is returned by Checkout when the caller has no saved profile.
	ErrNoProfile = errors.New("caller has no saved profile")

	// ErrProductNotFound is returned when a product id does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when an order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrForbidden is returned for admin operations issued by non-admins.
	ErrForbidden = errors.New("operation requires admin role")
)

// Client is the remote service contract. One Client instance is bound to one
// caller identity; the remote side resolves carts, orders, roles and profiles
// from that identity.
//
// AddToCart merges: adding a productId that already has a line increments the
// existing quantity rather than overwriting it. The cart reconciliation
// engine's replay depends on this.
type Client interface {
	// Cart.
	GetCart(ctx context.Context) (models.Cart, error)
	AddToCart(ctx context.Context, productID models.ProductID, quantity int64) error
	ClearCart(ctx context.Context) error

	// Checkout and orders.
	Checkout(ctx context.Context, address models.DeliveryAddress, method models.PaymentMethod) (models.OrderID, error)
	GetUserOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id models.OrderID) (models.Order, error)

	// Catalog.
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id models.ProductID) (*models.Product, error)
	AddProduct(ctx context.Context, p models.Product) (models.ProductID, error)
	UpdateProduct(ctx context.Context, id models.ProductID, p models.Product) error
	DeleteProduct(ctx context.Context, id models.ProductID) error

	// Identity.
	GetCallerUserRole(ctx context.Context) (models.UserRole, error)
	GetCallerUserProfile(ctx context.Context) (*models.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile models.UserProfile) error
	IsCallerAdmin(ctx context.Context) (bool, error)

	// Admin bootstrap. Results are domain values, not errors.
	ClaimAdminRole(ctx context.Context) (models.ClaimAdminResult, error)
	TransferAdminRole(ctx context.Context) (models.TransferAdminResult, error)
}
