// Package cart implements the cart reconciliation engine: a locally
// consistent view of the caller's remote cart, and single-line quantity
// mutations on top of a remote contract that only supports get, add and
// clear. Single-line changes are realized by clearing the remote cart and
// replaying every retained line, target line last.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/catalog"
	"github.com/mobimart/storefront/internal/models"
)

var (
	// ErrNegativeQuantity rejects SetLineQuantity below zero before any
	// remote call is made.
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrInvalidQuantity rejects AddLine and ReplaceCart lines with a
	// quantity below one.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Engine reconciles one session's cart. Mutations are serialized by the cart
// owner's mutex: a second mutation waits for the first to settle, because
// interleaved clear/add sequences would corrupt the remote cart. The remote
// cart belongs to an identity, not a session, so every engine bound to the
// same identity must be handed the same mutex. Reads always refetch from the
// remote service; the engine keeps no cart mirror, so concurrent mutations
// from other sessions are picked up on the next read.
type Engine struct {
	client  backend.Client
	catalog *catalog.Service
	applier deltaApplier

	mu *sync.Mutex
}

// NewEngine creates a reconciliation engine for one session. mu is the cart
// owner's mutation lock, shared across all sessions of that identity.
func NewEngine(client backend.Client, cat *catalog.Service, mu *sync.Mutex) *Engine {
	return &Engine{
		client:  client,
		catalog: cat,
		applier: newClearReplay(client, 3),
		mu:      mu,
	}
}

// EnrichedCart fetches the authoritative cart and joins each line against
// the product catalog. A line whose product no longer exists is retained
// with a nil Product so callers can render it as unavailable.
func (e *Engine) EnrichedCart(ctx context.Context) (models.EnrichedCart, error) {
	cart, err := e.client.GetCart(ctx)
	if err != nil {
		return models.EnrichedCart{}, err
	}

	items := make([]models.EnrichedCartItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		p, err := e.catalog.Product(ctx, line.ProductID)
		if err != nil {
			return models.EnrichedCart{}, err
		}
		items = append(items, models.EnrichedCartItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Product:   p,
		})
	}
	return models.EnrichedCart{Items: items}, nil
}

// SetLineQuantity replaces the quantity of one line, removing it when
// quantity is zero. All other lines keep their original quantities and
// order. The remote contract has no single-line mutation, so the change is
// applied by clear-then-replay; a mid-replay failure leaves the remote cart
// short and is reported as a ReplayError.
func (e *Engine) SetLineQuantity(ctx context.Context, productID models.ProductID, quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	cart, err := e.client.GetCart(ctx)
	if err != nil {
		return err
	}

	_, present := cart.Find(productID)
	if quantity == 0 && !present {
		// Removal of an absent line: already the target state, skip the
		// replay so repeats never open a clear window.
		return nil
	}

	target := make([]models.CartItem, 0, len(cart.Items)+1)
	for _, line := range cart.Items {
		if line.ProductID != productID {
			target = append(target, line)
		}
	}
	if quantity > 0 {
		target = append(target, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	// Once the clear has been issued the sequence must run to completion;
	// cancelling mid-replay would leave ambiguous remote state.
	return e.applier.applyCartDelta(context.WithoutCancel(ctx), target)
}

// ReplaceCart rewrites the whole cart to the given lines using the same
// clear-then-replay strategy. Zero-quantity lines are dropped, duplicate
// product ids are merged by summing, and negative quantities are rejected.
func (e *Engine) ReplaceCart(ctx context.Context, items []models.CartItem) error {
	target := make([]models.CartItem, 0, len(items))
	index := make(map[models.ProductID]int, len(items))
	for _, line := range items {
		if line.Quantity < 0 {
			return ErrInvalidQuantity
		}
		if line.Quantity == 0 {
			continue
		}
		if i, ok := index[line.ProductID]; ok {
			target[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(target)
		target = append(target, line)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return e.applier.applyCartDelta(context.WithoutCancel(ctx), target)
}

// AddLine adds quantity units of a product with a single remote call. The
// remote service merges repeated adds for the same product by incrementing
// the existing line, so no replay is needed.
func (e *Engine) AddLine(ctx context.Context, productID models.ProductID, quantity int64) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.client.AddToCart(ctx, productID, quantity)
}

// Clear empties the remote cart.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.client.ClearCart(ctx)
}
