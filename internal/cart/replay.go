package cart

import (
	"context"
	"fmt"

	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/models"
)

// deltaApplier rewrites the remote cart to a target line list. The engine
// only depends on this narrow interface so the clear-then-replay workaround
// can be swapped for a true partial-update call if the remote contract ever
// grows one, without touching callers.
type deltaApplier interface {
	applyCartDelta(ctx context.Context, target []models.CartItem) error
}

// clearReplay is the workaround for a remote contract that only offers
// getCart/addToCart/clearCart: clear everything, then re-add the target lines
// in order. addToCart merges quantities on the remote side, so replaying each
// line exactly once reproduces the target cart.
//
// The sequence is not atomic. A failed re-add is retried in place (only the
// missing re-adds are reissued, never a second clear) and after maxAttempts
// the remainder is reported via ReplayError so the caller knows exactly which
// lines the remote cart is short of.
type clearReplay struct {
	client      backend.Client
	maxAttempts int
}

func newClearReplay(client backend.Client, maxAttempts int) *clearReplay {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &clearReplay{client: client, maxAttempts: maxAttempts}
}

// ReplayError reports a replay that cleared the remote cart but could not
// re-add every target line. Unapplied holds the lines the remote cart is
// missing, in the order they were meant to be added.
type ReplayError struct {
	Target    []models.CartItem
	Unapplied []models.CartItem
	Err       error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("cart replay incomplete: %d of %d lines not re-added: %v",
		len(e.Unapplied), len(e.Target), e.Err)
}

func (e *ReplayError) Unwrap() error { return e.Err }

func (r *clearReplay) applyCartDelta(ctx context.Context, target []models.CartItem) error {
	if err := r.client.ClearCart(ctx); err != nil {
		// Nothing re-added yet; the remote cart may or may not have been
		// cleared, the caller must refetch before trusting any view.
		return fmt.Errorf("clear cart: %w", err)
	}

	for i, line := range target {
		var err error
		for attempt := 0; attempt < r.maxAttempts; attempt++ {
			if err = r.client.AddToCart(ctx, line.ProductID, line.Quantity); err == nil {
				break
			}
		}
		if err != nil {
			return &ReplayError{
				Target:    target,
				Unapplied: target[i:],
				Err:       err,
			}
		}
	}
	return nil
}
