package models

// CartItem is one line of a cart: a product reference and a quantity.
// Quantity zero means "absent": the remote service never stores zero-quantity
// lines and the reconciliation engine removes rather than stores them.
type CartItem struct {
	ProductID ProductID `json:"productId"`
	Quantity  int64     `json:"quantity"`
}

// Cart is the caller's cart as held by the remote service. Items are unique
// by ProductID; line order is preserved as returned but carries no meaning.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Find returns the line for the given product and whether it exists.
func (c Cart) Find(id ProductID) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == id {
			return it, true
		}
	}
	return CartItem{}, false
}

// Count returns the total number of units across all lines.
func (c Cart) Count() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// EnrichedCartItem is a cart line joined with a snapshot of its product at
// read time. Product is nil when the underlying product has been deleted;
// such a line is still listed (rendered as unavailable) but cannot be priced.
type EnrichedCartItem struct {
	ProductID ProductID `json:"productId"`
	Quantity  int64     `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

// EnrichedCart is a display view of a cart, never persisted.
type EnrichedCart struct {
	Items []EnrichedCartItem `json:"items"`
}
