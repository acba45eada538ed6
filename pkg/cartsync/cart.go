package cartsync

import (
	"time"

	"github.com/goodmarket/storefront-go/pkg/catalog"
)

// Cart is the server-owned aggregate snapshot mirrored locally. Totals and
// subtotals are computed by the server; the client never derives them, it
// only trusts the latest snapshot it fetched.
type Cart struct {
	ID         string     `json:"id"`
	Total      string     `json:"total"`
	TotalItems int        `json:"total_items"`
	Items      []CartItem `json:"cart_items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CartItem is one line of the cart, with the server-computed subtotal and an
// optional embedded product snapshot for display.
type CartItem struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Subtotal  string           `json:"subtotal"`
	Product   *catalog.Product `json:"product,omitempty"`
}

// clone produces an independent copy so optimistic mutations never alias the
// snapshot kept for rollback.
func (c *Cart) clone() *Cart {
	if c == nil {
		return nil
	}
	dup := *c
	dup.Items = make([]CartItem, len(c.Items))
	copy(dup.Items, c.Items)
	return &dup
}
