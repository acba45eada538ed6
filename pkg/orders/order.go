package orders

import "time"

// Status is the lifecycle stage of a placed order. Transitions happen
// server-side; the client only reads them.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is a finalized purchase. Monetary amounts arrive as decimal strings
// and are passed through untouched.
type Order struct {
	ID        string      `json:"id"`
	Status    Status      `json:"status"`
	Total     string      `json:"total"`
	Items     []OrderItem `json:"order_items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is a line captured at purchase time. ProductName and
// PriceAtPurchase are denormalized copies: later catalog edits must not
// rewrite purchase history.
type OrderItem struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"price_at_purchase"`
	Subtotal        string `json:"subtotal"`
}

// Filters narrows an order listing. Zero values mean no constraint.
type Filters struct {
	Page    int
	PerPage int
	Status  Status
}
