package catalog

import "time"

// Status describes a product's visibility in the storefront.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Product as returned by the backend. Price is a decimal string; the client
// never does money arithmetic on it.
type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Stock       int            `json:"stock"`
	Status      Status         `json:"status"`
	Images      []ProductImage `json:"images,omitempty"`
	CategoryIDs []string       `json:"category_ids,omitempty"`
	SellerID    string         `json:"seller_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ProductImage is an uploaded image attached to a product.
type ProductImage struct {
	ID       int    `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Category groups products for browsing and filtering.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListParams narrows a product listing. Zero values are omitted from the
// request.
type ListParams struct {
	Page       int
	PerPage    int
	Search     string
	CategoryID string
}

// ProductInput carries the writable product fields for seller management.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	Status      Status   `json:"status,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}
