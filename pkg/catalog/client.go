package catalog

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/cache"
)

// Client reads the product catalog and manages a seller's own products.
// Single-product and category lookups go through a read-through LRU cache;
// listings always hit the backend because filters and pagination make their
// result space too wide to cache usefully.
type Client struct {
	api        *apiclient.Client
	products   *cache.LRUCache[string, Product]
	categories *cache.LRUCache[string, []Category]
}

const categoriesKey = "all"

// New creates a catalog client. Cached entries live for five minutes, a
// window in which stale stock counts are acceptable: the checkout endpoint
// revalidates stock authoritatively anyway.
func New(api *apiclient.Client, opts ...Option) *Client {
	if api == nil {
		panic("catalog: api client is required")
	}

	c := &Client{
		api:        api,
		products:   cache.NewLRUCache[string, Product](256, 5*time.Minute),
		categories: cache.NewLRUCache[string, []Category](1, 5*time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListProducts fetches a page of products matching the given filters.
func (c *Client) ListProducts(ctx context.Context, params ListParams) ([]Product, *apiclient.Meta, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.CategoryID != "" {
		query.Set("category_id", params.CategoryID)
	}

	path := "/api/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp apiclient.DataResponse[[]Product]
	if err := c.api.Get(ctx, path, &resp); err != nil {
		return nil, nil, err
	}

	for _, p := range resp.Data {
		c.products.Put(p.ID, p)
	}
	return resp.Data, resp.Meta, nil
}

// GetProduct fetches one product, served from cache when fresh.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	if p, ok := c.products.Get(id); ok {
		return p, nil
	}

	var resp apiclient.DataResponse[Product]
	if err := c.api.Get(ctx, "/api/products/"+id, &resp); err != nil {
		return Product{}, err
	}

	c.products.Put(id, resp.Data)
	return resp.Data, nil
}

// ListCategories fetches all categories, served from cache when fresh.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	if cats, ok := c.categories.Get(categoriesKey); ok {
		return cats, nil
	}

	var resp apiclient.DataResponse[[]Category]
	if err := c.api.Get(ctx, "/api/categories", &resp); err != nil {
		return nil, err
	}

	c.categories.Put(categoriesKey, resp.Data)
	return resp.Data, nil
}

// CreateProduct creates a product owned by the authenticated seller.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	var resp apiclient.DataResponse[Product]
	if err := c.api.Post(ctx, "/api/products", map[string]any{"product": input}, &resp); err != nil {
		return Product{}, err
	}

	c.products.Put(resp.Data.ID, resp.Data)
	return resp.Data, nil
}

// UpdateProduct patches a product the authenticated seller owns.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	var resp apiclient.DataResponse[Product]
	if err := c.api.Patch(ctx, "/api/products/"+id, map[string]any{"product": input}, &resp); err != nil {
		return Product{}, err
	}

	c.products.Put(id, resp.Data)
	return resp.Data, nil
}

// DeleteProduct removes a product the authenticated seller owns.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/api/products/"+id, nil); err != nil {
		return err
	}

	c.products.Remove(id)
	return nil
}
