package orders

import (
	"context"
	"net/url"
	"strconv"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
)

// Client reads the authenticated user's order history. Orders are immutable
// from the client's perspective, so nothing here mutates.
type Client struct {
	api *apiclient.Client
}

// New creates an order history client.
func New(api *apiclient.Client) *Client {
	if api == nil {
		panic("orders: api client is required")
	}
	return &Client{api: api}
}

// List fetches a page of the user's orders, newest first.
func (c *Client) List(ctx context.Context, filters Filters) ([]Order, *apiclient.Meta, error) {
	query := url.Values{}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filters.PerPage))
	}
	if filters.Status != "" {
		query.Set("status", string(filters.Status))
	}

	path := "/api/orders"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp apiclient.DataResponse[[]Order]
	if err := c.api.Get(ctx, path, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Data, resp.Meta, nil
}

// Get fetches a single order with its full line items.
func (c *Client) Get(ctx context.Context, id string) (Order, error) {
	var resp apiclient.DataResponse[Order]
	if err := c.api.Get(ctx, "/api/orders/"+id, &resp); err != nil {
		return Order{}, err
	}
	return resp.Data, nil
}
