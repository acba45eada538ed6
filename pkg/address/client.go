package address

import (
	"context"
	"errors"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
)

// ErrInvalidInput wraps client-side validation failures, reported before any
// network call. Inspect the per-field details with validator.Extract.
var ErrInvalidInput = errors.New("address.invalid_input")

// Client manages the authenticated user's address book.
type Client struct {
	api *apiclient.Client
}

// New creates an address book client.
func New(api *apiclient.Client) *Client {
	if api == nil {
		panic("address: api client is required")
	}
	return &Client{api: api}
}

// List fetches all of the user's saved addresses.
func (c *Client) List(ctx context.Context) ([]Address, error) {
	var resp apiclient.DataResponse[[]Address]
	if err := c.api.Get(ctx, "/api/addresses", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Create saves a new address and returns it with its server-assigned ID.
func (c *Client) Create(ctx context.Context, input Input) (Address, error) {
	if err := input.validate(); err != nil {
		return Address{}, err
	}

	var resp apiclient.DataResponse[Address]
	if err := c.api.Post(ctx, "/api/addresses", map[string]any{"address": input}, &resp); err != nil {
		return Address{}, err
	}
	return resp.Data, nil
}

// Update rewrites an existing address.
func (c *Client) Update(ctx context.Context, id string, input Input) (Address, error) {
	if err := input.validate(); err != nil {
		return Address{}, err
	}

	var resp apiclient.DataResponse[Address]
	if err := c.api.Patch(ctx, "/api/addresses/"+id, map[string]any{"address": input}, &resp); err != nil {
		return Address{}, err
	}
	return resp.Data, nil
}

// Delete removes an address from the user's address book.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/api/addresses/"+id, nil)
}
