package checkout

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/orders"
)

// ErrEmptySelection is returned before any network call when the shipping
// address or payment method is missing.
var ErrEmptySelection = errors.New("checkout.empty_selection")

// PaymentMethod names how the order is paid. The backend validates the
// value; these constants cover the methods the storefront offers.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCashOnHand   PaymentMethod = "cash_on_delivery"
)

// Client converts the current cart into an order.
type Client struct {
	api *apiclient.Client
}

// New creates a checkout client.
func New(api *apiclient.Client) *Client {
	if api == nil {
		panic("checkout: api client is required")
	}
	return &Client{api: api}
}

// Process places an order from the current cart contents. Stock and totals
// are revalidated server-side at this point; a rejection surfaces as a
// validation error and leaves the cart untouched.
func (c *Client) Process(ctx context.Context, addressID string, method PaymentMethod) (orders.Order, error) {
	if addressID == "" || method == "" {
		return orders.Order{}, ErrEmptySelection
	}

	payload := map[string]any{
		"address_id":     addressID,
		"payment_method": string(method),
	}

	var raw json.RawMessage
	if err := c.api.Post(ctx, "/api/checkout", payload, &raw); err != nil {
		return orders.Order{}, err
	}
	return parseOrder(raw)
}

// parseOrder tolerates the envelope variants the endpoint has shipped with:
// {"data": {...}}, {"order": {...}} and a bare order object.
func parseOrder(raw json.RawMessage) (orders.Order, error) {
	var envelope struct {
		Data  *orders.Order `json:"data"`
		Order *orders.Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Data != nil && envelope.Data.ID != "" {
			return *envelope.Data, nil
		}
		if envelope.Order != nil && envelope.Order.ID != "" {
			return *envelope.Order, nil
		}
	}

	var order orders.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return orders.Order{}, err
	}
	return order, nil
}
