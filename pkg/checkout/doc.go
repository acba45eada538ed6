// Package checkout turns the current cart into an order.
//
// The conversion is a single server-side transaction: the backend
// revalidates stock, computes the authoritative total, snapshots line items
// and empties the cart. The client's only job is to send the selected
// address and payment method and hand back the resulting order.
package checkout
