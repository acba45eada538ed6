// Package address manages the authenticated user's saved shipping and
// billing addresses, the destinations the checkout flow selects from.
package address
