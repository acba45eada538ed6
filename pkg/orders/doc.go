// Package orders reads the authenticated user's purchase history.
//
// Orders are created by the checkout flow and advance through their
// lifecycle server-side; this package only lists and inspects them. Line
// items carry the product name and price captured at purchase time, so an
// order renders faithfully even after the catalog changes underneath it.
package orders
