// Package storefront is a Go client SDK for the GoodMarket e-commerce
// backend. It keeps a device's session and shopping cart in sync with the
// server: credentials rotate transparently, a rejected credential forces a
// clean logout everywhere, and cart mutations apply optimistically with
// server reconciliation.
//
// The packages compose around one shared transport:
//
//   - pkg/tokenstore persists the credential and cached profile
//   - pkg/apiclient attaches credentials, captures rotations and maps errors
//   - pkg/session owns the authentication lifecycle
//   - pkg/cartsync keeps the local cart converging on the server's
//   - pkg/catalog, pkg/orders, pkg/address, pkg/checkout are thin service
//     clients over the same transport
//
// Most applications construct everything through this package:
//
//	sf, err := storefront.New(storefront.Config{
//		APIBaseURL:  "https://api.goodmarket.example",
//		StoragePath: "/home/me/.goodmarket/session.json",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	state := sf.Initialize(ctx)
//	if state == session.StateAnonymous {
//		_, err = sf.Session.Login(ctx, email, password)
//	}
//	err = sf.Cart.AddItem(ctx, productID, 1)
package storefront
