// Package apiclient is the shared HTTP transport for the storefront SDK.
// Every service client (session, cart, catalog, orders, ...) issues its
// calls through one Client instance, which centralizes the three
// cross-cutting rules of the session protocol:
//
//   - the current credential is attached to every outgoing request when one
//     exists; its absence never blocks a request (some endpoints are public)
//   - every completed response is inspected for a rotated Authorization
//     header, which is persisted unconditionally — rotation is never missed
//   - a 401 on a request that carried a credential fires the registered
//     UnauthorizedHook, the single point of truth for session expiry
//
// Failures are reported through a small typed taxonomy (ErrInvalidCredentials,
// ErrSessionExpired, ErrValidationRejected, ErrNotFound, ErrTransient, ...)
// joined with an *APIError carrying the HTTP detail, so callers branch with
// errors.Is and drill in with errors.As.
//
// # Usage
//
//	store := tokenstore.NewMemoryStore()
//	client := apiclient.New("https://api.goodmarket.test", store,
//	    apiclient.WithLogger(log),
//	)
//
//	var resp apiclient.DataResponse[Cart]
//	if err := client.Get(ctx, "/api/cart", &resp); err != nil {
//	    if errors.Is(err, apiclient.ErrSessionExpired) {
//	        // the UnauthorizedHook has already fired
//	    }
//	}
package apiclient
