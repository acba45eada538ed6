// Package cartsync owns the locally mirrored shopping cart and keeps it
// consistent with the authoritative server copy across latency, failures and
// rapid user actions.
//
// Every mutating operation follows the same protocol:
//
//	optimistic local apply → remote call → Refresh (reconcile) or rollback
//
// The pre-mutation snapshot is saved when the optimistic change applies, so
// rollback is a pure restore. Both the success and failure branches end in a
// Refresh: the server computes all totals and subtotals, and the freshly
// fetched snapshot — never the mutation response body — is the only source
// of truth. An optimistic guess is therefore never left stranded.
//
// AddItem is deliberately asymmetric: it applies no optimistic change,
// because the server assigns the new item its identity and a fabricated
// local ID would be ambiguous until confirmed.
//
// Cart existence is gated by the session. Operations against an anonymous
// session fail with ErrNotAuthenticated before any network call, and
// responses that land after the session has changed (logout during an
// in-flight call) are discarded rather than applied.
//
// Derived values never error: ItemCount is 0 and Total is "0.00" when the
// cart is absent, so presentation code needs no defensive null checks.
//
// # Usage
//
//	cart := cartsync.New(client, sess)
//	sess.OnTransition(func(s session.State) {
//	    if s == session.StateAnonymous {
//	        cart.Reset()
//	    }
//	})
//
//	if err := cart.AddItem(ctx, productID, 1); err != nil {
//	    // surface a notification; state is already reconciled
//	}
package cartsync
