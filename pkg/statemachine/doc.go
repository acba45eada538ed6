// Package statemachine provides a minimal finite state machine used to track
// per-operation lifecycles, such as the optimistic-mutation flow in the cart
// synchronizer (Idle → Applying → Confirmed | RolledBack).
//
// States and events are plain strings, the transition table is declared at
// construction time, and optional actions run before each state change —
// any action error aborts the transition.
//
// # Usage
//
//	m := statemachine.New("idle",
//	    statemachine.WithTransition("idle", "applying", "apply"),
//	    statemachine.WithTransition("applying", "confirmed", "confirm"),
//	    statemachine.WithTransition("applying", "rolled_back", "rollback"),
//	)
//
//	_ = m.Fire(ctx, "apply")
//	m.Is("applying") // true
package statemachine
