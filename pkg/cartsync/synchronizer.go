package cartsync

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/goodmarket/storefront-go/pkg/apiclient"
	"github.com/goodmarket/storefront-go/pkg/logger"
	"github.com/goodmarket/storefront-go/pkg/session"
)

// Synchronizer keeps the local cart mirror consistent with the authoritative
// server copy. Each mutating operation follows the same pattern: optimistic
// local apply, remote call, then reconcile via Refresh — on the failure path
// too, so an optimistic guess is never left stranded.
//
// Concurrent mutations are not serialized by default: two rapid quantity
// updates on the same item may race, and the last Refresh to land determines
// the visible state. That matches the single-writer-eventually-consistent
// design of the protocol. WithSerializedMutations opts into a stricter FIFO
// regime instead.
type Synchronizer struct {
	client  *apiclient.Client
	session *session.Manager
	log     *slog.Logger

	mu       sync.RWMutex
	cart     *Cart
	onChange []func()

	serialize bool
	flight    sync.Mutex
}

// New creates a cart synchronizer bound to the shared API client and the
// session manager that gates every operation.
func New(client *apiclient.Client, sess *session.Manager, opts ...Option) *Synchronizer {
	if client == nil {
		panic("cartsync: api client is required")
	}
	if sess == nil {
		panic("cartsync: session manager is required")
	}

	s := &Synchronizer{
		client:  client,
		session: sess,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Cart returns a copy of the current local snapshot, or nil when absent.
func (s *Synchronizer) Cart() *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.clone()
}

// ItemCount returns the server-computed item total, zero when the cart is
// absent. Never errors, so presentation code needs no defensive checks.
func (s *Synchronizer) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems
}

// Total returns the server-computed cart total as a decimal string, "0.00"
// when the cart is absent.
func (s *Synchronizer) Total() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cart == nil {
		return "0.00"
	}
	return s.cart.Total
}

// OnChange registers a listener invoked after every local cart change.
// Register listeners during wiring, before concurrent use.
func (s *Synchronizer) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Refresh fetches the authoritative cart snapshot and replaces local state
// with it. Called after every mutating operation's remote call — the
// mutation endpoints' response bodies are not trusted as the new source of
// truth because totals are server-computed.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	epoch := s.session.Epoch()

	var resp apiclient.DataResponse[*Cart]
	if err := s.client.Get(ctx, "/api/cart", &resp); err != nil {
		return err
	}

	if !s.applyIfCurrent(epoch, resp.Data) {
		s.log.DebugContext(ctx, "discarded stale cart refresh")
	}
	return nil
}

// AddItem puts a product into the cart. Unlike the other mutations there is
// no optimistic local apply: the server assigns the item its identity, and
// fabricating one locally would be ambiguous until confirmation. Failure
// therefore only surfaces an error, with nothing to roll back.
func (s *Synchronizer) AddItem(ctx context.Context, productID string, quantity int) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if quantity < 1 {
		quantity = 1
	}

	if s.serialize {
		s.flight.Lock()
		defer s.flight.Unlock()
	}

	m := s.begin(ctx, nil)

	payload := map[string]any{"product_id": productID, "quantity": quantity}
	if err := s.client.Post(ctx, "/api/cart/items", payload, nil); err != nil {
		m.rollback(ctx)
		s.log.DebugContext(ctx, "add item failed", logger.ProductID(productID), logger.Error(err))
		return err
	}

	m.confirm(ctx)
	return s.Refresh(ctx)
}

// RemoveItem optimistically filters the item out of local state immediately,
// then issues the remove call. Both outcomes reconcile with a Refresh; on
// failure the saved snapshot is restored first, so the cart is correct even
// when the reconciling fetch cannot reach the server.
func (s *Synchronizer) RemoveItem(ctx context.Context, itemID string) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if s.serialize {
		s.flight.Lock()
		defer s.flight.Unlock()
	}

	m := s.begin(ctx, func(cart *Cart) {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	})

	if err := s.client.Delete(ctx, "/api/cart/items/"+itemID, nil); err != nil {
		s.restore(ctx, m)
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			s.log.DebugContext(ctx, "reconciling refresh failed", logger.Error(refreshErr))
		}
		return err
	}

	m.confirm(ctx)
	return s.Refresh(ctx)
}

// UpdateQuantity optimistically rewrites the item's quantity in local state.
// The item's subtotal is stale until reconciliation — an accepted, bounded
// inconsistency window. Quantities below 1 are rejected as a no-op without
// any network call.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return nil
	}
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if s.serialize {
		s.flight.Lock()
		defer s.flight.Unlock()
	}

	m := s.begin(ctx, func(cart *Cart) {
		for i := range cart.Items {
			if cart.Items[i].ID == itemID {
				cart.Items[i].Quantity = quantity
				break
			}
		}
	})

	if err := s.client.Patch(ctx, "/api/cart/items/"+itemID, map[string]any{"quantity": quantity}, nil); err != nil {
		s.restore(ctx, m)
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			s.log.DebugContext(ctx, "reconciling refresh failed", logger.Error(refreshErr))
		}
		return err
	}

	m.confirm(ctx)
	return s.Refresh(ctx)
}

// Clear optimistically empties the cart, then issues the clear call. On
// failure the snapshot is restored and a Refresh reconciles with the true
// server state.
func (s *Synchronizer) Clear(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if s.serialize {
		s.flight.Lock()
		defer s.flight.Unlock()
	}

	m := s.beginReplace(ctx, nil)

	if err := s.client.Delete(ctx, "/api/cart", nil); err != nil {
		s.restore(ctx, m)
		if refreshErr := s.Refresh(ctx); refreshErr != nil {
			s.log.DebugContext(ctx, "reconciling refresh failed", logger.Error(refreshErr))
		}
		return err
	}

	m.confirm(ctx)
	return nil
}

// Reset drops local cart state without any network call. Wired to the
// session's transition to anonymous: a logged-out session has no cart.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	s.cart = nil
	listeners := s.onChange
	s.mu.Unlock()
	s.notify(listeners)
}

// begin snapshots current state, applies the optimistic mutation in place
// (nil means no optimistic change) and starts the mutation lifecycle.
func (s *Synchronizer) begin(ctx context.Context, optimistic func(*Cart)) *mutation {
	s.mu.Lock()
	m := newMutation(s.cart.clone(), s.session.Epoch())
	if optimistic != nil && s.cart != nil {
		next := s.cart.clone()
		optimistic(next)
		s.cart = next
	}
	listeners := s.onChange
	s.mu.Unlock()

	m.apply(ctx)
	if optimistic != nil {
		s.notify(listeners)
	}
	return m
}

// beginReplace is begin for mutations that swap the whole cart pointer.
func (s *Synchronizer) beginReplace(ctx context.Context, next *Cart) *mutation {
	s.mu.Lock()
	m := newMutation(s.cart.clone(), s.session.Epoch())
	s.cart = next
	listeners := s.onChange
	s.mu.Unlock()

	m.apply(ctx)
	s.notify(listeners)
	return m
}

// restore rolls the optimistic change back to the saved snapshot — a pure
// restore, not a re-derivation. Discarded when the session moved on since
// the mutation began.
func (s *Synchronizer) restore(ctx context.Context, m *mutation) {
	m.rollback(ctx)

	s.mu.Lock()
	if s.session.Epoch() != m.epoch {
		s.mu.Unlock()
		return
	}
	s.cart = m.snapshot
	listeners := s.onChange
	s.mu.Unlock()
	s.notify(listeners)
}

// applyIfCurrent installs a fetched snapshot unless the session changed
// while the request was in flight. A refresh issued before a logout must not
// resurrect the previous session's cart.
func (s *Synchronizer) applyIfCurrent(epoch uint64, cart *Cart) bool {
	s.mu.Lock()
	if s.session.Epoch() != epoch {
		s.mu.Unlock()
		return false
	}
	s.cart = cart
	listeners := s.onChange
	s.mu.Unlock()
	s.notify(listeners)
	return true
}

func (s *Synchronizer) notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
