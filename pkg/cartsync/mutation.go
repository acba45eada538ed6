package cartsync

import (
	"context"

	"github.com/goodmarket/storefront-go/pkg/statemachine"
)

// Mutation lifecycle states. Every mutating operation walks this machine:
// the optimistic snapshot is saved on apply, so rollback is a pure restore
// rather than a re-derivation.
const (
	mutationIdle       statemachine.State = "idle"
	mutationApplying   statemachine.State = "applying"
	mutationConfirmed  statemachine.State = "confirmed"
	mutationRolledBack statemachine.State = "rolled_back"

	eventApply    statemachine.Event = "apply"
	eventConfirm  statemachine.Event = "confirm"
	eventRollback statemachine.Event = "rollback"
)

// mutation tracks one in-flight cart operation: its lifecycle machine, the
// pre-mutation snapshot, and the session epoch observed at start.
type mutation struct {
	machine  *statemachine.Machine
	snapshot *Cart
	epoch    uint64
}

func newMutation(snapshot *Cart, epoch uint64) *mutation {
	return &mutation{
		machine: statemachine.New(mutationIdle,
			statemachine.WithTransition(mutationIdle, mutationApplying, eventApply),
			statemachine.WithTransition(mutationApplying, mutationConfirmed, eventConfirm),
			statemachine.WithTransition(mutationApplying, mutationRolledBack, eventRollback),
		),
		snapshot: snapshot,
		epoch:    epoch,
	}
}

func (m *mutation) apply(ctx context.Context) {
	_ = m.machine.Fire(ctx, eventApply)
}

func (m *mutation) confirm(ctx context.Context) {
	_ = m.machine.Fire(ctx, eventConfirm)
}

func (m *mutation) rollback(ctx context.Context) {
	_ = m.machine.Fire(ctx, eventRollback)
}
