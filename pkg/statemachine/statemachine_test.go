package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodmarket/storefront-go/pkg/statemachine"
)

const (
	idle       statemachine.State = "idle"
	applying   statemachine.State = "applying"
	confirmed  statemachine.State = "confirmed"
	rolledBack statemachine.State = "rolled_back"

	apply    statemachine.Event = "apply"
	confirm  statemachine.Event = "confirm"
	rollback statemachine.Event = "rollback"
)

func newMutationMachine(actions ...statemachine.Action) *statemachine.Machine {
	return statemachine.New(idle,
		statemachine.WithTransition(idle, applying, apply, actions...),
		statemachine.WithTransition(applying, confirmed, confirm),
		statemachine.WithTransition(applying, rolledBack, rollback),
	)
}

func TestMachine_Fire(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		m := newMutationMachine()
		assert.True(t, m.Is(idle))

		require.NoError(t, m.Fire(ctx, apply))
		assert.Equal(t, applying, m.Current())

		require.NoError(t, m.Fire(ctx, confirm))
		assert.Equal(t, confirmed, m.Current())
	})

	t.Run("rollback path", func(t *testing.T) {
		m := newMutationMachine()
		require.NoError(t, m.Fire(ctx, apply))
		require.NoError(t, m.Fire(ctx, rollback))
		assert.Equal(t, rolledBack, m.Current())
	})

	t.Run("undefined transition fails without state change", func(t *testing.T) {
		m := newMutationMachine()

		err := m.Fire(ctx, confirm)
		require.Error(t, err)
		assert.True(t, statemachine.IsNoTransition(err))

		var noTransition *statemachine.ErrNoTransition
		require.ErrorAs(t, err, &noTransition)
		assert.Equal(t, idle, noTransition.From)
		assert.Equal(t, confirm, noTransition.Event)
		assert.Equal(t, idle, m.Current())
	})

	t.Run("action error aborts transition", func(t *testing.T) {
		boom := errors.New("boom")
		m := newMutationMachine(func(ctx context.Context, from, to statemachine.State, event statemachine.Event) error {
			return boom
		})

		err := m.Fire(ctx, apply)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, idle, m.Current(), "failed action must leave state unchanged")
	})

	t.Run("actions observe from and to states", func(t *testing.T) {
		var gotFrom, gotTo statemachine.State
		m := newMutationMachine(func(ctx context.Context, from, to statemachine.State, event statemachine.Event) error {
			gotFrom, gotTo = from, to
			return nil
		})

		require.NoError(t, m.Fire(ctx, apply))
		assert.Equal(t, idle, gotFrom)
		assert.Equal(t, applying, gotTo)
	})
}

func TestMachine_CanFire(t *testing.T) {
	m := newMutationMachine()
	assert.True(t, m.CanFire(apply))
	assert.False(t, m.CanFire(confirm))
}

func TestMachine_Reset(t *testing.T) {
	m := newMutationMachine()
	require.NoError(t, m.Fire(context.Background(), apply))
	m.Reset()
	assert.True(t, m.Is(idle))
}

func TestMachine_DuplicateTransitionPanics(t *testing.T) {
	assert.Panics(t, func() {
		statemachine.New(idle,
			statemachine.WithTransition(idle, applying, apply),
			statemachine.WithTransition(idle, confirmed, apply),
		)
	})
}
