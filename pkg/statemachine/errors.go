package statemachine

import (
	"errors"
	"fmt"
)

// ErrNoTransition indicates no transition exists for the state/event pair.
type ErrNoTransition struct {
	From  State
	Event Event
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("no transition from state %q for event %q", e.From, e.Event)
}

// IsNoTransition reports whether err is an ErrNoTransition.
func IsNoTransition(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}
