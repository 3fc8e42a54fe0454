package undofsm

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a machine cannot be built from the
	// supplied configuration.
	ErrConfiguration = errors.New("invalid machine configuration")

	// ErrUnknownState is matched by every *UnknownStateError.
	ErrUnknownState = errors.New("unknown state")

	// ErrInvalidTransition is matched by every *InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
)

// UnknownStateError is returned by ChangeState for a state missing from the
// transition table.
type UnknownStateError struct {
	State StateID
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.State)
}

// Is reports whether target is ErrUnknownState.
func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}

// InvalidTransitionError is returned by Trigger when the current state
// declares no destination for the event.
type InvalidTransitionError struct {
	State StateID
	Event EventID
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition from state %q for event %q", e.State, e.Event)
}

// Is reports whether target is ErrInvalidTransition.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// IsUnknownStateError reports whether err wraps an *UnknownStateError.
func IsUnknownStateError(err error) bool {
	var e *UnknownStateError
	return errors.As(err, &e)
}

// IsInvalidTransitionError reports whether err wraps an *InvalidTransitionError.
func IsInvalidTransitionError(err error) bool {
	var e *InvalidTransitionError
	return errors.As(err, &e)
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
