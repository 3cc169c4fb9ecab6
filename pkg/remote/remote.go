package remote

import "fmt"

// State represents the lifecycle position of a remotely-sourced value.
type State int

const (
	// StateNotRequested is the initial state, before any fetch was issued.
	StateNotRequested State = iota

	// StatePending indicates a fetch is in flight.
	StatePending

	// StateFailed indicates the last fetch ended in an error.
	StateFailed

	// StateAvailable indicates the value was successfully loaded.
	StateAvailable
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotRequested:
		return "not_requested"
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	case StateAvailable:
		return "available"
	default:
		return "unknown"
	}
}

// Data is a remotely-sourced value in one of four states.
//
// The zero value is NotRequested, so a Data can be embedded in larger state
// structs without explicit initialization. Data is a value type: every
// constructor returns a fresh value and nothing mutates one in place, which
// keeps store snapshots immutable between reducer steps.
//
// Example:
//
//	posts := remote.Pending[[]Post]()
//	// ... response arrives ...
//	posts = remote.Available(result)
//	if v, ok := posts.Value(); ok {
//	    render(v)
//	}
type Data[T any] struct {
	state State
	value T
	err   error
}

// NotRequested returns a Data in the initial, never-fetched state.
func NotRequested[T any]() Data[T] {
	return Data[T]{}
}

// Pending returns a Data representing an in-flight fetch.
func Pending[T any]() Data[T] {
	return Data[T]{state: StatePending}
}

// Failed returns a Data recording a fetch error.
func Failed[T any](err error) Data[T] {
	return Data[T]{state: StateFailed, err: err}
}

// Available returns a Data holding a successfully loaded value.
func Available[T any](v T) Data[T] {
	return Data[T]{state: StateAvailable, value: v}
}

// State returns the current state.
func (d Data[T]) State() State {
	return d.state
}

// ShouldFetch reports whether a new fetch should be issued for this slot.
//
// This is the request gate: it is true only in the NotRequested state, which
// guarantees at most one outstanding request per slot. A Failed slot blocks
// further automatic fetches; only an explicit reset at the call site reissues
// one.
func (d Data[T]) ShouldFetch() bool {
	return d.state == StateNotRequested
}

// IsNotRequested reports whether no fetch was ever issued.
func (d Data[T]) IsNotRequested() bool { return d.state == StateNotRequested }

// IsPending reports whether a fetch is in flight.
func (d Data[T]) IsPending() bool { return d.state == StatePending }

// IsFailed reports whether the last fetch failed.
func (d Data[T]) IsFailed() bool { return d.state == StateFailed }

// IsAvailable reports whether the value was loaded.
func (d Data[T]) IsAvailable() bool { return d.state == StateAvailable }

// Value returns the loaded value and true, or the zero value and false when
// the state is anything other than Available.
func (d Data[T]) Value() (T, bool) {
	if d.state == StateAvailable {
		return d.value, true
	}
	var zero T
	return zero, false
}

// ValueOr returns the loaded value, or fallback when not Available.
func (d Data[T]) ValueOr(fallback T) T {
	if d.state == StateAvailable {
		return d.value
	}
	return fallback
}

// Err returns the recorded error, or nil outside the Failed state.
func (d Data[T]) Err() error {
	if d.state == StateFailed {
		return d.err
	}
	return nil
}

// String implements fmt.Stringer for logging.
func (d Data[T]) String() string {
	switch d.state {
	case StateFailed:
		return fmt.Sprintf("remote.Failed(%v)", d.err)
	case StateAvailable:
		return fmt.Sprintf("remote.Available(%v)", d.value)
	default:
		return "remote." + d.state.String()
	}
}

// Map transforms the value of an Available Data, passing the other three
// states through untouched.
func Map[T, U any](d Data[T], fn func(T) U) Data[U] {
	switch d.state {
	case StateAvailable:
		return Available(fn(d.value))
	case StateFailed:
		return Failed[U](d.err)
	case StatePending:
		return Pending[U]()
	default:
		return NotRequested[U]()
	}
}
