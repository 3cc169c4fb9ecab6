package store

// EventKind classifies a notification emitted by Update.
type EventKind int

const (
	// EventProgress announces work that just started ("Loading posts…").
	EventProgress EventKind = iota

	// EventSuccess announces completed work.
	EventSuccess

	// EventFailure announces a failed call. Failure events are expected to be
	// shown persistently until dismissed; the other kinds expire on their own.
	EventFailure
)

// String returns a human-readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventSuccess:
		return "success"
	case EventFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Event is a human-readable notification produced alongside a store
// transition. Consumers (the toast tray, logs) decide how to present it.
type Event struct {
	Kind EventKind
	Text string

	// Err is set on failure events so call sites can inspect the cause or
	// dispatch compensating messages.
	Err error
}

// Sticky reports whether the event should persist until dismissed.
func (e Event) Sticky() bool {
	return e.Kind == EventFailure
}

func progressEvent(text string) Event {
	return Event{Kind: EventProgress, Text: text}
}

func successEvent(text string) Event {
	return Event{Kind: EventSuccess, Text: text}
}

func failureEvent(text string, err error) Event {
	return Event{Kind: EventFailure, Text: text, Err: err}
}
