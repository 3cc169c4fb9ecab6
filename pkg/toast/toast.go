package toast

import (
	"sync"
	"time"
)

// EventName is the event name a client renderer should listen for when
// toasts are forwarded over a live channel.
const EventName = "store:toast"

// Level represents the toast notification type.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// DefaultTTL is how long a transient toast stays active.
const DefaultTTL = 5 * time.Second

// Toast is one notification. Transient toasts expire on their own; sticky
// toasts stay active until dismissed.
type Toast struct {
	ID      int
	Level   Level
	Message string
	Sticky  bool

	// ExpiresAt is zero for sticky toasts.
	ExpiresAt time.Time
}

// Tray holds the active notifications. It is safe for concurrent use; the
// renderer polls Active while the program loop pushes.
type Tray struct {
	mu     sync.Mutex
	nextID int
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Tray.
type Option func(*Tray)

// WithTTL sets the lifetime of transient toasts.
func WithTTL(d time.Duration) Option {
	return func(t *Tray) {
		t.ttl = d
	}
}

// WithClock sets the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tray) {
		t.now = now
	}
}

// NewTray creates an empty tray.
func NewTray(opts ...Option) *Tray {
	t := &Tray{
		ttl: DefaultTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Push adds a notification and returns its id.
func (t *Tray) Push(level Level, message string, sticky bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	toast := Toast{
		ID:      t.nextID,
		Level:   level,
		Message: message,
		Sticky:  sticky,
	}
	if !sticky {
		toast.ExpiresAt = t.now().Add(t.ttl)
	}
	t.toasts = append(t.toasts, toast)
	return toast.ID
}

// Success pushes a transient success toast.
//
//	tray.Success("Changes saved!")
func (t *Tray) Success(message string) int {
	return t.Push(LevelSuccess, message, false)
}

// Info pushes a transient info toast, used for in-progress notices.
func (t *Tray) Info(message string) int {
	return t.Push(LevelInfo, message, false)
}

// Warning pushes a transient warning toast.
func (t *Tray) Warning(message string) int {
	return t.Push(LevelWarning, message, false)
}

// Error pushes a sticky error toast. It stays active until Dismiss.
func (t *Tray) Error(message string) int {
	return t.Push(LevelError, message, true)
}

// Dismiss removes the toast with the given id. Unknown ids are ignored.
func (t *Tray) Dismiss(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if toast.ID != id {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept
}

// Active returns the live notifications, dropping expired transient toasts
// as a side effect. The returned slice is a copy.
func (t *Tray) Active() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	kept := t.toasts[:0]
	for _, toast := range t.toasts {
		if toast.Sticky || toast.ExpiresAt.After(now) {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept

	out := make([]Toast, len(t.toasts))
	copy(out, t.toasts)
	return out
}

// Len returns the number of live notifications.
func (t *Tray) Len() int {
	return len(t.Active())
}
