// Package live subscribes to the server's event feed and turns pushed
// entity events into store messages, so posts created in another tab or by
// another client show up in an already-loaded collection.
package live

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/erlandsona/elm-store-pattern/pkg/data"
	"github.com/erlandsona/elm-store-pattern/pkg/store"
)

// EventPostCreated is pushed by the server when a post is created.
const EventPostCreated = "post.created"

// defaultRetryDelay spaces out reconnect attempts.
const defaultRetryDelay = 2 * time.Second

// Envelope is the wire format of one feed event.
type Envelope struct {
	Event string     `json:"event"`
	Post  *data.Post `json:"post,omitempty"`
}

// Feed maintains a websocket subscription and dispatches store messages for
// the events it understands. Unknown events are ignored, so the server can
// grow the feed without breaking older clients.
type Feed struct {
	url      string
	dispatch func(store.Msg)
	dialer   *websocket.Dialer
	logger   *slog.Logger
	retry    time.Duration
}

// Option configures a Feed.
type Option func(*Feed)

// WithDialer sets the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(f *Feed) {
		f.dialer = d
	}
}

// WithLogger sets the feed's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Feed) {
		f.logger = logger
	}
}

// WithRetryDelay sets the pause between reconnect attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(f *Feed) {
		f.retry = d
	}
}

// New creates a Feed for the given ws:// or wss:// URL. Events are handed to
// dispatch, typically Program.Dispatch.
func New(url string, dispatch func(store.Msg), opts ...Option) *Feed {
	f := &Feed{
		url:      url,
		dispatch: dispatch,
		dialer:   websocket.DefaultDialer,
		logger:   slog.Default().With("component", "live"),
		retry:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run connects and reads events until ctx is cancelled, reconnecting after
// connection loss.
func (f *Feed) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
		if err != nil {
			f.logger.Warn("feed dial failed", "url", f.url, "error", err)
			if !f.sleep(ctx) {
				return ctx.Err()
			}
			continue
		}

		f.read(ctx, conn)

		if ctx.Err() == nil {
			f.logger.Info("feed disconnected, reconnecting", "url", f.url)
			if !f.sleep(ctx) {
				return ctx.Err()
			}
		}
	}
}

// read consumes events from one connection until it breaks or ctx ends.
func (f *Feed) read(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	// Unblock ReadJSON when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		f.handle(env)
	}
}

func (f *Feed) handle(env Envelope) {
	switch env.Event {
	case EventPostCreated:
		if env.Post == nil {
			f.logger.Warn("post.created event without post payload")
			return
		}
		f.dispatch(store.CreatedPost{Post: *env.Post})
	default:
		f.logger.Debug("ignoring feed event", "event", env.Event)
	}
}

// sleep pauses between reconnects; false means the context ended.
func (f *Feed) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(f.retry):
		return true
	}
}
