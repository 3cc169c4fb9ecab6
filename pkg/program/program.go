package program

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/erlandsona/elm-store-pattern/pkg/metrics"
	"github.com/erlandsona/elm-store-pattern/pkg/store"
	"github.com/erlandsona/elm-store-pattern/pkg/toast"
)

// defaultQueueSize is the message channel buffer. Dispatch blocks only when
// the loop falls this far behind.
const defaultQueueSize = 64

// Program runs the store's update loop: a single goroutine that owns the
// Store, folds messages through store.Update, schedules the resulting
// commands against the Gateway, and surfaces events to the toast tray.
//
// All state transitions happen on the loop goroutine, so the reducer needs no
// locks. Commands run in their own goroutines and feed their follow-up
// message back into the loop; responses for unrelated resources may arrive
// in any order and are applied independently.
//
// Example:
//
//	client, _ := api.New("http://localhost:3000")
//	p := program.New(client,
//	    program.WithTray(toast.NewTray()),
//	)
//	go p.Run(ctx)
//	p.Dispatch(store.FetchPosts{})
type Program struct {
	gateway store.Gateway
	logger  *slog.Logger
	metrics *metrics.Collector
	tray    *toast.Tray

	msgs chan store.Msg
	stop chan struct{}

	onChange []func(store.Store)

	mu      sync.RWMutex
	current store.Store

	stopOnce sync.Once
	cmdWG    sync.WaitGroup
}

// Option configures a Program.
type Option func(*Program)

// WithLogger sets the loop's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Program) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector. Without it nothing is recorded.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Program) {
		p.metrics = c
	}
}

// WithTray sets the toast tray events are surfaced to.
func WithTray(t *toast.Tray) Option {
	return func(p *Program) {
		p.tray = t
	}
}

// WithQueueSize sets the message channel buffer.
func WithQueueSize(n int) Option {
	return func(p *Program) {
		if n > 0 {
			p.msgs = make(chan store.Msg, n)
		}
	}
}

// OnChange registers a callback invoked on the loop goroutine after every
// store transition. Callbacks must not block.
func OnChange(fn func(store.Store)) Option {
	return func(p *Program) {
		p.onChange = append(p.onChange, fn)
	}
}

// New creates a Program around the given gateway. The store starts with
// nothing requested.
func New(gateway store.Gateway, opts ...Option) *Program {
	p := &Program{
		gateway: gateway,
		logger:  slog.Default().With("component", "program"),
		msgs:    make(chan store.Msg, defaultQueueSize),
		stop:    make(chan struct{}),
		current: store.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dispatch enqueues a message for the loop. It never blocks after the
// program has shut down; late messages are dropped.
func (p *Program) Dispatch(msg store.Msg) {
	select {
	case <-p.stop:
		p.logger.Debug("dropping message after shutdown", "msg", store.Name(msg))
	case p.msgs <- msg:
	}
}

// Snapshot returns the latest committed store value.
func (p *Program) Snapshot() store.Store {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Tray returns the toast tray, or nil when none was configured.
func (p *Program) Tray() *toast.Tray {
	return p.tray
}

// Run drives the update loop until ctx is cancelled, then waits for in-flight
// commands to finish. Their results are dropped; there is no way to abandon
// an individual in-flight request short of shutting the program down.
func (p *Program) Run(ctx context.Context) error {
	defer p.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-p.msgs:
			p.step(ctx, msg)
		}
	}
}

func (p *Program) step(ctx context.Context, msg store.Msg) {
	name := store.Name(msg)
	p.metrics.RecordMsg(name)

	if err := store.Err(msg); err != nil {
		p.logger.Warn("result carried error", "msg", name, "error", err)
	}

	next, cmds, events := store.Update(p.Snapshot(), msg)

	if store.IsFetchIntent(msg) && len(cmds) == 0 {
		p.metrics.RecordSuppressed(name)
		p.logger.Debug("fetch suppressed by gate", "msg", name)
	}

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	for _, cmd := range cmds {
		p.runCmd(ctx, cmd)
	}
	for _, ev := range events {
		p.publish(ev)
	}
	for _, fn := range p.onChange {
		fn(next)
	}
}

// runCmd executes one command off the loop and feeds its result back in.
func (p *Program) runCmd(ctx context.Context, cmd store.Cmd) {
	p.metrics.RecordFetch(cmd.Name())
	p.logger.Debug("scheduling call", "cmd", cmd.Name())

	p.cmdWG.Add(1)
	go func() {
		defer p.cmdWG.Done()

		start := time.Now()
		msg := cmd.Run(ctx, p.gateway)
		p.metrics.RecordFetchDuration(cmd.Name(), time.Since(start))

		if err := store.Err(msg); err != nil {
			p.metrics.RecordFetchError(cmd.Name())
		}
		p.Dispatch(msg)
	}()
}

// publish forwards one event to the tray and the log.
func (p *Program) publish(ev store.Event) {
	switch ev.Kind {
	case store.EventFailure:
		p.logger.Error(ev.Text, "error", ev.Err)
		if p.tray != nil {
			p.tray.Error(ev.Text)
		}
		p.metrics.RecordToast(string(toast.LevelError))
	case store.EventSuccess:
		p.logger.Info(ev.Text)
		if p.tray != nil {
			p.tray.Success(ev.Text)
		}
		p.metrics.RecordToast(string(toast.LevelSuccess))
	default:
		p.logger.Info(ev.Text)
		if p.tray != nil {
			p.tray.Info(ev.Text)
		}
		p.metrics.RecordToast(string(toast.LevelInfo))
	}
}

func (p *Program) shutdown() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
	p.cmdWG.Wait()
}
