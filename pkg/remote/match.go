package remote

// Handler handles one Data state in Match.
type Handler[T, R any] interface {
	handle(Data[T]) (R, bool)
}

// Match folds a Data into a result by trying each handler in order and
// returning the first one that covers the current state. When no handler
// matches, the zero R and false are returned.
//
// Example:
//
//	label := remote.MustMatch(posts,
//	    remote.OnNotRequested[Collection[Post]](func() string { return "—" }),
//	    remote.OnPending[Collection[Post], string](func() string { return "loading" }),
//	    remote.OnFailed[Collection[Post]](func(err error) string { return err.Error() }),
//	    remote.OnAvailable(func(c Collection[Post]) string { return fmt.Sprint(c.Len()) }),
//	)
func Match[T, R any](d Data[T], handlers ...Handler[T, R]) (R, bool) {
	for _, h := range handlers {
		if r, ok := h.handle(d); ok {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// MustMatch is Match with the covered-state check dropped. Use it when the
// handler list is exhaustive.
func MustMatch[T, R any](d Data[T], handlers ...Handler[T, R]) R {
	r, _ := Match(d, handlers...)
	return r
}

type notRequestedHandler[T, R any] struct {
	fn func() R
}

func (h notRequestedHandler[T, R]) handle(d Data[T]) (R, bool) {
	if d.State() == StateNotRequested {
		return h.fn(), true
	}
	var zero R
	return zero, false
}

type pendingHandler[T, R any] struct {
	fn func() R
}

func (h pendingHandler[T, R]) handle(d Data[T]) (R, bool) {
	if d.State() == StatePending {
		return h.fn(), true
	}
	var zero R
	return zero, false
}

type failedHandler[T, R any] struct {
	fn func(error) R
}

func (h failedHandler[T, R]) handle(d Data[T]) (R, bool) {
	if d.State() == StateFailed {
		return h.fn(d.Err()), true
	}
	var zero R
	return zero, false
}

type availableHandler[T, R any] struct {
	fn func(T) R
}

func (h availableHandler[T, R]) handle(d Data[T]) (R, bool) {
	if v, ok := d.Value(); ok {
		return h.fn(v), true
	}
	var zero R
	return zero, false
}

type waitingHandler[T, R any] struct {
	fn func() R
}

func (h waitingHandler[T, R]) handle(d Data[T]) (R, bool) {
	if s := d.State(); s == StateNotRequested || s == StatePending {
		return h.fn(), true
	}
	var zero R
	return zero, false
}

// OnNotRequested handles the NotRequested state.
func OnNotRequested[T, R any](fn func() R) Handler[T, R] {
	return notRequestedHandler[T, R]{fn: fn}
}

// OnPending handles the Pending state.
func OnPending[T, R any](fn func() R) Handler[T, R] {
	return pendingHandler[T, R]{fn: fn}
}

// OnFailed handles the Failed state.
func OnFailed[T, R any](fn func(error) R) Handler[T, R] {
	return failedHandler[T, R]{fn: fn}
}

// OnAvailable handles the Available state.
func OnAvailable[T, R any](fn func(T) R) Handler[T, R] {
	return availableHandler[T, R]{fn: fn}
}

// OnWaiting handles both NotRequested and Pending, for call sites that show
// the same placeholder in either state.
func OnWaiting[T, R any](fn func() R) Handler[T, R] {
	return waitingHandler[T, R]{fn: fn}
}
