// Package event is an in-process publish/subscribe dispatcher. Handlers are
// called synchronously in subscription order, and a failing handler is
// reported to the Logger without stopping the broadcast.
package event

import (
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Result is one handler's outcome from BroadcastResults.
type Result struct {
	Handler *Handler
	Value   any
	Err     error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

type Dispatcher struct {
	name   string
	opts   *Option
	logger Logger
	log    zerolog.Logger

	mu       sync.Mutex
	handlers []*Handler
}

// NewDispatcher returns an empty dispatcher. A nil logger reports handler
// failures through the global zerolog logger; nil opts means NewOption().
func NewDispatcher(name string, logger Logger, opts *Option) *Dispatcher {
	if logger == nil {
		logger = defaultLogger()
	}
	if opts == nil {
		opts = NewOption()
	}
	return &Dispatcher{
		name:   name,
		opts:   opts,
		logger: logger,
		log:    opts.log.With().Str("dispatcher", name).Logger(),
	}
}

func (d *Dispatcher) Name() string {
	return d.name
}

// Subscribe adds h unless it is already registered. Nil is ignored.
func (d *Dispatcher) Subscribe(h *Handler) {
	if h == nil {
		return
	}

	d.mu.Lock()
	if slices.Contains(d.handlers, h) {
		d.mu.Unlock()
		d.log.Debug().Stringer("handler", h).Msg("handler already subscribed")
		return
	}
	d.handlers = append(d.handlers, h)
	n := len(d.handlers)
	d.mu.Unlock()

	d.log.Debug().Stringer("handler", h).Int("handlers", n).Msg("handler subscribed")
}

// SubscribeFunc wraps fn in a new Handler, subscribes it and returns the
// handle needed to unsubscribe it later.
func (d *Dispatcher) SubscribeFunc(fn HandlerFunc, opts ...HandlerOptionFunc) *Handler {
	h := NewHandler(fn, opts...)
	d.Subscribe(h)
	return h
}

// Unsubscribe removes h. Unknown handlers are ignored.
func (d *Dispatcher) Unsubscribe(h *Handler) {
	if h == nil {
		return
	}

	d.mu.Lock()
	i := slices.Index(d.handlers, h)
	if i < 0 {
		d.mu.Unlock()
		return
	}
	d.handlers = slices.Delete(d.handlers, i, i+1)
	n := len(d.handlers)
	d.mu.Unlock()

	d.log.Debug().Stringer("handler", h).Int("handlers", n).Msg("handler unsubscribed")
}

func (d *Dispatcher) Contains(h *Handler) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Contains(d.handlers, h)
}

func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

// Handlers returns a copy of the registry in subscription order.
func (d *Dispatcher) Handlers() []*Handler {
	return d.snapshot()
}

// Broadcast calls every handler with args and returns their values in
// subscription order. A handler that fails contributes nil; use
// BroadcastResults to tell that apart from a nil return value.
func (d *Dispatcher) Broadcast(args ...any) []any {
	results := d.BroadcastResults(args...)
	values := make([]any, len(results))
	for i, r := range results {
		if !r.Failed() {
			values[i] = r.Value
		}
	}
	return values
}

// BroadcastResults calls every handler with args. Errors and panics are
// passed to the Logger and recorded in the handler's Result; they never
// stop the broadcast or reach the caller.
func (d *Dispatcher) BroadcastResults(args ...any) []Result {
	handlers := d.snapshot()
	results := make([]Result, len(handlers))
	for i, h := range handlers {
		results[i] = d.call(h, args)
	}
	return results
}

func (d *Dispatcher) call(h *Handler, args []any) Result {
	t := time.Now()
	value, err := h.Call(args...)

	if since := time.Since(t); d.opts.slowTime > 0 && since > d.opts.slowTime {
		d.log.Warn().Stringer("handler", h).Dur("cost", since).Msg("slow event handler")
	}

	if err != nil {
		d.logger.LogError(err)
		return Result{Handler: h, Err: err}
	}
	return Result{Handler: h, Value: value}
}

func (d *Dispatcher) snapshot() []*Handler {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Handler{}, d.handlers...)
}
