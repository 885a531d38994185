package event

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

// Args is the argument list a handler receives from Broadcast.
type Args []any

func (a Args) Len() int {
	return len(a)
}

// Get returns the i-th argument, or nil when the handler asks for one
// that was not supplied.
func (a Args) Get(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

type HandlerFunc func(args Args) (any, error)

const variadic = -1

var handlerSeq atomic.Uint64

type HandlerOptionFunc func(*Handler)

// WithArity fixes the number of arguments the handler receives. Extra
// broadcast arguments are dropped and missing ones are padded with nil.
func WithArity(n int) HandlerOptionFunc {
	return func(h *Handler) {
		if n < 0 {
			n = variadic
		}
		h.arity = n
	}
}

func WithHandlerName(name string) HandlerOptionFunc {
	return func(h *Handler) {
		h.name = name
	}
}

// Handler is the registration handle for a callback. Dispatchers compare
// handlers by pointer, so every NewHandler call yields a distinct identity
// even when fn is shared.
type Handler struct {
	name  string
	arity int
	fn    HandlerFunc
}

func NewHandler(fn HandlerFunc, opts ...HandlerOptionFunc) *Handler {
	h := &Handler{
		arity: variadic,
		fn:    fn,
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.name == "" {
		h.name = fmt.Sprintf("handler-%d", handlerSeq.Add(1))
	}

	return h
}

func (h *Handler) Name() string {
	return h.name
}

// Arity returns the declared argument count, or -1 for a variadic handler.
func (h *Handler) Arity() int {
	return h.arity
}

// Call invokes the handler with args adapted to its arity. A panic inside
// the callback is recovered and returned as a *PanicError.
func (h *Handler) Call(args ...any) (result any, err error) {
	if h.fn == nil {
		return nil, fmt.Errorf("handler %s: %w", h.name, ErrNilHandlerFunc)
	}

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{
				Handler: h.name,
				Value:   r,
				Stack:   debug.Stack(),
			}
		}
	}()

	return h.fn(h.adapt(args))
}

// adapt gives every call its own copy so one handler cannot rewrite the
// arguments seen by the next.
func (h *Handler) adapt(args []any) Args {
	n := h.arity
	if n == variadic {
		n = len(args)
	}
	out := make(Args, n)
	copy(out, args)
	return out
}

func (h *Handler) String() string {
	if h.arity == variadic {
		return fmt.Sprintf("%s(...)", h.name)
	}
	return fmt.Sprintf("%s/%d", h.name, h.arity)
}
