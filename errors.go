package event

import (
	"errors"
	"fmt"
)

var ErrNilHandlerFunc = errors.New("nil handler func")

// PanicError is reported when a handler panics during a broadcast.
type PanicError struct {
	Handler string
	Value   any
	Stack   []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler %s panic: %v", e.Handler, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
