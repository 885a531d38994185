package event

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger receives every handler failure caught by a broadcast. It must not
// panic; the dispatcher does not guard calls into it.
type Logger interface {
	LogError(err error)
}

type LoggerFunc func(err error)

func (f LoggerFunc) LogError(err error) {
	f(err)
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger reports handler failures at error level. Panics carry
// their stack in the "stack" field.
func NewZerologLogger(logger zerolog.Logger) Logger {
	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) LogError(err error) {
	e := l.logger.Error().Err(err)

	var pe *PanicError
	if errors.As(err, &pe) {
		e = e.Str("handler", pe.Handler).Bytes("stack", pe.Stack)
	}

	e.Msg("event handler failed")
}

func defaultLogger() Logger {
	return NewZerologLogger(log.Logger)
}
