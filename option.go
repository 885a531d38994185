package event

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type OptionFunc func(*Option)

type Option struct {
	slowTime time.Duration
	log      zerolog.Logger
}

func NewOption(opts ...OptionFunc) *Option {
	option := &Option{
		slowTime: 20 * time.Millisecond,
		log:      log.With().Str("component", "event").Logger(),
	}

	for _, opt := range opts {
		opt(option)
	}

	return option
}

// WithSlowTime sets the duration above which a handler call is logged as
// slow. Zero disables the check.
func WithSlowTime(slowTime time.Duration) OptionFunc {
	return func(option *Option) {
		option.slowTime = slowTime
	}
}

// WithLog sets the logger used for dispatcher diagnostics. Handler failures
// still go to the Logger passed to NewDispatcher.
func WithLog(logger zerolog.Logger) OptionFunc {
	return func(option *Option) {
		option.log = logger
	}
}
