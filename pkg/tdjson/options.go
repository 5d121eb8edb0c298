package tdjson

import (
	"time"

	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

// DefaultTimeout is the receive timeout used by the polling iterators when
// none is configured.
const DefaultTimeout = time.Second

type options struct {
	timeout time.Duration
	log     logging.Logger
	factory NativeFactory
}

// Option configures a client.
type Option func(*options)

// WithTimeout sets the receive timeout used by Updates. Zero makes the
// iterators poll without waiting, backing off between empty polls. Negative
// values are treated as zero.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.timeout = d
	}
}

// WithLogger sets the logger. Nil keeps the default, which discards output.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithNative replaces the native client factory. Tests use it to run clients
// against an in-memory fake; the journal package uses it to record or replay
// traffic. Nil keeps the default, LinkedNative.
func WithNative(f NativeFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		timeout: DefaultTimeout,
		log:     logging.Nop(),
		factory: LinkedNative,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
