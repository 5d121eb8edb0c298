package tdjson

import (
	"errors"
	"fmt"

	"github.com/tdjson-go/tdjson/internal/bindings"
)

var (
	// ErrEncoding indicates that TDLib returned bytes that are not valid UTF-8.
	ErrEncoding = errors.New("tdjson: reply is not valid UTF-8")

	// ErrNul indicates that an outbound string contains a NUL byte, which the
	// NUL-terminated native transport cannot carry.
	ErrNul = errors.New("tdjson: request contains a NUL byte")

	// ErrSerialization indicates that a typed request could not be encoded.
	ErrSerialization = errors.New("tdjson: request serialization failed")

	// ErrDeserialization indicates that a reply could not be decoded into the
	// expected typed response.
	ErrDeserialization = errors.New("tdjson: response deserialization failed")

	// ErrClosed indicates use of a client, sender or receiver after Close, or
	// of a client after Split.
	ErrClosed = errors.New("tdjson: client closed")

	// ErrNotBuilt reports that libtdjson was not linked into the current
	// binary (cgo disabled or built without the tdjson tag).
	ErrNotBuilt = errors.New("tdjson: native library not built")
)

// Error wraps a failure with the operation that produced it. Kind is one of
// the sentinel errors above; Err is the underlying cause, if any.
type Error struct {
	Op   string // Operation that failed
	Kind error  // Sentinel kind
	Err  error  // Underlying error, may be nil

	// Raw holds a copy of the reply that failed to decode. Empty for
	// failures that did not involve a reply.
	Raw string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("tdjson.%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("tdjson.%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op string, kind error, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func decodeError(op string, raw []byte, err error) error {
	return &Error{Op: op, Kind: ErrDeserialization, Err: err, Raw: string(raw)}
}

// remapError converts bindings layer errors to public API errors.
func remapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bindings.ErrNotBuilt):
		return ErrNotBuilt
	default:
		return err
	}
}
