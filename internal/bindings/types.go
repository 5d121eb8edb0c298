package bindings

import "errors"

var (
	// ErrNotBuilt reports that libtdjson was not linked into the current
	// binary. Build with `-tags tdjson` and cgo enabled to link it.
	ErrNotBuilt = errors.New("tdjson/internal/bindings: native bindings not built")

	// ErrCreate reports that td_json_client_create returned NULL.
	ErrCreate = errors.New("tdjson/internal/bindings: td_json_client_create returned NULL")
)
