package tdapi

import (
	"encoding/json"
	"errors"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
)

// ReplyError returns the TDLib error object behind a failed
// tdjson.Execute, i.e. when TDLib answered with "error" instead of the
// expected type.
func ReplyError(err error) (*Error, bool) {
	var te *tdjson.Error
	if !errors.As(err, &te) || te.Raw == "" {
		return nil, false
	}
	raw := []byte(te.Raw)
	if typ, perr := tdjson.PeekType(raw); perr != nil || typ != (Error{}).Type() {
		return nil, false
	}
	var e Error
	if json.Unmarshal(raw, &e) != nil {
		return nil, false
	}
	return &e, true
}
