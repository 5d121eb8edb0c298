package tdjson

// View is a reply returned by Execute or Receive. The zero View is empty: the
// call produced no reply (timeout, or a request TDLib cannot answer
// synchronously).
//
// A non-empty View borrows the native reply buffer without copying it and is
// valid only until the next Execute or Receive on the same client (or until
// the client is destroyed). Bytes and String panic when called on a View that
// is no longer valid. Copy the data with String, or decode it, before making
// the next call.
type View struct {
	h    *handle
	gen  uint64
	data []byte
}

// Empty reports whether the call produced no reply.
func (v View) Empty() bool {
	return v.h == nil
}

// Valid reports whether the View can still be read. An empty View is always
// valid.
func (v View) Valid() bool {
	return v.h == nil || v.h.current(v.gen)
}

// Bytes returns the reply without copying. The slice must not be retained
// past the next Execute or Receive on the same client.
func (v View) Bytes() []byte {
	v.mustBeValid()
	return v.data
}

// String returns a copy of the reply.
func (v View) String() string {
	v.mustBeValid()
	return string(v.data)
}

// Len returns the reply length in bytes.
func (v View) Len() int {
	v.mustBeValid()
	return len(v.data)
}

func (v View) mustBeValid() {
	if !v.Valid() {
		panic("tdjson: reply read after the next Execute or Receive on its client")
	}
}
