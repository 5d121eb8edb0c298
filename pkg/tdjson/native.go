package tdjson

import (
	"time"
	"unsafe"

	"github.com/tdjson-go/tdjson/internal/bindings"
)

// Native is one native TDLib client instance: the external collaborator this
// package makes safe to use.
//
// Implementations may assume the contract that Client, Sender and Receiver
// enforce: Send may be called concurrently; Execute and Receive are never
// called concurrently with themselves or each other; nothing is called after
// Destroy; Destroy is called exactly once.
//
// The slices returned by Execute and Receive may alias memory owned by the
// implementation. They only have to stay valid until the next Execute,
// Receive or Destroy. The boolean result is false when there is no reply.
type Native interface {
	Execute(request string) ([]byte, bool)
	Send(request string)
	Receive(timeout time.Duration) ([]byte, bool)
	Destroy()
}

// NativeFactory creates a Native instance. Returning ErrNotBuilt is reported
// to the caller of NewClient; any other error is treated as an unrecoverable
// allocation failure.
type NativeFactory func() (Native, error)

// LinkedNative creates an instance backed by libtdjson. It fails with
// ErrNotBuilt unless the binary was built with cgo and the tdjson tag.
func LinkedNative() (Native, error) {
	ptr, err := bindings.Create()
	if err != nil {
		return nil, remapError(err)
	}
	return &linkedNative{ptr: ptr}, nil
}

// Linked reports whether libtdjson is linked into this binary.
func Linked() bool {
	return bindings.Available()
}

type linkedNative struct {
	ptr unsafe.Pointer
}

func (n *linkedNative) Execute(request string) ([]byte, bool) {
	return bindings.Execute(n.ptr, request)
}

func (n *linkedNative) Send(request string) {
	bindings.Send(n.ptr, request)
}

func (n *linkedNative) Receive(timeout time.Duration) ([]byte, bool) {
	return bindings.Receive(n.ptr, timeout.Seconds())
}

func (n *linkedNative) Destroy() {
	bindings.Destroy(n.ptr)
	n.ptr = nil
}
