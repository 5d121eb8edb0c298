//go:build !cgo || !tdjson

package bindings

import "unsafe"

// Stub implementations for builds without cgo or without the tdjson tag.
// These allow the package to compile but report ErrNotBuilt when called.

func Available() bool { return false }

func Create() (unsafe.Pointer, error) {
	return nil, ErrNotBuilt
}

func Execute(unsafe.Pointer, string) ([]byte, bool) { return nil, false }

func Send(unsafe.Pointer, string) {}

func Receive(unsafe.Pointer, float64) ([]byte, bool) { return nil, false }

func Destroy(unsafe.Pointer) {}

func SetLogFilePath(string) int { return 0 }

func SetLogVerbosityLevel(int) {}

func SetLogMaxFileSize(int64) {}
