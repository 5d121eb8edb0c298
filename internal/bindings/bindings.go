//go:build cgo && tdjson

package bindings

/*
#cgo LDFLAGS: -ltdjson
#cgo linux,!android LDFLAGS: -L/usr/local/lib
#cgo darwin LDFLAGS: -L/usr/local/lib -L/opt/homebrew/lib
#include <stdlib.h>
#include <string.h>

void *td_json_client_create(void);
void td_json_client_send(void *client, const char *request);
const char *td_json_client_receive(void *client, double timeout);
const char *td_json_client_execute(void *client, const char *request);
void td_json_client_destroy(void *client);

int td_set_log_file_path(const char *file_path);
void td_set_log_verbosity_level(int new_verbosity_level);
void td_set_log_max_file_size(long long max_file_size);
*/
import "C"

import "unsafe"

// Available reports whether libtdjson is linked into this binary.
func Available() bool { return true }

// Create allocates a new TDLib client instance. The caller MUST call Destroy
// exactly once for every successful Create.
func Create() (unsafe.Pointer, error) {
	p := C.td_json_client_create()
	if p == nil {
		return nil, ErrCreate
	}
	return p, nil
}

// Execute synchronously executes a request. The returned slice aliases
// TDLib memory and is invalidated by the next Execute or Receive.
func Execute(client unsafe.Pointer, request string) ([]byte, bool) {
	creq := C.CString(request)
	defer C.free(unsafe.Pointer(creq))
	return borrow(C.td_json_client_execute(client, creq))
}

// Send queues a request for asynchronous processing.
func Send(client unsafe.Pointer, request string) {
	creq := C.CString(request)
	defer C.free(unsafe.Pointer(creq))
	C.td_json_client_send(client, creq)
}

// Receive waits up to seconds for the next update or response. The returned
// slice aliases TDLib memory and is invalidated by the next Execute or Receive.
func Receive(client unsafe.Pointer, seconds float64) ([]byte, bool) {
	return borrow(C.td_json_client_receive(client, C.double(seconds)))
}

// Destroy frees the client. The pointer must not be used afterwards.
func Destroy(client unsafe.Pointer) {
	if client != nil {
		C.td_json_client_destroy(client)
	}
}

// SetLogFilePath returns the native result: 1 on success, 0 on failure.
func SetLogFilePath(path string) int {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return int(C.td_set_log_file_path(cpath))
}

func SetLogVerbosityLevel(level int) {
	C.td_set_log_verbosity_level(C.int(level))
}

func SetLogMaxFileSize(size int64) {
	C.td_set_log_max_file_size(C.longlong(size))
}

// borrow wraps a NUL-terminated TDLib string without copying it.
func borrow(p *C.char) ([]byte, bool) {
	if p == nil {
		return nil, false
	}
	n := int(C.strlen(p))
	if n == 0 {
		return []byte{}, true
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n), true
}
