// Package internalcheck holds static policy tests for the tdjson module.
//
// The tests load the module with golang.org/x/tools/go/packages and fail
// when code crosses a boundary the design relies on:
//
//   - only internal/bindings may import "C";
//   - the typed layer reaches the native client only through the untyped
//     Client, Sender and Receiver.
//
// The package has no exported API and is not meant to be imported.
package internalcheck
