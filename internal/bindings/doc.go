// Package bindings contains the cgo bindings to TDLib's JSON client
// (libtdjson).
//
// # Design Principles
//
//  1. Isolation: ALL cgo code lives in this package. No other package
//     imports "C".
//
//  2. Minimal Surface: the five td_json_client_* functions and the three
//     process-wide td_set_log_* setters. Nothing else.
//
//  3. Opt-in Linking: the cgo implementation is compiled only with
//     `-tags tdjson` (and cgo enabled). Every other build uses the stub, which
//     reports ErrNotBuilt, so the module and its tests build without TDLib
//     installed.
//
// # Memory Layout
//
// A client is an opaque void* returned by td_json_client_create. Replies are
// returned as byte slices that alias TDLib-owned memory; they stay valid only
// until the next Execute or Receive on the same client. Callers must copy or
// decode them before that.
//
// # Threading
//
// td_json_client_send and td_json_client_execute may be called from any
// thread. td_json_client_receive must not be called concurrently on the same
// client. This package does not enforce either rule; pkg/tdjson does.
package bindings
