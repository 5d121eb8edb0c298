// Package journal records the JSON traffic of tdjson clients and replays it.
//
// A journal is a zstd-compressed stream of CBOR-encoded Entry records. Wrap
// the native factory with Recording to write one:
//
//	w, _ := journal.NewWriter(file)
//	defer w.Close()
//	c, _ := tdjson.NewClient(tdjson.WithNative(journal.Recording(tdjson.LinkedNative, w)))
//
// Read it back with NewReader or ReadAll. Replay turns a recorded journal
// into a native factory that serves the recorded updates again, so code
// that consumes updates can be exercised without TDLib or a network.
//
// Journals contain every request verbatim, including bot tokens and
// database encryption keys. Store them accordingly.
package journal
