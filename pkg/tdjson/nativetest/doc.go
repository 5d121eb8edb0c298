// Package nativetest provides an in-memory tdjson.Native for tests and
// examples.
//
// A Fakes value is a native factory: pass its Native method to
// tdjson.WithNative and every client created with it talks to a Fake
// instead of libtdjson. Fakes count creations and destructions, so tests
// can assert that a native client is destroyed exactly once.
//
// # Features
//
//   - Scripted updates pushed with Push and served by Receive in order
//   - Synchronous replies from a WithExecute function
//   - Asynchronous replies to Send from a WithResponder function
//   - One reply buffer reused across Execute and Receive, as libtdjson does
//   - Contract checks: overlapping Execute/Receive, use after Destroy and
//     double Destroy are recorded as violations
//
// # Usage
//
//	fakes := nativetest.New(nativetest.WithResponder(func(req string) []string {
//	    return []string{`{"@type":"ok"}`}
//	}))
//	c, _ := tdjson.NewClient(tdjson.WithNative(fakes.Native))
//	defer c.Close()
//
// # Limitations
//
// Receive never blocks: when no event is queued it returns immediately,
// whatever the timeout. The event queue is bounded; Push fails once it is
// full.
package nativetest
