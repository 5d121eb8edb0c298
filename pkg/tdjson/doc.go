// Package tdjson is a safe Go client for TDLib's JSON interface.
//
// TDLib exposes a handful of C functions that create a client, send it JSON
// requests, receive JSON responses and updates, execute a few requests
// synchronously, and destroy it. Used directly they are easy to misuse: a
// reply is only valid until the next call, receive must never run on two
// threads at once, and the client must be destroyed exactly once. This
// package turns those rules into types.
//
// # Clients
//
// Client owns one native TDLib client. Send is safe from any goroutine;
// Execute and Receive require exclusive use and panic when overlapped. For
// the common layout of one receiving goroutine and many senders, Split the
// client:
//
//	c, err := tdjson.NewClient()
//	if err != nil {
//	    return err
//	}
//	sender, receiver, err := c.Split()
//	...
//	go func() {
//	    for update := range receiver.Updates() {
//	        handle(update)
//	    }
//	}()
//	_ = sender.Send(`{"@type":"getMe","@extra":1}`)
//
// The native client is destroyed when the last of Client, Sender and
// Receiver is closed.
//
// # Replies
//
// Execute and Receive return a View that borrows TDLib's reply buffer. It
// stays readable until the next Execute or Receive on the same client;
// reading it later panics. Call String to keep a copy.
//
// # Typed requests
//
// TypedClient encodes Request values and decodes replies through a
// Registry. A request type embeds Returns with its reply type, which lets
// Execute return the right Go type:
//
//	tc, _ := tdjson.NewTypedClient(tdapi.Schema)
//	ents, err := tdjson.Execute[tdapi.TextEntities](tc, &tdapi.GetTextEntities{Text: "@telegram"})
//
// # Building
//
// The native client is compiled in only with cgo enabled and the tdjson
// build tag, and links -ltdjson. Without them NewClient returns
// ErrNotBuilt unless another native is supplied with WithNative.
package tdjson
