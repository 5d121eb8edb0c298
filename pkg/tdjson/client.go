package tdjson

import (
	"runtime"
	"sync"
	"time"

	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

// Client is a TDLib JSON client.
//
// Send may be called from any number of goroutines. Execute and Receive need
// exclusive access: calling either while another Execute or Receive on the
// same Client is in flight panics. Use Split to receive on one goroutine
// while sending from others.
//
// Always call Close when done. A finalizer destroys the native client if a
// Client becomes unreachable without being closed, but finalizers are not
// guaranteed to run.
type Client struct {
	life  sync.RWMutex // read-held by Execute and Receive, write-held by Close and Split
	sends sync.RWMutex // read-held by Send, write-held by Close and Split after life
	excl  sync.Mutex   // held by Execute and Receive

	h       *handle // nil after Close or Split; written with life and sends held
	timeout time.Duration
	log     logging.Logger
}

// NewClient creates a native client. It returns ErrNotBuilt when libtdjson is
// not linked and no WithNative option is given.
func NewClient(opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	h, err := newHandle(o.factory, o.log)
	if err != nil {
		return nil, err
	}
	c := &Client{h: h, timeout: o.timeout, log: o.log}
	runtime.SetFinalizer(c, func(c *Client) { _ = c.Close() })
	return c, nil
}

// Execute runs a synchronous request. Only requests TDLib documents as
// executable synchronously get a reply; for anything else the returned View
// is empty.
//
// The View is valid until the next Execute or Receive on c.
func (c *Client) Execute(request string) (View, error) {
	var out View
	err := c.executeWith(request, func(v View) error {
		out = v
		return nil
	})
	return out, err
}

// Send queues an asynchronous request. Replies arrive through Receive,
// correlated by the "@extra" field if the request carries one. Send does not
// wait for an in-flight Receive, even while Close is pending.
func (c *Client) Send(request string) error {
	c.sends.RLock()
	defer c.sends.RUnlock()
	if c.h == nil {
		return opError("send", ErrClosed, nil)
	}
	return c.h.send(request)
}

// Receive waits up to timeout for the next response or update. An empty View
// means nothing arrived in time.
//
// The View is valid until the next Execute or Receive on c.
func (c *Client) Receive(timeout time.Duration) (View, error) {
	var out View
	err := c.receiveWith(timeout, func(v View) error {
		out = v
		return nil
	})
	return out, err
}

// Timeout returns the receive timeout used by Updates.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Split consumes c and returns its two halves. The native client is
// destroyed once both halves are closed. c itself is closed afterwards.
func (c *Client) Split() (*Sender, *Receiver, error) {
	c.life.Lock()
	defer c.life.Unlock()
	if c.h == nil {
		return nil, nil, opError("split", ErrClosed, nil)
	}
	runtime.SetFinalizer(c, nil)

	c.sends.Lock()
	h := c.h
	c.h = nil
	c.sends.Unlock()
	// The client's reference moves to the sender; the receiver gets its own.
	h.retain()
	return newSender(h), newReceiver(h, c.timeout, c.log), nil
}

// Close destroys the native client. It is safe to call more than once.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.life.Lock()
	defer c.life.Unlock()
	if c.h == nil {
		return nil
	}
	runtime.SetFinalizer(c, nil)
	c.sends.Lock()
	h := c.h
	c.h = nil
	c.sends.Unlock()
	h.release()
	return nil
}

// executeWith runs request and hands the reply to consume while c is still
// held exclusively, so consume may read the View without racing the next
// Execute or Receive.
func (c *Client) executeWith(request string, consume func(View) error) error {
	return c.exclusive("execute", func(h *handle) error {
		v, err := h.execute(request)
		if err != nil {
			return err
		}
		return consume(v)
	})
}

func (c *Client) receiveWith(timeout time.Duration, consume func(View) error) error {
	return c.exclusive("receive", func(h *handle) error {
		v, err := h.receive(timeout)
		if err != nil {
			return err
		}
		return consume(v)
	})
}

func (c *Client) exclusive(op string, fn func(*handle) error) error {
	if !c.excl.TryLock() {
		panic("tdjson: concurrent Execute or Receive on Client")
	}
	defer c.excl.Unlock()

	c.life.RLock()
	defer c.life.RUnlock()
	if c.h == nil {
		return opError(op, ErrClosed, nil)
	}
	return fn(c.h)
}

func (c *Client) logger() logging.Logger {
	return c.log
}
