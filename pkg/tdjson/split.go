package tdjson

import (
	"runtime"
	"sync"
	"time"

	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

// Sender is the sending half of a split client. It may be shared between
// goroutines.
type Sender struct {
	life sync.RWMutex
	h    *handle
}

func newSender(h *handle) *Sender {
	s := &Sender{h: h}
	runtime.SetFinalizer(s, func(s *Sender) { _ = s.Close() })
	return s
}

// Send queues an asynchronous request.
func (s *Sender) Send(request string) error {
	s.life.RLock()
	defer s.life.RUnlock()
	if s.h == nil {
		return opError("send", ErrClosed, nil)
	}
	return s.h.send(request)
}

// Close drops the sender's reference to the native client. It is safe to
// call more than once.
func (s *Sender) Close() error {
	if s == nil {
		return nil
	}
	s.life.Lock()
	defer s.life.Unlock()
	if s.h == nil {
		return nil
	}
	runtime.SetFinalizer(s, nil)
	h := s.h
	s.h = nil
	h.release()
	return nil
}

// Receiver is the receiving half of a split client. It may be moved to
// another goroutine but must only be used by one goroutine at a time;
// overlapping calls to Receive panic. Close may be called from any
// goroutine and ends a running Updates loop.
type Receiver struct {
	life sync.RWMutex // write-held by Close
	excl sync.Mutex   // held by Receive

	h       *handle
	timeout time.Duration
	log     logging.Logger
}

func newReceiver(h *handle, timeout time.Duration, log logging.Logger) *Receiver {
	r := &Receiver{h: h, timeout: timeout, log: log}
	runtime.SetFinalizer(r, func(r *Receiver) { _ = r.Close() })
	return r
}

// Receive waits up to timeout for the next response or update. The View is
// valid until the next Receive on r.
func (r *Receiver) Receive(timeout time.Duration) (View, error) {
	var out View
	err := r.receiveWith(timeout, func(v View) error {
		out = v
		return nil
	})
	return out, err
}

// Timeout returns the receive timeout inherited from the split client.
func (r *Receiver) Timeout() time.Duration {
	return r.timeout
}

// Close drops the receiver's reference to the native client. It is safe to
// call more than once.
func (r *Receiver) Close() error {
	if r == nil {
		return nil
	}
	r.life.Lock()
	defer r.life.Unlock()
	if r.h == nil {
		return nil
	}
	runtime.SetFinalizer(r, nil)
	h := r.h
	r.h = nil
	h.release()
	return nil
}

func (r *Receiver) receiveWith(timeout time.Duration, consume func(View) error) error {
	if !r.excl.TryLock() {
		panic("tdjson: concurrent Receive on Receiver")
	}
	defer r.excl.Unlock()

	r.life.RLock()
	defer r.life.RUnlock()
	if r.h == nil {
		return opError("receive", ErrClosed, nil)
	}
	v, err := r.h.receive(timeout)
	if err != nil {
		return err
	}
	return consume(v)
}

func (r *Receiver) logger() logging.Logger {
	return r.log
}
