package nativetest

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
)

const defaultQueueCapacity = 1024

var serials atomix.Uint32

type config struct {
	capacity  int
	execute   func(request string) (string, bool)
	respond   func(request string) []string
	createErr error
}

// Option configures the fakes a Fakes creates.
type Option func(*config)

// WithExecute answers synchronous requests. Without it every Execute
// returns no reply.
func WithExecute(fn func(request string) (reply string, ok bool)) Option {
	return func(c *config) { c.execute = fn }
}

// WithResponder queues the returned events after every Send.
func WithResponder(fn func(request string) []string) Option {
	return func(c *config) { c.respond = fn }
}

// WithQueueCapacity bounds the event queue of each fake.
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithCreateError makes the factory fail with err, e.g. tdjson.ErrNotBuilt.
func WithCreateError(err error) Option {
	return func(c *config) { c.createErr = err }
}

// Fakes creates Fake instances and tracks their lifetimes.
type Fakes struct {
	cfg config

	mu    sync.Mutex
	fakes []*Fake

	created   atomic.Int64
	destroyed atomic.Int64
}

// New returns a factory of fakes configured by opts.
func New(opts ...Option) *Fakes {
	cfg := config{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Fakes{cfg: cfg}
}

// Native creates a Fake. It has the signature of tdjson.NativeFactory.
func (fs *Fakes) Native() (tdjson.Native, error) {
	if fs.cfg.createErr != nil {
		return nil, fs.cfg.createErr
	}
	f := &Fake{serial: serials.Add(1), owner: fs, cfg: fs.cfg}
	f.events.Init(fs.cfg.capacity)

	fs.mu.Lock()
	fs.fakes = append(fs.fakes, f)
	fs.mu.Unlock()
	fs.created.Add(1)
	return f, nil
}

// Created returns the number of fakes created so far.
func (fs *Fakes) Created() int { return int(fs.created.Load()) }

// Destroyed returns the number of Destroy calls across all fakes, including
// erroneous repeats.
func (fs *Fakes) Destroyed() int { return int(fs.destroyed.Load()) }

// Last returns the most recently created fake, or nil.
func (fs *Fakes) Last() *Fake {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.fakes) == 0 {
		return nil
	}
	return fs.fakes[len(fs.fakes)-1]
}

// Violations returns the contract violations recorded by every fake.
func (fs *Fakes) Violations() []string {
	fs.mu.Lock()
	all := append([]*Fake(nil), fs.fakes...)
	fs.mu.Unlock()

	var out []string
	for _, f := range all {
		out = append(out, f.Violations()...)
	}
	return out
}

// Fake is one in-memory native client.
type Fake struct {
	serial uint32
	owner  *Fakes
	cfg    config

	// mu serializes producers of events and guards the logs below.
	mu         sync.Mutex
	events     lfq.SPSC[string]
	sent       []string
	executed   []string
	violations []string

	// buf backs every reply, as the native client's single reply buffer does.
	buf []byte

	sends     atomic.Int64
	receives  atomic.Int64
	busy      atomic.Int32
	destroyed atomic.Bool
}

// Serial identifies the fake across all factories.
func (f *Fake) Serial() uint32 { return f.serial }

// Push queues events for Receive.
func (f *Fake) Push(events ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range events {
		ev := events[i]
		if err := f.events.Enqueue(&ev); err != nil {
			return fmt.Errorf("nativetest: event queue full after %d of %d events: %w", i, len(events), err)
		}
	}
	return nil
}

func (f *Fake) Execute(request string) ([]byte, bool) {
	f.enter("Execute")
	defer f.busy.Add(-1)

	f.mu.Lock()
	f.executed = append(f.executed, request)
	f.mu.Unlock()

	if f.cfg.execute == nil {
		return nil, false
	}
	reply, ok := f.cfg.execute(request)
	if !ok {
		return nil, false
	}
	return f.fill(reply), true
}

func (f *Fake) Send(request string) {
	if f.destroyed.Load() {
		f.violate("Send after Destroy")
	}
	f.sends.Add(1)
	f.mu.Lock()
	f.sent = append(f.sent, request)
	f.mu.Unlock()

	if f.cfg.respond == nil {
		return
	}
	if err := f.Push(f.cfg.respond(request)...); err != nil {
		f.violate(err.Error())
	}
}

func (f *Fake) Receive(time.Duration) ([]byte, bool) {
	f.enter("Receive")
	defer f.busy.Add(-1)

	f.receives.Add(1)
	ev, err := f.events.Dequeue()
	if err != nil {
		return nil, false
	}
	return f.fill(ev), true
}

func (f *Fake) Destroy() {
	if f.destroyed.Swap(true) {
		f.violate("Destroy called twice")
	}
	f.owner.destroyed.Add(1)
}

// Destroyed reports whether Destroy was called.
func (f *Fake) Destroyed() bool { return f.destroyed.Load() }

// Sends returns the number of Send calls.
func (f *Fake) Sends() int { return int(f.sends.Load()) }

// Receives returns the number of Receive calls.
func (f *Fake) Receives() int { return int(f.receives.Load()) }

// Sent returns a copy of every request passed to Send, in arrival order.
func (f *Fake) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// Executed returns a copy of every request passed to Execute.
func (f *Fake) Executed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.executed...)
}

// Violations returns the contract violations observed so far.
func (f *Fake) Violations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.violations...)
}

func (f *Fake) enter(op string) {
	if f.destroyed.Load() {
		f.violate(op + " after Destroy")
	}
	if f.busy.Add(1) != 1 {
		f.violate("overlapping " + op)
	}
}

func (f *Fake) fill(reply string) []byte {
	f.buf = append(f.buf[:0], reply...)
	return f.buf
}

func (f *Fake) violate(msg string) {
	f.mu.Lock()
	f.violations = append(f.violations, fmt.Sprintf("fake %d: %s", f.serial, msg))
	f.mu.Unlock()
}
