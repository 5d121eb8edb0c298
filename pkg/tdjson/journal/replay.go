package journal

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
)

// Replay returns a native factory that plays entries back. The n-th native
// client it creates serves the traffic recorded for client n: Receive
// returns the recorded events in order, Execute returns the reply recorded
// for the same request, and Send is accepted and dropped. Once its events
// are exhausted Receive waits out its timeout and reports no event.
func Replay(entries []Entry) tdjson.NativeFactory {
	byClient := make(map[uint32]*script)
	for i, e := range entries {
		s := byClient[e.Client]
		if s == nil {
			s = &script{}
			byClient[e.Client] = s
		}
		switch e.Dir {
		case Received:
			s.events = append(s.events, e.Payload)
		case Executed:
			ex := exchange{request: string(e.Payload)}
			ex.reply, ex.ok = replyTo(entries, i)
			s.execs = append(s.execs, ex)
		}
	}

	var created atomic.Uint32
	return func() (tdjson.Native, error) {
		s := byClient[created.Add(1)]
		if s == nil {
			s = &script{}
		}
		return &replayer{events: s.events, execs: append([]exchange(nil), s.execs...)}, nil
	}
}

// replyTo finds the reply to the execute at entries[i]. Execute and Receive
// never overlap on one client, so only sends can sit between the two.
func replyTo(entries []Entry, i int) ([]byte, bool) {
	client := entries[i].Client
	for _, e := range entries[i+1:] {
		if e.Client != client || e.Dir == Sent {
			continue
		}
		if e.Dir == Reply {
			return e.Payload, true
		}
		break
	}
	return nil, false
}

type exchange struct {
	request string
	reply   []byte
	ok      bool
	used    bool
}

type script struct {
	events [][]byte
	execs  []exchange
}

type replayer struct {
	mu     sync.Mutex
	events [][]byte
	execs  []exchange
}

func (r *replayer) Execute(request string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.execs {
		ex := &r.execs[i]
		if !ex.used && ex.request == request {
			ex.used = true
			return ex.reply, ex.ok
		}
	}
	return nil, false
}

func (r *replayer) Send(string) {}

func (r *replayer) Receive(timeout time.Duration) ([]byte, bool) {
	r.mu.Lock()
	if len(r.events) == 0 {
		r.mu.Unlock()
		time.Sleep(timeout)
		return nil, false
	}
	ev := r.events[0]
	r.events = r.events[1:]
	r.mu.Unlock()
	return ev, true
}

func (r *replayer) Destroy() {}
