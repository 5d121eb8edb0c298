package tdjson

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"code.hybscloud.com/atomix"

	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

// handleSerial numbers handles for log correlation.
var handleSerial atomix.Uint32

// handle owns exactly one Native instance. Owners (Client, Sender, Receiver)
// each hold one reference; the release that drops the count to zero destroys
// the native instance.
//
// gen is bumped before every execute/receive and on destroy. A View is valid
// only while gen still equals the value it was created with.
type handle struct {
	id     uint32
	native Native
	refs   atomix.Uint32
	gen    atomic.Uint64
	log    logging.Logger
}

func newHandle(factory NativeFactory, log logging.Logger) (*handle, error) {
	n, err := factory()
	if err != nil {
		if errors.Is(err, ErrNotBuilt) {
			return nil, err
		}
		panic(fmt.Sprintf("tdjson: cannot create native client: %v", err))
	}
	if n == nil {
		panic("tdjson: native factory returned a nil client")
	}

	id := handleSerial.Add(1)
	h := &handle{id: id, native: n, log: log.With("handle", id)}
	h.refs.Add(1)
	h.log.Debug(context.Background(), "native client created")
	return h, nil
}

func (h *handle) retain() {
	h.refs.Add(1)
}

func (h *handle) release() {
	if h.refs.Add(^uint32(0)) != 0 {
		return
	}
	h.gen.Add(1)
	h.native.Destroy()
	h.log.Debug(context.Background(), "native client destroyed")
}

func (h *handle) execute(request string) (View, error) {
	if err := checkRequest("execute", request); err != nil {
		return View{}, err
	}
	gen := h.gen.Add(1)
	data, ok := h.native.Execute(request)
	return h.view("execute", gen, data, ok)
}

func (h *handle) send(request string) error {
	if err := checkRequest("send", request); err != nil {
		return err
	}
	h.native.Send(request)
	return nil
}

func (h *handle) receive(timeout time.Duration) (View, error) {
	if timeout < 0 {
		timeout = 0
	}
	gen := h.gen.Add(1)
	data, ok := h.native.Receive(timeout)
	return h.view("receive", gen, data, ok)
}

func (h *handle) view(op string, gen uint64, data []byte, ok bool) (View, error) {
	if !ok {
		return View{}, nil
	}
	if !utf8.Valid(data) {
		return View{}, opError(op, ErrEncoding, fmt.Errorf("invalid UTF-8 at byte %d", invalidUTF8At(data)))
	}
	return View{h: h, gen: gen, data: data}, nil
}

func (h *handle) current(gen uint64) bool {
	return h.gen.Load() == gen
}

// checkRequest rejects strings the NUL-terminated native transport cannot
// carry.
func checkRequest(op, request string) error {
	if i := strings.IndexByte(request, 0); i >= 0 {
		return opError(op, ErrNul, fmt.Errorf("nul byte found at position %d", i))
	}
	return nil
}

func invalidUTF8At(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
