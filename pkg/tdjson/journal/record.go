package journal

import (
	"bytes"
	"time"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
)

// Recording wraps factory so that every native client it creates journals
// its traffic to w. Write errors do not interrupt the client; check
// w.Err.
func Recording(factory tdjson.NativeFactory, w *Writer) tdjson.NativeFactory {
	return func() (tdjson.Native, error) {
		n, err := factory()
		if err != nil {
			return nil, err
		}
		return &recorder{next: n, w: w, id: w.nextClient()}, nil
	}
}

type recorder struct {
	next tdjson.Native
	w    *Writer
	id   uint32
}

func (r *recorder) Execute(request string) ([]byte, bool) {
	_ = r.w.Append(r.id, Executed, []byte(request))
	data, ok := r.next.Execute(request)
	if ok {
		_ = r.w.Append(r.id, Reply, bytes.Clone(data))
	}
	return data, ok
}

func (r *recorder) Send(request string) {
	_ = r.w.Append(r.id, Sent, []byte(request))
	r.next.Send(request)
}

func (r *recorder) Receive(timeout time.Duration) ([]byte, bool) {
	data, ok := r.next.Receive(timeout)
	if ok {
		_ = r.w.Append(r.id, Received, bytes.Clone(data))
	}
	return data, ok
}

func (r *recorder) Destroy() {
	r.next.Destroy()
}
