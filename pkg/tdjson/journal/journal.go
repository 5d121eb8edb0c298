package journal

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// Dir is the direction of a journaled message.
type Dir uint8

const (
	Sent     Dir = iota + 1 // request passed to Send
	Executed                // request passed to Execute
	Reply                   // reply returned by Execute
	Received                // event returned by Receive
)

func (d Dir) String() string {
	switch d {
	case Sent:
		return "sent"
	case Executed:
		return "executed"
	case Reply:
		return "reply"
	case Received:
		return "received"
	default:
		return fmt.Sprintf("Dir(%d)", uint8(d))
	}
}

// Entry is one journaled message. Client numbers the native clients of a
// journal from 1 in creation order.
type Entry struct {
	Seq     uint64    `cbor:"1,keyasint"`
	Client  uint32    `cbor:"2,keyasint"`
	Dir     Dir       `cbor:"3,keyasint"`
	At      time.Time `cbor:"4,keyasint"`
	Payload []byte    `cbor:"5,keyasint"`
}

var errClosed = errors.New("journal: writer closed")

// Writer appends entries to a journal. It is safe for concurrent use.
type Writer struct {
	clients atomix.Uint32

	mu     sync.Mutex
	zw     *zstd.Encoder
	enc    *cbor.Encoder
	seq    uint64
	err    error
	closed bool
	now    func() time.Time
}

// NewWriter starts a journal on w. Close flushes it; w itself is left open.
func NewWriter(w io.Writer) (*Writer, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("journal: zstd writer: %w", err)
	}
	return &Writer{zw: zw, enc: encMode.NewEncoder(zw), now: time.Now}, nil
}

// Append writes one entry. The first error is sticky: every later call
// returns it.
func (w *Writer) Append(client uint32, dir Dir, payload []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	if w.err != nil {
		return w.err
	}
	w.seq++
	e := Entry{Seq: w.seq, Client: client, Dir: dir, At: w.now().UTC(), Payload: payload}
	if err := w.enc.Encode(&e); err != nil {
		w.err = fmt.Errorf("journal: encode entry %d: %w", e.Seq, err)
	}
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Flush pushes buffered entries to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errClosed
	}
	if err := w.zw.Flush(); err != nil {
		return fmt.Errorf("journal: flush: %w", err)
	}
	return w.err
}

// Close finishes the stream. It is safe to call more than once.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return w.err
}

func (w *Writer) nextClient() uint32 {
	return w.clients.Add(1)
}

// Reader reads entries from a journal.
type Reader struct {
	zr  *zstd.Decoder
	dec *cbor.Decoder
}

// NewReader opens a journal stream.
func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("journal: zstd reader: %w", err)
	}
	return &Reader{zr: zr, dec: decMode.NewDecoder(zr)}, nil
}

// Next returns the next entry, or io.EOF after the last one.
func (r *Reader) Next() (Entry, error) {
	var e Entry
	if err := r.dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return Entry{}, io.EOF
		}
		return Entry{}, fmt.Errorf("journal: decode entry: %w", err)
	}
	return e, nil
}

// All iterates the remaining entries. A read error is yielded once and ends
// the iteration.
func (r *Reader) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			e, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(e, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the decoder.
func (r *Reader) Close() {
	r.zr.Close()
}

// ReadAll reads a whole journal.
func ReadAll(r io.Reader) ([]Entry, error) {
	jr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	defer jr.Close()

	var out []Entry
	for e, err := range jr.All() {
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, nil
}
