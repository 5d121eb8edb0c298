package tdjson

import (
	"context"
	"errors"
	"iter"
	"time"

	"code.hybscloud.com/iox"

	"github.com/tdjson-go/tdjson/pkg/tdjson/logging"
)

// source is anything that can receive with exclusive access: *Client and
// *Receiver.
type source interface {
	receiveWith(timeout time.Duration, consume func(View) error) error
	logger() logging.Logger
}

// poll turns repeated receives into an endless sequence. Empty polls and
// failed receives or decodes are skipped; each skipped error is logged at
// debug level. The sequence ends when the consumer stops or the source is
// closed. With a zero timeout the loop backs off between empty polls.
func poll[T any](src source, timeout time.Duration, decode func(View) (T, error)) iter.Seq[T] {
	return func(yield func(T) bool) {
		ctx := context.Background()
		log := src.logger()
		var bo iox.Backoff
		for {
			var item T
			var got bool
			err := src.receiveWith(timeout, func(v View) error {
				if v.Empty() {
					return nil
				}
				var err error
				if item, err = decode(v); err != nil {
					return err
				}
				got = true
				return nil
			})
			switch {
			case errors.Is(err, ErrClosed):
				return
			case err != nil:
				log.Debug(ctx, "dropping receive error", "error", err)
			case got:
				bo.Reset()
				if !yield(item) {
					return
				}
				continue
			}
			if timeout == 0 {
				bo.Wait()
			}
		}
	}
}

func viewString(v View) (string, error) {
	return v.String(), nil
}

// Updates returns an iterator over incoming responses and updates as JSON
// strings, received with the client's timeout. Empty polls and errors are
// skipped. The iterator ends when the loop body breaks or c is closed.
// Ranging over it counts as Receive for the exclusivity rules.
func (c *Client) Updates() iter.Seq[string] {
	return poll(c, c.timeout, viewString)
}

// Updates is like Client.Updates for the receiving half.
func (r *Receiver) Updates() iter.Seq[string] {
	return poll(r, r.timeout, viewString)
}
