package tdjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"
)

// Request is an outbound TDLib function. Type returns its "@type"
// discriminator; the value itself marshals to the remaining fields.
type Request interface {
	Type() string
}

// Response is an inbound TDLib object or update.
type Response interface {
	Type() string
}

// Returns marks a request as answered by a value of type R. Embed it in a
// request struct to make the struct usable with Execute:
//
//	type GetMe struct {
//		tdjson.Returns[User] `json:"-"`
//	}
type Returns[R any] struct{}

func (Returns[R]) returns(R) {}

// Method is a request whose reply type is R. It can only be satisfied by
// embedding Returns[R].
type Method[R any] interface {
	Request
	returns(R)
}

// Tag marshals v and inserts "@type": typ as the first field of the
// resulting object. v must marshal to a JSON object.
func Tag(typ string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' || body[len(body)-1] != '}' {
		return nil, fmt.Errorf("%s does not marshal to a JSON object", typ)
	}
	name, err := json.Marshal(typ)
	if err != nil {
		return nil, err
	}

	inner := bytes.TrimSpace(body[1 : len(body)-1])
	out := make([]byte, 0, len(body)+len(name)+12)
	out = append(out, `{"@type":`...)
	out = append(out, name...)
	if len(inner) > 0 {
		out = append(out, ',')
		out = append(out, inner...)
	}
	return append(out, '}'), nil
}

func encodeRequest(op string, req Request) (string, error) {
	if req == nil {
		return "", opError(op, ErrSerialization, errors.New("nil request"))
	}
	data, err := Tag(req.Type(), req)
	if err != nil {
		return "", opError(op, ErrSerialization, err)
	}
	return string(data), nil
}

// decodeAs unmarshals a synchronous reply into R. When R is itself a
// Response, the reply's discriminator must match R's.
func decodeAs[R any](op string, data []byte) (*R, error) {
	out := new(R)
	if want, ok := any(out).(Response); ok {
		got, err := PeekType(data)
		if err != nil {
			return nil, decodeError(op, data, err)
		}
		if got != want.Type() {
			return nil, decodeError(op, data, fmt.Errorf("got %q, want %q", got, want.Type()))
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, decodeError(op, data, err)
	}
	return out, nil
}

func decodeResponse(schema *Registry, v View) (Response, error) {
	resp, err := schema.Decode(v.Bytes())
	if err != nil {
		return nil, decodeError("receive", v.Bytes(), err)
	}
	return resp, nil
}

func receiveTyped(src source, schema *Registry, timeout time.Duration) (Response, error) {
	var out Response
	err := src.receiveWith(timeout, func(v View) error {
		if v.Empty() {
			return nil
		}
		resp, err := decodeResponse(schema, v)
		out = resp
		return err
	})
	return out, err
}

// TypedClient layers request encoding and response decoding over a Client.
// Its concurrency rules are those of the underlying Client.
type TypedClient struct {
	raw    *Client
	schema *Registry
}

// NewTypedClient creates a native client that decodes replies with schema.
func NewTypedClient(schema *Registry, opts ...Option) (*TypedClient, error) {
	if schema == nil {
		return nil, errors.New("tdjson: nil schema")
	}
	raw, err := NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &TypedClient{raw: raw, schema: schema}, nil
}

// Typed wraps an existing client. The typed client takes ownership of c.
// It panics if schema is nil.
func Typed(c *Client, schema *Registry) *TypedClient {
	if schema == nil {
		panic("tdjson: nil schema")
	}
	return &TypedClient{raw: c, schema: schema}
}

// Execute runs m synchronously and decodes the reply as R. It returns
// (nil, nil) when TDLib produced no reply. A reply of a different type, such
// as a TDLib "error" object, fails with ErrDeserialization and the reply text
// in Error.Raw.
func Execute[R any](c *TypedClient, m Method[R]) (*R, error) {
	req, err := encodeRequest("execute", m)
	if err != nil {
		return nil, err
	}
	var out *R
	err = c.raw.executeWith(req, func(v View) error {
		if v.Empty() {
			return nil
		}
		var err error
		out, err = decodeAs[R]("execute", v.Bytes())
		return err
	})
	return out, err
}

// Send encodes req and queues it.
func (c *TypedClient) Send(req Request) error {
	s, err := encodeRequest("send", req)
	if err != nil {
		return err
	}
	return c.raw.Send(s)
}

// Receive waits up to timeout and decodes the next response or update. It
// returns (nil, nil) when nothing arrived.
func (c *TypedClient) Receive(timeout time.Duration) (Response, error) {
	return receiveTyped(c.raw, c.schema, timeout)
}

// Updates is the typed form of Client.Updates. Replies that fail to decode
// are skipped.
func (c *TypedClient) Updates() iter.Seq[Response] {
	return poll(c.raw, c.raw.timeout, func(v View) (Response, error) {
		return decodeResponse(c.schema, v)
	})
}

// Split consumes c and returns its typed halves.
func (c *TypedClient) Split() (*TypedSender, *TypedReceiver, error) {
	s, r, err := c.raw.Split()
	if err != nil {
		return nil, nil, err
	}
	return &TypedSender{raw: s}, &TypedReceiver{raw: r, schema: c.schema}, nil
}

// Untyped returns the underlying client, for requests not in the schema.
func (c *TypedClient) Untyped() *Client {
	return c.raw
}

// Schema returns the registry replies are decoded with.
func (c *TypedClient) Schema() *Registry {
	return c.schema
}

// Close closes the underlying client.
func (c *TypedClient) Close() error {
	return c.raw.Close()
}

// TypedSender is the typed sending half of a split client.
type TypedSender struct {
	raw *Sender
}

// Send encodes req and queues it.
func (s *TypedSender) Send(req Request) error {
	data, err := encodeRequest("send", req)
	if err != nil {
		return err
	}
	return s.raw.Send(data)
}

// Untyped returns the underlying sender.
func (s *TypedSender) Untyped() *Sender {
	return s.raw
}

// Close closes the underlying sender.
func (s *TypedSender) Close() error {
	return s.raw.Close()
}

// TypedReceiver is the typed receiving half of a split client.
type TypedReceiver struct {
	raw    *Receiver
	schema *Registry
}

// Receive waits up to timeout and decodes the next response or update.
func (r *TypedReceiver) Receive(timeout time.Duration) (Response, error) {
	return receiveTyped(r.raw, r.schema, timeout)
}

// Updates is the typed form of Receiver.Updates.
func (r *TypedReceiver) Updates() iter.Seq[Response] {
	return poll(r.raw, r.raw.timeout, func(v View) (Response, error) {
		return decodeResponse(r.schema, v)
	})
}

// Untyped returns the underlying receiver.
func (r *TypedReceiver) Untyped() *Receiver {
	return r.raw
}

// Close closes the underlying receiver.
func (r *TypedReceiver) Close() error {
	return r.raw.Close()
}
