package tdjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

var errNoType = errors.New(`missing "@type" field`)

// Registry maps "@type" discriminators to response constructors. It decodes
// untagged JSON into concrete Response values. A Registry is safe for
// concurrent use; registration normally happens once, at init.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]func() Response
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]func() Response)}
}

// Register binds typ to ctor. It panics if typ is empty or already bound.
func (r *Registry) Register(typ string, ctor func() Response) {
	if typ == "" || ctor == nil {
		panic("tdjson: Register with empty type or nil constructor")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ctors[typ]; dup {
		panic(fmt.Sprintf("tdjson: type %q registered twice", typ))
	}
	r.ctors[typ] = ctor
}

// RegisterType registers T under the discriminator its Type method reports.
//
//	tdjson.RegisterType[tdapi.User](schema)
func RegisterType[T any, PT interface {
	*T
	Response
}](r *Registry) {
	r.Register(PT(new(T)).Type(), func() Response { return PT(new(T)) })
}

// Known reports whether typ is registered.
func (r *Registry) Known(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[typ]
	return ok
}

// Decode reads the "@type" discriminator of data and unmarshals data into a
// new value of the registered type. Unregistered discriminators decode to
// *Unrecognized. data is not retained.
func (r *Registry) Decode(data []byte) (Response, error) {
	typ, err := PeekType(data)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	ctor, ok := r.ctors[typ]
	r.mu.RUnlock()
	if !ok {
		return &Unrecognized{TypeName: typ, Raw: append(json.RawMessage(nil), data...)}, nil
	}
	v := ctor()
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", typ, err)
	}
	return v, nil
}

// PeekType returns the "@type" discriminator of a JSON object.
func PeekType(data []byte) (string, error) {
	var env struct {
		Type *string `json:"@type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	if env.Type == nil || *env.Type == "" {
		return "", errNoType
	}
	return *env.Type, nil
}

// Unrecognized holds a response whose discriminator the registry does not
// know. Raw is a private copy of the whole object.
type Unrecognized struct {
	TypeName string
	Raw      json.RawMessage
}

func (u *Unrecognized) Type() string { return u.TypeName }
