package network

import (
	"fmt"
	"sort"
	"sync"
)

type registration struct {
	name    string
	factory func() Message
}

// Registry maps wire tags to message factories. Every type sent or received
// through a Codec must be registered on both peers under the same tag.
type Registry struct {
	mu    sync.RWMutex
	types map[MessageType]registration
}

func NewRegistry() *Registry {
	return &Registry{types: map[MessageType]registration{}}
}

// NewDefaultRegistry returns a registry with the built-in messages.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		panic(err)
	}
	return r
}

// RegisterDefaults registers the messages this package defines.
func RegisterDefaults(r *Registry) error {
	return r.Register(TextMessageType, "TextMessage", func() Message { return &TextMessage{} })
}

func (r *Registry) Register(t MessageType, name string, factory func() Message) error {
	if factory == nil {
		return fmt.Errorf("network: register %s: nil factory", name)
	}
	if t == MsgNone {
		return fmt.Errorf("network: register %s: type 0 is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.types[t]; ok {
		return fmt.Errorf("%w: 0x%04x (%s, %s)", ErrDuplicateType, uint16(t), prev.name, name)
	}
	r.types[t] = registration{name: name, factory: factory}
	return nil
}

// New returns a fresh, empty message for t.
func (r *Registry) New(t MessageType) (Message, error) {
	r.mu.RLock()
	reg, ok := r.types[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnknownType, uint16(t))
	}
	m := reg.factory()
	if m.Type() != t {
		return nil, fmt.Errorf("network: factory for 0x%04x built a 0x%04x", uint16(t), uint16(m.Type()))
	}
	return m, nil
}

func (r *Registry) Name(t MessageType) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.types[t]
	return reg.name, ok
}

func (r *Registry) Has(t MessageType) bool {
	_, ok := r.Name(t)
	return ok
}

// Types lists the registered tags in ascending order.
func (r *Registry) Types() []MessageType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MessageType, 0, len(r.types))
	for t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
