package network

import "sync"

// Listener receives decoded messages.
type Listener func(Message)

// Dispatcher routes messages to the listeners registered for their type.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[MessageType][]Listener
	fallback  Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: map[MessageType][]Listener{}}
}

// Handle adds l for messages of type t. Listeners run in the order they
// were added.
func (d *Dispatcher) Handle(t MessageType, l Listener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners[t] = append(d.listeners[t], l)
	d.mu.Unlock()
}

// HandleText is a typed shortcut for TextMessageType listeners.
func (d *Dispatcher) HandleText(fn func(*TextMessage)) {
	d.Handle(TextMessageType, func(m Message) {
		if tm, ok := m.(*TextMessage); ok {
			fn(tm)
		}
	})
}

// Fallback receives messages that have no listener.
func (d *Dispatcher) Fallback(l Listener) {
	d.mu.Lock()
	d.fallback = l
	d.mu.Unlock()
}

// Dispatch delivers m and reports whether any typed listener saw it.
func (d *Dispatcher) Dispatch(m Message) bool {
	if m == nil {
		return false
	}
	d.mu.RLock()
	ls := d.listeners[m.Type()]
	fallback := d.fallback
	d.mu.RUnlock()

	if len(ls) == 0 {
		if fallback != nil {
			fallback(m)
		}
		return false
	}
	for _, l := range ls {
		l(m)
	}
	return true
}
