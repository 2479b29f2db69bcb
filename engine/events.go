package engine

import (
	"sort"
	"sync"
)

// EventKind names a host event.
type EventKind uint8

const (
	EventPointerMove EventKind = iota
	EventPointerLeave
	EventPointerDown
	EventResize
	EventReducedMotion
	EventPointerCapability
)

// eventKinds lists every kind an instance listens to.
var eventKinds = [...]EventKind{
	EventPointerMove, EventPointerLeave, EventPointerDown,
	EventResize, EventReducedMotion, EventPointerCapability,
}

var eventNames = [...]string{"pointer-move", "pointer-leave", "pointer-down", "resize", "reduced-motion", "pointer-capability"}

// String returns the event name.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one host notification. X and Y are surface-relative pointer
// coordinates; Enabled carries the new value of boolean preferences
// (reduced motion on, fine pointer present).
type Event struct {
	Kind    EventKind
	X, Y    float64
	Enabled bool
}

// Listener receives events.
type Listener func(Event)

// EventTarget registers listeners; the returned func removes the listener.
type EventTarget interface {
	AddListener(kind EventKind, fn Listener) (remove func())
}

// Dispatcher is an in-memory EventTarget.
type Dispatcher struct {
	mu        sync.Mutex
	next      uint64
	listeners map[EventKind]map[uint64]Listener
}

var _ EventTarget = (*Dispatcher)(nil)

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventKind]map[uint64]Listener)}
}

// AddListener implements EventTarget.
func (d *Dispatcher) AddListener(kind EventKind, fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	if d.listeners[kind] == nil {
		d.listeners[kind] = make(map[uint64]Listener)
	}
	d.listeners[kind][id] = fn

	return func() {
		d.mu.Lock()
		delete(d.listeners[kind], id)
		d.mu.Unlock()
	}
}

// Dispatch calls every listener of ev.Kind in registration order and
// returns how many ran.
func (d *Dispatcher) Dispatch(ev Event) int {
	d.mu.Lock()
	ids := make([]uint64, 0, len(d.listeners[ev.Kind]))
	for id := range d.listeners[ev.Kind] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]Listener, len(ids))
	for i, id := range ids {
		fns[i] = d.listeners[ev.Kind][id]
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
	return len(fns)
}

// Len returns the number of attached listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, m := range d.listeners {
		n += len(m)
	}
	return n
}
