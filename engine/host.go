package engine

import (
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/scheduler"
)

// Host is the surface an Instance renders into.
type Host interface {
	// Bounds returns the live surface size.
	Bounds() Bounds
	// Events returns the target listeners attach to.
	Events() EventTarget
	// Painter returns the drawing surface; an error selects the fallback.
	Painter() (paint.Painter, error)
	// Frames schedules frame callbacks.
	Frames() scheduler.Frames
	// Timers schedules delayed callbacks.
	Timers() scheduler.Timers
	// Fallback paints a static decorative gradient when no painter is
	// available. It is called at most once per Start.
	Fallback(b *paint.Backdrop)
}

// BasicHost is a Host assembled from parts; offscreen renderers and tests
// use it directly.
type BasicHost struct {
	Size       Bounds
	Dispatcher *Dispatcher
	Surface    paint.Painter
	SurfaceErr error
	Sched      scheduler.Scheduler

	// Fallbacks counts Fallback calls; LastFallback keeps the latest one.
	Fallbacks    int
	LastFallback *paint.Backdrop
}

var _ Host = (*BasicHost)(nil)

// NewBasicHost wires a host of the given size.
func NewBasicHost(size Bounds, surface paint.Painter, sched scheduler.Scheduler) *BasicHost {
	return &BasicHost{Size: size, Dispatcher: NewDispatcher(), Surface: surface, Sched: sched}
}

// Bounds implements Host.
func (h *BasicHost) Bounds() Bounds { return h.Size }

// Events implements Host.
func (h *BasicHost) Events() EventTarget { return h.Dispatcher }

// Painter implements Host.
func (h *BasicHost) Painter() (paint.Painter, error) {
	if h.SurfaceErr != nil {
		return nil, h.SurfaceErr
	}
	return h.Surface, nil
}

// Frames implements Host.
func (h *BasicHost) Frames() scheduler.Frames { return h.Sched }

// Timers implements Host.
func (h *BasicHost) Timers() scheduler.Timers { return h.Sched }

// Fallback implements Host.
func (h *BasicHost) Fallback(b *paint.Backdrop) {
	h.Fallbacks++
	h.LastFallback = b
}

// Resize changes the surface size and notifies listeners.
func (h *BasicHost) Resize(width, height float64) {
	h.Size = Bounds{Width: width, Height: height}
	h.Dispatcher.Dispatch(Event{Kind: EventResize})
}
