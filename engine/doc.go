// Package engine runs the consent-routing animation for one host surface.
//
// An Instance owns everything that changes while the animation runs: the
// current network and its routes, the live signals, the parallax state and
// the animation random source. Hosts supply a Host (bounds, event target,
// painter, frame scheduler and timers); the engine never reaches for
// globals, so tests drive frames with scheduler.Manual and observe drawing
// through paint.Recorder.
//
// Lifecycle:
//
//	New → Start → (frames, events, Set*) → Stop
//
// Start attaches listeners, sizes the network and either paints one static
// frame (reduced motion) or requests the first frame. Stop cancels the
// pending frame and resize timer and removes every listener.
//
// Threading: every method, listener and frame callback must run on the
// host's scheduler thread (scheduler.Loop.Post / Call). The network is
// swapped wholesale on rebuild and never mutated in place.
//
// Failures are local: an unavailable painter falls back to a static
// gradient through Host.Fallback, and paint or build errors are logged
// rather than returned to the host.
package engine
