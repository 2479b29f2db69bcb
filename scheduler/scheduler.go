// Package scheduler provides the frame and timer capabilities the render
// loop runs on.
//
// Loop drives callbacks from one goroutine at a fixed frame interval;
// Manual advances a virtual clock only when Step is called, so tests can
// drive frames deterministically. Both serialize every callback: frame
// callbacks, timer callbacks and posted host events never overlap.
package scheduler

import "time"

// FrameFunc is called with the scheduler clock (time since it started).
type FrameFunc func(now time.Duration)

// Cancel releases a requested frame. Calling it more than once is a no-op.
type Cancel func()

// Stopper stops a pending timer.
type Stopper interface {
	// Stop reports whether the call prevented the callback from running.
	Stop() bool
}

// Frames schedules one-shot frame callbacks.
type Frames interface {
	RequestFrame(fn FrameFunc) Cancel
}

// Timers schedules one-shot delayed callbacks and exposes the clock.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Stopper
	Now() time.Duration
}

// Scheduler is the full capability set a host hands to the engine.
type Scheduler interface {
	Frames
	Timers
	// Post runs fn on the scheduler's thread. It reports false once closed.
	Post(fn func()) bool
}

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// FrameInterval converts a frame rate into a tick interval; fps < 1 uses
// DefaultFPS.
func FrameInterval(fps int) time.Duration {
	if fps < 1 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
