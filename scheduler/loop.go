// SPDX-License-Identifier: MIT
// Package: consentflow/scheduler
//
// loop.go - real-time scheduler backed by one goroutine and a ticker.

package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned by Call after Close.
var ErrClosed = errors.New("scheduler: loop closed")

// Loop is a Scheduler running callbacks on its own goroutine.
type Loop struct {
	mu      sync.Mutex
	frames  map[uint64]FrameFunc
	timers  map[uint64]*time.Timer
	nextID  uint64
	running bool

	interval time.Duration
	start    time.Time
	tasks    chan func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	logger   *zap.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFPS sets the frame rate. Panics unless 1 ≤ fps ≤ 240.
func WithFPS(fps int) LoopOption {
	if fps < 1 || fps > 240 {
		panic("scheduler: WithFPS out of range [1,240]")
	}
	return func(l *Loop) { l.interval = FrameInterval(fps) }
}

// WithLogger sets the logger used for callback panics. Panics on nil.
func WithLogger(lg *zap.Logger) LoopOption {
	if lg == nil {
		panic("scheduler: WithLogger(nil)")
	}
	return func(l *Loop) { l.logger = lg }
}

// NewLoop starts a loop goroutine. Close must be called to release it.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		frames:   make(map[uint64]FrameFunc),
		timers:   make(map[uint64]*time.Timer),
		interval: FrameInterval(DefaultFPS),
		start:    time.Now(),
		tasks:    make(chan func(), 64),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   zap.NewNop(),
		running:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run()

	return l
}

// Now returns the time since the loop started.
func (l *Loop) Now() time.Duration { return time.Since(l.start) }

// Interval returns the frame interval.
func (l *Loop) Interval() time.Duration { return l.interval }

// RequestFrame arms fn for the next tick.
func (l *Loop) RequestFrame(fn FrameFunc) Cancel {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return func() {}
	}
	l.nextID++
	id := l.nextID
	l.frames[id] = fn

	return func() {
		l.mu.Lock()
		delete(l.frames, id)
		l.mu.Unlock()
	}
}

// AfterFunc runs fn on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Stopper {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := &loopTimer{loop: l}
	if !l.running {
		t.stopped.Store(true)
		return t
	}
	l.nextID++
	t.id = l.nextID
	t.timer = time.AfterFunc(d, func() {
		l.forget(t.id)
		l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	l.timers[t.id] = t.timer

	return t
}

// Post queues fn to run on the loop goroutine.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopCh:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.stopCh:
		return false
	}
}

// Call runs fn on the loop goroutine and waits for it to return.
// Must not be called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() { defer close(done); fn() }) {
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-l.doneCh:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the goroutine, pending timers and frames, and waits for the
// goroutine to exit. Safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	for id, t := range l.timers {
		t.Stop()
		delete(l.timers, id)
	}
	l.frames = make(map[uint64]FrameFunc)
	l.mu.Unlock()

	close(l.stopCh)
	<-l.doneCh
}

func (l *Loop) run() {
	defer close(l.doneCh)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case fn := <-l.tasks:
			l.safely(fn)
		case <-ticker.C:
			l.tick()
		}
	}
}

// tick fires every frame requested before it, in request order.
func (l *Loop) tick() {
	l.mu.Lock()
	if len(l.frames) == 0 {
		l.mu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(l.frames))
	for id := range l.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	due := make([]FrameFunc, len(ids))
	for i, id := range ids {
		due[i] = l.frames[id]
		delete(l.frames, id)
	}
	l.mu.Unlock()

	now := l.Now()
	for _, fn := range due {
		l.safely(func() { fn(now) })
	}
}

func (l *Loop) forget(id uint64) {
	l.mu.Lock()
	delete(l.timers, id)
	l.mu.Unlock()
}

// safely runs fn, logging instead of crashing the loop on panic.
func (l *Loop) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("scheduler callback panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

type loopTimer struct {
	loop    *Loop
	id      uint64
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
		t.loop.forget(t.id)
	}
	return true
}
