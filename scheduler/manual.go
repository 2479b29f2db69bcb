package scheduler

import (
	"sort"
	"time"
)

// Manual is a Scheduler whose clock only moves on Step.
// It is not safe for concurrent use.
type Manual struct {
	now    time.Duration
	nextID uint64
	frames []manualFrame
	timers []*manualTimer
}

type manualFrame struct {
	id uint64
	fn FrameFunc
}

type manualTimer struct {
	m       *Manual
	id      uint64
	at      time.Duration
	fn      func()
	stopped bool
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual { return &Manual{} }

// Now returns the virtual clock.
func (m *Manual) Now() time.Duration { return m.now }

// RequestFrame arms fn for the next Step.
func (m *Manual) RequestFrame(fn FrameFunc) Cancel {
	m.nextID++
	id := m.nextID
	m.frames = append(m.frames, manualFrame{id: id, fn: fn})

	return func() {
		for i, f := range m.frames {
			if f.id == id {
				m.frames = append(m.frames[:i], m.frames[i+1:]...)
				return
			}
		}
	}
}

// AfterFunc arms fn to run once the clock reaches Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Stopper {
	m.nextID++
	t := &manualTimer{m: m, id: m.nextID, at: m.now + d, fn: fn}
	m.timers = append(m.timers, t)

	return t
}

// Post runs fn immediately.
func (m *Manual) Post(fn func()) bool {
	fn()
	return true
}

// PendingFrames returns the number of armed frame callbacks.
func (m *Manual) PendingFrames() int { return len(m.frames) }

// PendingTimers returns the number of armed timers.
func (m *Manual) PendingTimers() int { return len(m.timers) }

// Advance moves the clock by d and fires due timers, earliest first.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		sort.SliceStable(m.timers, func(i, j int) bool { return m.timers[i].at < m.timers[j].at })
		if len(m.timers) == 0 || m.timers[0].at > target {
			break
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		m.now = t.at
		t.stopped = true
		t.fn()
	}
	m.now = target
}

// Step advances the clock by dt, fires due timers, then runs the frames
// requested before the step. Frames requested during the step wait for the
// next one. It returns the number of frames run.
func (m *Manual) Step(dt time.Duration) int {
	m.Advance(dt)
	due := m.frames
	m.frames = nil
	for _, f := range due {
		f.fn(m.now)
	}

	return len(due)
}

// Stop implements Stopper.
func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, other := range t.m.timers {
		if other == t {
			t.m.timers = append(t.m.timers[:i], t.m.timers[i+1:]...)
			break
		}
	}
	return true
}
