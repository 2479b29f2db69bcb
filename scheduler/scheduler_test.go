package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/consentflow/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, scheduler.FrameInterval(0))
	assert.Equal(t, time.Second/30, scheduler.FrameInterval(30))
}

func TestManual_Frames(t *testing.T) {
	m := scheduler.NewManual()
	var got []time.Duration

	var loop scheduler.FrameFunc
	loop = func(now time.Duration) {
		got = append(got, now)
		m.RequestFrame(loop)
	}
	m.RequestFrame(loop)

	assert.Equal(t, 1, m.Step(16*time.Millisecond))
	assert.Equal(t, 1, m.Step(16*time.Millisecond))
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 32 * time.Millisecond}, got)
	assert.Equal(t, 1, m.PendingFrames())

	cancel := m.RequestFrame(func(time.Duration) { t.Fatal("cancelled frame ran") })
	cancel()
	cancel()
	assert.Equal(t, 1, m.Step(time.Millisecond))
}

func TestManual_Timers(t *testing.T) {
	m := scheduler.NewManual()
	var order []string

	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "b") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	stopped := m.AfterFunc(20*time.Millisecond, func() { order = append(order, "x") })
	assert.Equal(t, 3, m.PendingTimers())

	assert.True(t, stopped.Stop())
	assert.False(t, stopped.Stop())

	m.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a"}, order)
	m.Step(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 0, m.PendingTimers())
	assert.Equal(t, 30*time.Millisecond, m.Now())

	ran := false
	assert.True(t, m.Post(func() { ran = true }))
	assert.True(t, ran)
}

func TestDebouncer(t *testing.T) {
	m := scheduler.NewManual()
	d := scheduler.NewDebouncer(m, 0)
	calls := 0

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls++ })
		m.Advance(50 * time.Millisecond)
	}
	assert.Equal(t, 0, calls)
	assert.True(t, d.Pending())

	m.Advance(scheduler.DefaultDebounce)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())
	assert.Equal(t, 0, m.PendingTimers())

	d.Trigger(func() { calls++ })
	assert.True(t, d.Stop())
	assert.False(t, d.Stop())
	m.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestLoop_FramesAndCancel(t *testing.T) {
	l := scheduler.NewLoop(scheduler.WithFPS(240))
	defer l.Close()

	fired := make(chan time.Duration, 1)
	l.RequestFrame(func(now time.Duration) { fired <- now })
	select {
	case now := <-fired:
		assert.Greater(t, now, time.Duration(0))
	case <-time.After(2 * time.Second):
		t.Fatal("frame never fired")
	}

	var late atomic.Bool
	cancel := l.RequestFrame(func(time.Duration) { late.Store(true) })
	cancel()
	time.Sleep(5 * l.Interval())
	assert.False(t, late.Load())
}

func TestLoop_TimersAndPost(t *testing.T) {
	l := scheduler.NewLoop()
	defer l.Close()

	done := make(chan struct{})
	l.AfterFunc(5*time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}

	var ran atomic.Bool
	s := l.AfterFunc(time.Hour, func() { ran.Store(true) })
	assert.True(t, s.Stop())
	assert.False(t, s.Stop())

	var got int
	require.NoError(t, l.Call(context.Background(), func() { got = 7 }))
	assert.Equal(t, 7, got)
	assert.False(t, ran.Load())
}

func TestLoop_CloseReleasesGoroutine(t *testing.T) {
	l := scheduler.NewLoop()
	l.RequestFrame(func(time.Duration) {})
	l.AfterFunc(time.Hour, func() {})
	l.Close()
	l.Close()

	assert.False(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Call(context.Background(), func() {}), scheduler.ErrClosed)
	l.RequestFrame(func(time.Duration) {})()
	assert.False(t, l.AfterFunc(time.Millisecond, func() {}).Stop())
	goleak.VerifyNone(t)
}

func TestLoop_PanicIsContained(t *testing.T) {
	l := scheduler.NewLoop()
	defer l.Close()

	l.Post(func() { panic("boom") })
	require.NoError(t, l.Call(context.Background(), func() {}))
}

func TestLoop_OptionsPanic(t *testing.T) {
	assert.Panics(t, func() { scheduler.WithFPS(0) })
	assert.Panics(t, func() { scheduler.WithFPS(500) })
	assert.Panics(t, func() { scheduler.WithLogger(nil) })
}
