package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/consentflow/builder"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/metrics"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/profile"
	"github.com/katalvlaran/consentflow/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const frame = 16 * time.Millisecond

// fixture is a desktop 1280×720 host on a manual scheduler.
type fixture struct {
	sched *scheduler.Manual
	rec   *paint.Recorder
	host  *engine.BasicHost
	inst  *engine.Instance
}

func mount(t *testing.T, size engine.Bounds, opts ...engine.Option) *fixture {
	t.Helper()
	f := &fixture{sched: scheduler.NewManual(), rec: &paint.Recorder{}}
	f.host = engine.NewBasicHost(size, f.rec, f.sched)
	inst, err := engine.New(f.host, opts...)
	require.NoError(t, err)
	f.inst = inst
	require.NoError(t, inst.Start())
	t.Cleanup(inst.Stop)

	return f
}

func desktop(t *testing.T, opts ...engine.Option) *fixture {
	return mount(t, engine.Bounds{Width: 1280, Height: 720}, opts...)
}

// run steps n frames of 16 ms.
func (f *fixture) run(n int) {
	for k := 0; k < n; k++ {
		f.sched.Step(frame)
	}
}

func TestNew_RejectsIncompleteHost(t *testing.T) {
	_, err := engine.New(nil)
	assert.ErrorIs(t, err, engine.ErrNilHost)

	_, err = engine.New(&engine.BasicHost{Dispatcher: engine.NewDispatcher()})
	assert.ErrorIs(t, err, engine.ErrNilHost)
}

func TestStart_AttachesAndSchedules(t *testing.T) {
	f := desktop(t)

	assert.Equal(t, 6, f.host.Dispatcher.Len())
	assert.Equal(t, 1, f.sched.PendingFrames())

	s := f.inst.Snapshot()
	assert.True(t, s.Running)
	assert.Equal(t, 58, s.Nodes)
	assert.Equal(t, 42, s.Routes)
	assert.Equal(t, 82, s.MaxSignals)
	assert.Equal(t, 1, s.Stats.Rebuilds)
	assert.True(t, s.CanInteract)
	assert.NotEmpty(t, s.ID)

	assert.ErrorIs(t, f.inst.Start(), engine.ErrRunning)

	f.run(3)
	assert.Equal(t, 3, f.rec.Frames)
	assert.Equal(t, 1, f.sched.PendingFrames(), "each frame requests the next")
}

func TestFrame_DrawOrder(t *testing.T) {
	f := desktop(t)
	f.run(1)

	edges := f.inst.Snapshot().Edges
	kinds := f.rec.Kinds()
	require.Greater(t, len(kinds), edges+2)
	assert.Equal(t, paint.OpBegin, kinds[0])
	assert.Equal(t, paint.OpBackdrop, kinds[1])
	for k := 2; k < 2+edges; k++ {
		require.Equal(t, paint.OpStrokeCurve, kinds[k], "op %d", k)
	}
	// No signals yet: the core halo follows the edges directly.
	assert.Equal(t, paint.OpFillGlow, kinds[2+edges])
	assert.Equal(t, paint.OpEnd, kinds[len(kinds)-1])
	assert.Equal(t, 1, f.rec.Count(paint.OpStrokeCircle), "consent core ring")
}

func TestStop_ReleasesEverything(t *testing.T) {
	f := desktop(t)
	f.host.Resize(1000, 700)
	require.Equal(t, 1, f.sched.PendingTimers())

	f.inst.Stop()
	assert.Equal(t, 0, f.host.Dispatcher.Len())
	assert.Equal(t, 0, f.sched.PendingFrames())
	assert.Equal(t, 0, f.sched.PendingTimers())
	assert.False(t, f.inst.Snapshot().Running)

	f.inst.Stop()
	f.run(5)
	assert.Equal(t, 0, f.rec.Frames)

	// A stopped instance can be mounted again.
	require.NoError(t, f.inst.Start())
	assert.Equal(t, 6, f.host.Dispatcher.Len())
	assert.Equal(t, 1, f.sched.PendingFrames())
}

func TestReducedMotion_SingleStaticFrame(t *testing.T) {
	f := desktop(t, engine.WithReducedMotion(true))

	assert.Equal(t, 1, f.rec.Frames)
	assert.Equal(t, 0, f.sched.PendingFrames())

	// Static frames draw base positions: the core halo sits on the core.
	g, err := builder.Build(1280, 720, false, profile.DensityMedium, builder.NetworkSeed(42, 1280, 720, false))
	require.NoError(t, err)
	var halo *paint.Op
	for k := range f.rec.Ops {
		if f.rec.Ops[k].Kind == paint.OpFillGlow {
			halo = &f.rec.Ops[k]
			break
		}
	}
	require.NotNil(t, halo)
	assert.Equal(t, g.Core().Pos, halo.Points[0])

	// Pointer input and time change nothing.
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerMove, X: 1280, Y: 720})
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: 10, Y: 10})
	f.run(60)
	s := f.inst.Snapshot()
	assert.Equal(t, 1, f.rec.Frames)
	assert.Zero(t, s.Signals)
	assert.Zero(t, s.Parallax)
	assert.False(t, s.CanInteract)
	assert.True(t, s.Static)

	// Turning the preference off resumes the loop.
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventReducedMotion, Enabled: false})
	assert.Equal(t, 1, f.sched.PendingFrames())
	f.run(2)
	assert.Equal(t, 3, f.rec.Frames)

	// And back on: one more static frame, loop cancelled.
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventReducedMotion, Enabled: true})
	assert.Equal(t, 0, f.sched.PendingFrames())
	assert.Equal(t, 4, f.rec.Frames)
}

func TestFrames_SpawnByRate(t *testing.T) {
	f := desktop(t)
	f.run(250) // 4 s at 1.95 signals/s

	s := f.inst.Snapshot()
	assert.GreaterOrEqual(t, s.Stats.Spawned, 6)
	assert.LessOrEqual(t, s.Signals, s.MaxSignals)
	assert.Equal(t, s.Stats.Spawned, s.Signals+s.Stats.Completed+s.Stats.Faded)
}

func TestFrames_ClampLongGaps(t *testing.T) {
	f := desktop(t)
	// A 10 s stall advances the accumulator by at most 50 ms of rate.
	f.sched.Step(10 * time.Second)
	assert.Zero(t, f.inst.Snapshot().Stats.Spawned)
}

func TestBurst_CooldownAndBounds(t *testing.T) {
	f := desktop(t)
	down := func(x, y float64) {
		f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: x, Y: y})
	}

	down(640, 360)
	assert.Equal(t, 9, f.inst.Snapshot().Signals)

	f.sched.Advance(100 * time.Millisecond)
	down(640, 360)
	assert.Equal(t, 9, f.inst.Snapshot().Signals, "cooldown")

	f.sched.Advance(engine.BurstCooldown)
	down(-5, 360)
	assert.Equal(t, 9, f.inst.Snapshot().Signals, "outside bounds")

	down(1280, 720)
	s := f.inst.Snapshot()
	assert.Equal(t, 18, s.Signals)
	assert.Equal(t, 2, s.Stats.Bursts)
}

func TestBurst_PopulationCap(t *testing.T) {
	reg := metrics.NewRegistry()
	f := desktop(t, engine.WithMetrics(reg))

	for k := 0; k < 12; k++ {
		f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: 100, Y: 100})
		f.sched.Advance(engine.BurstCooldown)
	}
	s := f.inst.Snapshot()
	assert.Equal(t, 82, s.Signals)
	assert.Equal(t, 82, s.Stats.Spawned)
	assert.Equal(t, 108-82, s.Stats.Dropped)

	assert.Equal(t, 82.0, testutil.ToFloat64(reg.SignalsSpawnedTotal.WithLabelValues("burst")))
	assert.Equal(t, 26.0, testutil.ToFloat64(reg.SignalsDroppedTotal))

	f.run(1)
	assert.LessOrEqual(t, f.inst.Snapshot().Signals, 82)
}

func TestPointer_Parallax(t *testing.T) {
	f := desktop(t)

	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerMove, X: 1280, Y: 720})
	p := f.inst.Snapshot().Parallax
	assert.InDelta(t, 16, p.TargetX, 1e-9)
	assert.InDelta(t, 10, p.TargetY, 1e-9)

	f.run(1)
	p = f.inst.Snapshot().Parallax
	assert.InDelta(t, 16*0.068, p.X, 1e-9)
	assert.InDelta(t, 10*0.068, p.Y, 1e-9)

	f.run(200)
	p = f.inst.Snapshot().Parallax
	assert.InDelta(t, 16, p.X, 0.01)

	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerLeave})
	p = f.inst.Snapshot().Parallax
	assert.Zero(t, p.TargetX)
	assert.Zero(t, p.TargetY)
}

func TestPointer_InteractionGates(t *testing.T) {
	move := engine.Event{Kind: engine.EventPointerMove, X: 0, Y: 0}

	off := desktop(t, engine.WithInteractive(false))
	off.host.Dispatcher.Dispatch(move)
	assert.Zero(t, off.inst.Snapshot().Parallax)

	coarse := desktop(t, engine.WithPointerFine(false))
	coarse.host.Dispatcher.Dispatch(move)
	assert.Zero(t, coarse.inst.Snapshot().Parallax)

	phone := mount(t, engine.Bounds{Width: 390, Height: 844})
	phone.host.Dispatcher.Dispatch(move)
	s := phone.inst.Snapshot()
	assert.Zero(t, s.Parallax)
	assert.False(t, s.CanInteract)
	assert.Equal(t, 34, s.MaxSignals)

	// Losing the fine pointer mid-session resets parallax.
	f := desktop(t)
	f.host.Dispatcher.Dispatch(move)
	require.NotZero(t, f.inst.Snapshot().Parallax.TargetX)
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerCapability, Enabled: false})
	s = f.inst.Snapshot()
	assert.Zero(t, s.Parallax)
	assert.False(t, s.CanInteract)
}

func TestResize_Debounced(t *testing.T) {
	f := desktop(t)
	for _, w := range []float64{900, 950, 1000.7} {
		f.host.Resize(w, 640)
		f.sched.Advance(50 * time.Millisecond)
	}
	assert.Equal(t, 1, f.inst.Snapshot().Stats.Rebuilds)

	f.sched.Advance(scheduler.DefaultDebounce)
	s := f.inst.Snapshot()
	assert.Equal(t, 2, s.Stats.Rebuilds)
	assert.Equal(t, 1000.0, s.Width, "bounds are floored")
	assert.Equal(t, 640.0, s.Height)
}

func TestResize_VariantDebounce(t *testing.T) {
	f := desktop(t, engine.WithVariant(engine.VariantBackdrop))
	f.host.Resize(1000, 640)
	f.sched.Advance(scheduler.DefaultDebounce)
	assert.Equal(t, 1, f.inst.Snapshot().Stats.Rebuilds, "backdrop waits longer")
	f.sched.Advance(10 * time.Millisecond)
	assert.Equal(t, 2, f.inst.Snapshot().Stats.Rebuilds)

	assert.Equal(t, 130*time.Millisecond, engine.VariantBackdrop.ResizeDebounce())
	assert.Equal(t, scheduler.DefaultDebounce, engine.VariantConsent.ResizeDebounce())
	assert.Equal(t, 1.5, engine.VariantBackdrop.MaxDPR())
	assert.Equal(t, 2.0, engine.VariantConsent.MaxDPR())
}

func TestResize_DegenerateBoundsDeferred(t *testing.T) {
	f := mount(t, engine.Bounds{})

	s := f.inst.Snapshot()
	assert.Zero(t, s.Nodes)
	assert.Zero(t, s.Stats.Rebuilds)
	f.run(3)
	assert.Zero(t, f.rec.Frames, "nothing to draw")
	assert.Equal(t, 1, f.sched.PendingFrames(), "loop keeps running")

	f.host.Resize(800, 600)
	f.sched.Advance(scheduler.DefaultDebounce)
	assert.Positive(t, f.inst.Snapshot().Nodes)
	f.run(1)
	assert.Equal(t, 1, f.rec.Frames)
}

func TestPainterFailure_FallsBack(t *testing.T) {
	sched := scheduler.NewManual()
	host := engine.NewBasicHost(engine.Bounds{Width: 640, Height: 480}, nil, sched)
	host.SurfaceErr = errors.New("no context")

	obsCore, obs := observer.New(zap.DebugLevel)
	inst, err := engine.New(host, engine.WithLogger(zap.New(obsCore)))
	require.NoError(t, err)

	require.NoError(t, inst.Start())
	assert.Equal(t, 1, host.Fallbacks)
	require.NotNil(t, host.LastFallback)
	assert.Equal(t, 640.0, host.LastFallback.Width)
	assert.Empty(t, host.LastFallback.Stars)
	assert.Equal(t, 0, sched.PendingFrames())
	assert.Equal(t, 0, host.Dispatcher.Len())
	assert.True(t, inst.Snapshot().Fallback)
	assert.Len(t, obs.FilterMessage("painter unavailable, using static fallback").All(), 1)
	inst.Stop()
}

func TestPainterBeginError_SkipsFrame(t *testing.T) {
	f := desktop(t)
	f.rec.Fail = errors.New("lost surface")
	f.run(2)
	assert.Zero(t, f.rec.Frames)
	assert.Equal(t, 1, f.sched.PendingFrames())
}

func TestSetPolicy(t *testing.T) {
	reg := metrics.NewRegistry()
	f := desktop(t, engine.WithMetrics(reg))
	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: 1, Y: 1})
	require.Positive(t, f.inst.Snapshot().Signals)
	mixed := f.inst.Snapshot().BlockedRoutes
	assert.Positive(t, mixed)

	f.inst.SetPolicy(core.PolicyGranted)
	s := f.inst.Snapshot()
	assert.Equal(t, core.PolicyGranted, f.inst.Policy())
	assert.Zero(t, s.Signals)
	assert.Zero(t, s.BlockedRoutes)
	assert.Equal(t, 42, s.Routes)
	assert.Equal(t, 1, s.Stats.Rebuilds, "policy changes reuse the graph")

	f.inst.SetPolicy(core.PolicyDenied)
	assert.GreaterOrEqual(t, f.inst.Snapshot().BlockedRoutes, mixed)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PolicyChangesTotal.WithLabelValues("denied")))

	// Unknown and unchanged policies are ignored.
	f.inst.SetPolicy(core.Policy(9))
	f.inst.SetPolicy(core.PolicyDenied)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.PolicyChangesTotal.WithLabelValues("denied")))
}

func TestSetDensityAndSeed_Rebuild(t *testing.T) {
	f := desktop(t)
	f.inst.SetDensity(profile.DensityHigh)
	s := f.inst.Snapshot()
	assert.Equal(t, 2, s.Stats.Rebuilds)
	assert.Greater(t, s.Nodes, 58)
	assert.Equal(t, profile.DensityHigh, s.Density)

	f.inst.SetSeed(7)
	s = f.inst.Snapshot()
	assert.Equal(t, 3, s.Stats.Rebuilds)
	assert.Equal(t, int64(7), s.Seed)

	f.inst.SetSeed(7)
	f.inst.SetDensity(profile.Density(9))
	assert.Equal(t, 3, f.inst.Snapshot().Stats.Rebuilds)
}

func TestBackdropVariant(t *testing.T) {
	f := desktop(t, engine.WithVariant(engine.VariantBackdrop))

	s := f.inst.Snapshot()
	assert.Equal(t, engine.VariantBackdrop, s.Variant)
	assert.Equal(t, 6, s.Routes, "one route per source")
	assert.Equal(t, 34, s.MaxSignals)
	assert.Equal(t, 62, s.Nodes)

	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerDown, X: 10, Y: 10})
	assert.Zero(t, f.inst.Snapshot().Signals, "no click bursts")

	f.run(375) // 6 s covers at least one pulse and several interval spawns
	s = f.inst.Snapshot()
	assert.GreaterOrEqual(t, s.Stats.Spawned, 6)
	assert.GreaterOrEqual(t, s.Pulse, 0.0)
	assert.LessOrEqual(t, s.Pulse, 1.0)
	assert.Zero(t, s.Stats.Faded, "source → core traffic never blocks")
	assert.Zero(t, f.rec.Count(paint.OpStrokeCircle), "no core ring")

	f.host.Dispatcher.Dispatch(engine.Event{Kind: engine.EventPointerMove, X: 1280, Y: 720})
	p := f.inst.Snapshot().Parallax
	assert.InDelta(t, 10, p.TargetX, 1e-9)
	assert.InDelta(t, 7.2, p.TargetY, 1e-9)
}

// TestBackdropVariant_InteractionGates checks that touch-first and narrow
// contexts disable backdrop parallax the same way they do for the consent
// variant.
func TestBackdropVariant_InteractionGates(t *testing.T) {
	move := engine.Event{Kind: engine.EventPointerMove, X: 0, Y: 0}

	coarse := desktop(t, engine.WithVariant(engine.VariantBackdrop), engine.WithPointerFine(false))
	coarse.host.Dispatcher.Dispatch(move)
	s := coarse.inst.Snapshot()
	assert.False(t, s.CanInteract)
	assert.Zero(t, s.Parallax)

	phone := mount(t, engine.Bounds{Width: 390, Height: 844}, engine.WithVariant(engine.VariantBackdrop))
	phone.host.Dispatcher.Dispatch(move)
	s = phone.inst.Snapshot()
	assert.False(t, s.CanInteract)
	assert.Zero(t, s.Parallax)

	still := desktop(t, engine.WithVariant(engine.VariantBackdrop), engine.WithReducedMotion(true))
	still.host.Dispatcher.Dispatch(move)
	assert.Zero(t, still.inst.Snapshot().Parallax)
}

func TestLogsAndMetrics(t *testing.T) {
	obsCore, obs := observer.New(zap.DebugLevel)
	reg := metrics.NewRegistry()
	f := desktop(t, engine.WithLogger(zap.New(obsCore)), engine.WithMetrics(reg))
	f.run(10)

	entries := obs.FilterMessage("network rebuilt").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, int64(58), ctx["nodes"])
	assert.Equal(t, int64(42), ctx["routes"])
	assert.Equal(t, f.inst.ID(), ctx["instance"])

	assert.Equal(t, 10.0, testutil.ToFloat64(reg.FramesTotal.WithLabelValues("animated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.GraphRebuildsTotal))
	assert.Equal(t, 58.0, testutil.ToFloat64(reg.GraphNodes))
	assert.Equal(t, 42.0, testutil.ToFloat64(reg.RoutesTotal))
}

func TestOptions_Validation(t *testing.T) {
	assert.Panics(t, func() { engine.WithDensity(profile.Density(9)) })
	assert.Panics(t, func() { engine.WithPolicy(core.Policy(9)) })
	assert.Panics(t, func() { engine.WithVariant(engine.Variant(9)) })
	assert.Panics(t, func() { engine.WithDebounce(0) })
	assert.Panics(t, func() { engine.WithLogger(nil) })

	v, err := engine.ParseVariant("backdrop")
	require.NoError(t, err)
	assert.Equal(t, engine.VariantBackdrop, v)
	_, err = engine.ParseVariant("hero")
	assert.ErrorIs(t, err, engine.ErrUnknownVariant)
	assert.Equal(t, "consent", engine.VariantConsent.String())
}

func TestDispatcher(t *testing.T) {
	d := engine.NewDispatcher()
	var got []int
	removeA := d.AddListener(engine.EventResize, func(engine.Event) { got = append(got, 1) })
	d.AddListener(engine.EventResize, func(engine.Event) { got = append(got, 2) })
	d.AddListener(engine.EventPointerMove, func(engine.Event) { got = append(got, 3) })

	assert.Equal(t, 2, d.Dispatch(engine.Event{Kind: engine.EventResize}))
	assert.Equal(t, []int{1, 2}, got)

	removeA()
	removeA()
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 1, d.Dispatch(engine.Event{Kind: engine.EventResize}))
	assert.Equal(t, "pointer-down", engine.EventPointerDown.String())
}

// TestLoop_EndToEnd drives an instance on the real event loop.
func TestLoop_EndToEnd(t *testing.T) {
	loop := scheduler.NewLoop(scheduler.WithFPS(240))
	rec := &paint.Recorder{}
	host := engine.NewBasicHost(engine.Bounds{Width: 800, Height: 600}, rec, loop)
	inst, err := engine.New(host)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var startErr error
	require.NoError(t, loop.Call(ctx, func() { startErr = inst.Start() }))
	require.NoError(t, startErr)

	assert.Eventually(t, func() bool {
		frames := 0
		_ = loop.Call(ctx, func() { frames = inst.Snapshot().Stats.Frames })
		return frames >= 5
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, loop.Call(ctx, inst.Stop))
	loop.Close()
	assert.Equal(t, 0, host.Dispatcher.Len())
}
