// SPDX-License-Identifier: MIT
// Package: consentflow/engine
//
// instance.go - Instance lifecycle: New, Start, Stop, listeners and the
// public setters.

package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/profile"
	"github.com/katalvlaran/consentflow/rng"
	"github.com/katalvlaran/consentflow/scheduler"
	"github.com/katalvlaran/consentflow/signal"
)

type state uint8

const (
	stateIdle state = iota
	stateRunning
	stateFallback
	stateStopped
)

// pointer is the last known pointer position in surface coordinates.
type pointer struct {
	X, Y   float64
	Active bool
}

// Instance is one mounted animation.
type Instance struct {
	id     string
	opts   Options
	host   Host
	logger *zap.Logger
	style  style

	frames  scheduler.Frames
	timers  scheduler.Timers
	painter paint.Painter
	resize  *scheduler.Debouncer

	env  profile.Environment
	net  *network
	pool *signal.Pool
	anim *rng.Source

	render      []geom.Point
	parallax    Parallax
	pointer     pointer
	accumulator float64
	lastFrame   time.Duration

	lastBurst  time.Duration
	burstFired bool

	nextSpawnAt time.Duration
	nextPulseAt time.Duration
	pulse       float64

	cancel   scheduler.Cancel
	removers []func()
	state    state
	stats    Stats
}

// New validates host and prepares an idle Instance. Nothing is attached or
// scheduled until Start.
func New(host Host, opts ...Option) (*Instance, error) {
	if host == nil || host.Frames() == nil || host.Timers() == nil || host.Events() == nil {
		return nil, ErrNilHost
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Debounce == 0 {
		o.Debounce = o.Variant.ResizeDebounce()
	}

	id := uuid.NewString()
	inst := &Instance{
		id:     id,
		opts:   o,
		host:   host,
		logger: o.Logger.With(zap.String("instance", id), zap.Stringer("variant", o.Variant)),
		style:  styleFor(o.Variant),
		frames: host.Frames(),
		timers: host.Timers(),
		env: profile.Environment{
			PointerFine:   o.PointerFine,
			ReducedMotion: o.ReducedMotion,
			Interactive:   o.Interactive,
		},
		pool: signal.NewPool(0),
	}
	inst.resize = scheduler.NewDebouncer(inst.timers, o.Debounce)
	inst.resetAnimation()

	return inst, nil
}

// ID returns the instance identifier used in logs.
func (i *Instance) ID() string { return i.id }

// Start mounts the instance on its host.
//
// Steps:
//  1. Acquire the painter; on failure hand the host a static backdrop and
//     return without scheduling anything.
//  2. Attach every listener.
//  3. Size the network for the current bounds.
//  4. Paint one static frame (reduced motion) or request the first frame.
func (i *Instance) Start() error {
	if i.state == stateRunning {
		return ErrRunning
	}

	// 1) Surface.
	p, err := i.host.Painter()
	if err != nil || p == nil {
		i.logger.Warn("painter unavailable, using static fallback", zap.Error(err))
		i.env.Width, i.env.Height = i.flooredBounds()
		i.host.Fallback(i.fallbackBackdrop())
		i.state = stateFallback
		return nil
	}
	i.painter = p

	// 2) Listeners.
	target := i.host.Events()
	for _, kind := range eventKinds {
		i.removers = append(i.removers, target.AddListener(kind, i.handle))
	}

	// 3) Initial sizing; static frames wait for step 4.
	i.applyResize()
	i.state = stateRunning

	// 4) First frame.
	i.lastFrame = i.timers.Now()
	if i.env.ReducedMotion {
		i.drawStatic()
	} else {
		i.schedule()
	}
	i.logger.Debug("instance started",
		zap.Float64("width", i.env.Width),
		zap.Float64("height", i.env.Height),
		zap.Bool("reduced_motion", i.env.ReducedMotion),
	)

	return nil
}

// Stop cancels the pending frame and resize timer and detaches every
// listener. It is safe to call more than once.
func (i *Instance) Stop() {
	if i.state == stateStopped || i.state == stateIdle {
		return
	}
	i.unschedule()
	i.resize.Stop()
	for _, remove := range i.removers {
		remove()
	}
	i.removers = nil
	i.state = stateStopped
	i.logger.Debug("instance stopped", zap.Int("frames", i.stats.Frames))
}

// SetPolicy switches the consent policy. Routes are recomputed on the
// current graph and live signals are dropped.
func (i *Instance) SetPolicy(p core.Policy) {
	if p > core.PolicyDenied || p == i.opts.Policy {
		return
	}
	i.opts.Policy = p
	i.opts.Metrics.RecordPolicyChange(p.String())
	if i.net != nil {
		i.net = i.net.withRoutes(i.routesFor(i.net.graph))
		i.recordRoutes()
	}
	i.resetSignals()
	i.logger.Info("consent policy changed", zap.Stringer("policy", p))
	if i.state == stateRunning && i.env.ReducedMotion {
		i.drawStatic()
	}
}

// SetDensity switches the density tier and rebuilds.
func (i *Instance) SetDensity(d profile.Density) {
	if !d.Valid() || d == i.opts.Density {
		return
	}
	i.opts.Density = d
	i.rebuildNow()
}

// SetSeed switches the layout seed, restarts the animation random source
// and rebuilds.
func (i *Instance) SetSeed(seed int64) {
	if seed == i.opts.Seed {
		return
	}
	i.opts.Seed = seed
	i.resetAnimation()
	i.rebuildNow()
}

// Policy returns the active consent policy.
func (i *Instance) Policy() core.Policy { return i.opts.Policy }

// Snapshot returns the current state summary.
func (i *Instance) Snapshot() Snapshot {
	s := Snapshot{
		ID:          i.id,
		Variant:     i.opts.Variant,
		Policy:      i.opts.Policy,
		Density:     i.opts.Density,
		Seed:        i.opts.Seed,
		Running:     i.state == stateRunning && i.cancel != nil,
		Fallback:    i.state == stateFallback,
		Static:      i.env.ReducedMotion,
		Width:       i.env.Width,
		Height:      i.env.Height,
		CanInteract: i.canInteract(),
		Signals:     i.pool.Len(),
		MaxSignals:  i.pool.Max,
		Parallax:    i.parallax,
		Pulse:       i.pulse,
		Stats:       i.stats,
	}
	if i.net != nil {
		s.Nodes = i.net.graph.Order()
		s.Edges = i.net.graph.Size()
		s.Routes = len(i.net.routes)
		s.BlockedRoutes = i.net.summary.Blocked
	}

	return s
}

// handle dispatches host events.
func (i *Instance) handle(ev Event) {
	if i.state != stateRunning {
		return
	}
	switch ev.Kind {
	case EventPointerMove:
		i.onPointerMove(ev.X, ev.Y)
	case EventPointerLeave:
		i.pointer.Active = false
		i.parallax.TargetX, i.parallax.TargetY = 0, 0
	case EventPointerDown:
		i.onPointerDown(ev.X, ev.Y)
	case EventResize:
		i.resize.Trigger(i.applyResize)
	case EventReducedMotion:
		i.onReducedMotion(ev.Enabled)
	case EventPointerCapability:
		i.env.PointerFine = ev.Enabled
		if !i.canInteract() {
			i.pointer.Active = false
			i.parallax.Reset()
		}
	}
}

func (i *Instance) canInteract() bool {
	return i.env.CanInteract()
}

func (i *Instance) onPointerMove(x, y float64) {
	if !i.canInteract() {
		return
	}
	b := i.host.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	i.pointer = pointer{X: x, Y: y, Active: b.Contains(x, y)}
	nx := (x/b.Width - 0.5) * 2
	ny := (y/b.Height - 0.5) * 2
	i.parallax.TargetX = nx * i.style.targetScale[0]
	i.parallax.TargetY = ny * i.style.targetScale[1]
}

func (i *Instance) onPointerDown(x, y float64) {
	if i.net == nil || i.opts.Variant != VariantConsent || !i.canInteract() || i.env.ReducedMotion {
		return
	}
	now := i.timers.Now()
	if i.burstFired && now-i.lastBurst < BurstCooldown {
		return
	}
	if !i.host.Bounds().Contains(x, y) {
		return
	}
	i.lastBurst, i.burstFired = now, true
	i.stats.Bursts++
	for n := 0; n < i.net.rc.BurstCount; n++ {
		i.spawn(true)
	}
}

func (i *Instance) onReducedMotion(on bool) {
	if on == i.env.ReducedMotion {
		return
	}
	i.env.ReducedMotion = on
	i.pointer.Active = false
	i.parallax.Reset()
	i.resetSignals()
	if on {
		i.unschedule()
		i.drawStatic()
		return
	}
	i.lastFrame = i.timers.Now()
	i.schedule()
}

// schedule requests the next frame unless one is pending.
func (i *Instance) schedule() {
	if i.cancel == nil {
		i.cancel = i.frames.RequestFrame(i.onFrame)
	}
}

func (i *Instance) unschedule() {
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}
}

// resetAnimation restarts the animation random source from the seed.
func (i *Instance) resetAnimation() {
	i.anim = rng.New(i.opts.Seed + i.style.rngOffset)
}

// resetSignals drops live signals and spawn bookkeeping.
func (i *Instance) resetSignals() {
	i.pool.Clear()
	i.accumulator = 0
	if i.opts.Variant == VariantBackdrop {
		now := i.timers.Now()
		i.nextSpawnAt = now + msRange(i.anim, 350, 900)
		i.nextPulseAt = now + msRange(i.anim, 3000, 6000)
		i.pulse = 0
	}
}

// msRange draws a duration uniformly from [lo, hi) milliseconds.
func msRange(src rng.Generator, lo, hi float64) time.Duration {
	return time.Duration(rng.Range(src, lo, hi) * float64(time.Millisecond))
}
