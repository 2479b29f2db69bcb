package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/metrics"
	"github.com/katalvlaran/consentflow/profile"
	"github.com/katalvlaran/consentflow/scheduler"
)

// Sentinel errors.
var (
	// ErrNilHost is returned by New for a nil Host or one without scheduling.
	ErrNilHost = errors.New("engine: host is nil or incomplete")
	// ErrRunning is returned by Start on a running instance.
	ErrRunning = errors.New("engine: instance already running")
	// ErrUnknownVariant is returned by ParseVariant.
	ErrUnknownVariant = errors.New("engine: unknown variant")
)

// Timing constants.
const (
	// MaxFrameDelta caps the per-frame step after stalls.
	MaxFrameDelta = 50 * time.Millisecond
	// BurstCooldown throttles click bursts.
	BurstCooldown = 800 * time.Millisecond
	// HoverRadius is the pointer distance within which nodes glow brighter.
	HoverRadius = 70.0
)

// Variant selects the animation flavour.
type Variant uint8

const (
	// VariantConsent routes every source to every destination under the
	// consent policy and fades signals on blocked edges.
	VariantConsent Variant = iota
	// VariantBackdrop is the decorative flavour: source → core traffic on a
	// timer and a periodic core pulse.
	VariantBackdrop
)

// String returns the variant token.
func (v Variant) String() string {
	switch v {
	case VariantConsent:
		return "consent"
	case VariantBackdrop:
		return "backdrop"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ResizeDebounce is the variant's default resize debounce window.
func (v Variant) ResizeDebounce() time.Duration {
	if v == VariantBackdrop {
		return 130 * time.Millisecond
	}
	return scheduler.DefaultDebounce
}

// MaxDPR caps the device-pixel ratio painters should render this variant at.
func (v Variant) MaxDPR() float64 {
	if v == VariantBackdrop {
		return 1.5
	}
	return 2
}

// ParseVariant maps "consent" or "backdrop" onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "consent", "":
		return VariantConsent, nil
	case "backdrop":
		return VariantBackdrop, nil
	default:
		return VariantConsent, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Bounds is the host surface size in logical pixels.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether (x, y) lies on the surface, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && y >= 0 && x <= b.Width && y <= b.Height
}

// Parallax is the pointer-driven offset, eased toward its target.
type Parallax struct {
	X, Y             float64
	TargetX, TargetY float64
}

// Ease moves the offset a fraction k of the way to the target.
func (p *Parallax) Ease(k float64) {
	p.X += (p.TargetX - p.X) * k
	p.Y += (p.TargetY - p.Y) * k
}

// Reset zeroes offset and target.
func (p *Parallax) Reset() { *p = Parallax{} }

// Options configures an Instance.
type Options struct {
	Seed          int64
	Density       profile.Density
	Policy        core.Policy
	Variant       Variant
	Interactive   bool
	ReducedMotion bool
	PointerFine   bool

	// Debounce is the resize debounce window; zero selects
	// Variant.ResizeDebounce.
	Debounce time.Duration

	Logger  *zap.Logger
	Metrics *metrics.Registry
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions mirrors the hero defaults: seed 42, medium density, mixed
// consent, interactive, fine pointer, motion allowed.
func DefaultOptions() Options {
	return Options{
		Seed:        42,
		Density:     profile.DefaultDensity,
		Policy:      core.DefaultPolicy,
		Variant:     VariantConsent,
		Interactive: true,
		PointerFine: true,
		Logger:      zap.NewNop(),
	}
}

// WithSeed sets the layout seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithDensity sets the density tier. Panics on an invalid tier.
func WithDensity(d profile.Density) Option {
	if !d.Valid() {
		panic(fmt.Sprintf("engine: WithDensity(%d): invalid tier", d))
	}
	return func(o *Options) { o.Density = d }
}

// WithPolicy sets the consent policy. Panics on an unknown policy.
func WithPolicy(p core.Policy) Option {
	if p > core.PolicyDenied {
		panic(fmt.Sprintf("engine: WithPolicy(%d): unknown policy", p))
	}
	return func(o *Options) { o.Policy = p }
}

// WithVariant selects the animation flavour. Panics on an unknown variant.
func WithVariant(v Variant) Option {
	if v > VariantBackdrop {
		panic(fmt.Sprintf("engine: WithVariant(%d): unknown variant", v))
	}
	return func(o *Options) { o.Variant = v }
}

// WithInteractive enables or disables pointer parallax and bursts.
func WithInteractive(on bool) Option {
	return func(o *Options) { o.Interactive = on }
}

// WithReducedMotion sets the initial reduced-motion preference.
func WithReducedMotion(on bool) Option {
	return func(o *Options) { o.ReducedMotion = on }
}

// WithPointerFine sets the initial pointer capability.
func WithPointerFine(fine bool) Option {
	return func(o *Options) { o.PointerFine = fine }
}

// WithDebounce sets the resize debounce window. Panics on d ≤ 0.
func WithDebounce(d time.Duration) Option {
	if d <= 0 {
		panic("engine: WithDebounce must be positive")
	}
	return func(o *Options) { o.Debounce = d }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("engine: WithLogger(nil)")
	}
	return func(o *Options) { o.Logger = l }
}

// WithMetrics records frame, signal and rebuild metrics into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *Options) { o.Metrics = r }
}

// Stats counts what an instance has done since it was created.
type Stats struct {
	Frames    int
	Rebuilds  int
	Spawned   int
	Dropped   int
	Completed int
	Faded     int
	Bursts    int
}

// Snapshot is a read-only view of an instance for hosts and tests.
type Snapshot struct {
	ID       string
	Variant  Variant
	Policy   core.Policy
	Density  profile.Density
	Seed     int64
	Running  bool
	Fallback bool
	Static   bool

	Width, Height float64
	CanInteract   bool
	Nodes         int
	Edges         int
	Routes        int
	BlockedRoutes int
	Signals       int
	MaxSignals    int
	Parallax      Parallax
	Pulse         float64
	Stats         Stats
}
