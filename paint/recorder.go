package paint

import "github.com/katalvlaran/consentflow/geom"

// OpKind names a Painter call.
type OpKind uint8

const (
	OpBegin OpKind = iota
	OpBackdrop
	OpStrokeCurve
	OpFillCircle
	OpFillGlow
	OpStrokeCircle
	OpEnd
)

var opNames = [...]string{"begin", "backdrop", "stroke-curve", "fill-circle", "fill-glow", "stroke-circle", "end"}

// String returns the op name.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "unknown"
}

// Op is one recorded call. Unused fields stay zero.
type Op struct {
	Kind     OpKind
	Points   []geom.Point
	Radius   float64
	Color    Color
	Stroke   Stroke
	Stops    []Stop
	Backdrop *Backdrop
}

// Recorder is a Painter that stores every call.
type Recorder struct {
	Ops    []Op
	Frames int
	// Fail, when set, is returned from Begin.
	Fail error
}

var _ Painter = (*Recorder)(nil)

// Begin implements Painter; it clears the previous frame.
func (r *Recorder) Begin(width, height float64) error {
	if r.Fail != nil {
		return r.Fail
	}
	r.Ops = r.Ops[:0]
	r.Ops = append(r.Ops, Op{Kind: OpBegin, Points: []geom.Point{geom.Pt(width, height)}})
	return nil
}

// Backdrop implements Painter.
func (r *Recorder) Backdrop(b *Backdrop) {
	r.Ops = append(r.Ops, Op{Kind: OpBackdrop, Backdrop: b})
}

// StrokeCurve implements Painter.
func (r *Recorder) StrokeCurve(from, control, to geom.Point, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCurve, Points: []geom.Point{from, control, to}, Stroke: s, Color: s.Color})
}

// FillCircle implements Painter.
func (r *Recorder) FillCircle(c geom.Point, radius float64, col Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Points: []geom.Point{c}, Radius: radius, Color: col})
}

// FillGlow implements Painter.
func (r *Recorder) FillGlow(c geom.Point, radius float64, stops []Stop) {
	op := Op{Kind: OpFillGlow, Points: []geom.Point{c}, Radius: radius, Stops: append([]Stop(nil), stops...)}
	if len(stops) > 0 {
		op.Color = stops[0].Color
	}
	r.Ops = append(r.Ops, op)
}

// StrokeCircle implements Painter.
func (r *Recorder) StrokeCircle(c geom.Point, radius float64, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, Points: []geom.Point{c}, Radius: radius, Stroke: s, Color: s.Color})
}

// End implements Painter.
func (r *Recorder) End() error {
	r.Ops = append(r.Ops, Op{Kind: OpEnd})
	r.Frames++
	return nil
}

// Count returns how many ops of kind the last frame holds.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Kinds returns the op sequence of the last frame.
func (r *Recorder) Kinds() []OpKind {
	out := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Kind
	}
	return out
}
