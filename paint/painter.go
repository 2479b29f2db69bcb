package paint

import "github.com/katalvlaran/consentflow/geom"

// Painter receives one frame of drawing commands.
type Painter interface {
	// Begin starts a frame of the given logical size.
	Begin(width, height float64) error
	// Backdrop paints the static layer. The same pointer is passed every
	// frame until the viewport changes.
	Backdrop(b *Backdrop)
	// StrokeCurve strokes the quadratic Bézier from → control → to.
	StrokeCurve(from, control, to geom.Point, s Stroke)
	// FillCircle fills a solid disc.
	FillCircle(c geom.Point, r float64, col Color)
	// FillGlow fills a disc with a radial gradient from c outwards.
	FillGlow(c geom.Point, r float64, stops []Stop)
	// StrokeCircle outlines a circle.
	StrokeCircle(c geom.Point, r float64, s Stroke)
	// End completes the frame.
	End() error
}
