// Package geom holds the small amount of planar math shared by graph layout
// and signal motion: distances, interpolation and quadratic Bézier curves.
//
// All functions are pure and allocation-free.
package geom

import "math"

// DefaultBezierSamples is the polyline resolution used when callers have
// no better estimate.
const DefaultBezierSamples = 18

// minCurveLength floors arc lengths so that speed/length ratios stay finite.
const minCurveLength = 1.0

// Point is a position or offset in canvas pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale returns p·k.
func (p Point) Scale(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Len returns the Euclidean norm of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Normal returns p rotated by +90° and scaled to unit length.
// The zero vector has no direction and maps to the zero vector.
func (p Point) Normal() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}

	return Point{X: -p.Y / l, Y: p.X / l}
}

// DistanceSquared returns |a-b|².
func DistanceSquared(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y

	return dx*dx + dy*dy
}

// Distance returns |a-b|.
func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates component-wise between a and b.
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// QuadraticBezierPoint evaluates the curve p0→c→p1 at t by De Casteljau's
// construction. The result is exactly p0 at t=0 and exactly p1 at t=1.
func QuadraticBezierPoint(p0, c, p1 Point, t float64) Point {
	switch t {
	case 0:
		return p0
	case 1:
		return p1
	}
	a := LerpPoint(p0, c, t)
	b := LerpPoint(c, p1, t)

	return LerpPoint(a, b, t)
}

// QuadraticBezierLength approximates the arc length of p0→c→p1 by summing a
// polyline through samples+1 evenly spaced points. samples < 1 is treated
// as 1 (the chord). The result is never below 1.
// Complexity: O(samples).
func QuadraticBezierLength(p0, c, p1 Point, samples int) float64 {
	if samples < 1 {
		samples = 1
	}
	var (
		length float64
		prev   = p0
		cur    Point
	)
	for i := 1; i <= samples; i++ {
		cur = QuadraticBezierPoint(p0, c, p1, float64(i)/float64(samples))
		length += Distance(prev, cur)
		prev = cur
	}

	return math.Max(length, minCurveLength)
}
