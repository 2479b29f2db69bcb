// SPDX-License-Identifier: MIT
// Package: consentflow/paint/raster
//
// raster.go - paint.Painter over *image.RGBA using golang.org/x/image/vector.
//
// Contract:
//   - Every shape is a filled path: circles as four cubic arcs, strokes as
//     polygons around a flattened curve (dashes become separate polygons).
//   - The backdrop is rendered once at logical size and scaled to the
//     device-pixel ratio with x/image/draw; it is re-rendered only when a
//     different *paint.Backdrop arrives.
//   - Not safe for concurrent use; use one Painter per goroutine.

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/paint"
)

// MaxDPR caps the device-pixel ratio.
const MaxDPR = 2

// curveSteps is the flattening resolution of stroked curves.
const curveSteps = 24

// circleKappa places cubic control points for a quarter circle.
const circleKappa = 0.5522847498

var (
	// ErrNotStarted is returned by End without a matching Begin.
	ErrNotStarted = errors.New("raster: End without Begin")
	// ErrBadSize is returned by Begin for non-finite sizes.
	ErrBadSize = errors.New("raster: invalid canvas size")
)

// Painter rasterizes frames into an RGBA image.
type Painter struct {
	dpr    float64
	img    *image.RGBA
	z      *vector.Rasterizer
	active bool

	cacheOf *paint.Backdrop
	cache   *image.RGBA
}

var _ paint.Painter = (*Painter)(nil)

// New returns a Painter at the given device-pixel ratio, clamped to [1, MaxDPR].
func New(dpr float64) *Painter {
	if math.IsNaN(dpr) || dpr < 1 {
		dpr = 1
	}
	if dpr > MaxDPR {
		dpr = MaxDPR
	}
	return &Painter{dpr: dpr}
}

// DPR returns the device-pixel ratio in use.
func (p *Painter) DPR() float64 { return p.dpr }

// Image returns the last rendered frame.
func (p *Painter) Image() *image.RGBA { return p.img }

// Begin allocates (or clears) the canvas for a width×height logical frame.
func (p *Painter) Begin(width, height float64) error {
	if math.IsNaN(width) || math.IsNaN(height) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("Begin: %gx%g: %w", width, height, ErrBadSize)
	}
	w := max(1, int(math.Floor(width*p.dpr)))
	h := max(1, int(math.Floor(height*p.dpr)))
	if p.img == nil || p.img.Rect.Dx() != w || p.img.Rect.Dy() != h {
		p.img = image.NewRGBA(image.Rect(0, 0, w, h))
		p.z = vector.NewRasterizer(w, h)
	} else {
		clear(p.img.Pix)
	}
	p.active = true

	return nil
}

// Backdrop paints b, re-rendering the cached layer when b changes.
func (p *Painter) Backdrop(b *paint.Backdrop) {
	if b == nil {
		return
	}
	if b != p.cacheOf {
		p.cache = renderBackdrop(b)
		p.cacheOf = b
	}
	if p.dpr == 1 && p.cache.Rect.Eq(p.img.Rect) {
		xdraw.Draw(p.img, p.img.Rect, p.cache, image.Point{}, xdraw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(p.img, p.img.Rect, p.cache, p.cache.Rect, xdraw.Src, nil)
}

// StrokeCurve implements paint.Painter.
func (p *Painter) StrokeCurve(from, control, to geom.Point, s paint.Stroke) {
	if s.Color.A <= 0 || s.Width <= 0 {
		return
	}
	pts := make([]geom.Point, curveSteps+1)
	for i := range pts {
		pts[i] = geom.QuadraticBezierPoint(from, control, to, float64(i)/curveSteps).Scale(p.dpr)
	}
	p.strokePolyline(pts, s.Width*p.dpr, scaleDash(s.Dash, p.dpr), s.Color)
}

// FillCircle implements paint.Painter.
func (p *Painter) FillCircle(c geom.Point, r float64, col paint.Color) {
	if col.A <= 0 || r <= 0 {
		return
	}
	p.circlePath(c.Scale(p.dpr), r*p.dpr)
	p.fill(image.NewUniform(col.NRGBA()))
}

// FillGlow implements paint.Painter.
func (p *Painter) FillGlow(c geom.Point, r float64, stops []paint.Stop) {
	if r <= 0 || len(stops) == 0 {
		return
	}
	center := c.Scale(p.dpr)
	p.circlePath(center, r*p.dpr)
	p.fill(&radial{center: center, radius: r * p.dpr, stops: stops, bounds: p.img.Rect})
}

// StrokeCircle implements paint.Painter.
func (p *Painter) StrokeCircle(c geom.Point, r float64, s paint.Stroke) {
	if s.Color.A <= 0 || r <= 0 || s.Width <= 0 {
		return
	}
	const steps = 48
	pts := make([]geom.Point, steps+1)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / steps
		pts[i] = geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a)).Scale(p.dpr)
	}
	p.strokePolyline(pts, s.Width*p.dpr, scaleDash(s.Dash, p.dpr), s.Color)
}

// End finishes the frame.
func (p *Painter) End() error {
	if !p.active {
		return ErrNotStarted
	}
	p.active = false
	return nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("EncodePNG: %w", err)
	}
	return nil
}

// fill draws the accumulated path with src and resets the rasterizer.
func (p *Painter) fill(src image.Image) {
	p.z.Draw(p.img, p.img.Rect, src, image.Point{})
	p.z.Reset(p.img.Rect.Dx(), p.img.Rect.Dy())
}

func (p *Painter) circlePath(c geom.Point, r float64) {
	k := r * circleKappa
	x, y := float32(c.X), float32(c.Y)
	rr, kk := float32(r), float32(k)
	p.z.MoveTo(x+rr, y)
	p.z.CubeTo(x+rr, y+kk, x+kk, y+rr, x, y+rr)
	p.z.CubeTo(x-kk, y+rr, x-rr, y+kk, x-rr, y)
	p.z.CubeTo(x-rr, y-kk, x-kk, y-rr, x, y-rr)
	p.z.CubeTo(x+kk, y-rr, x+rr, y-kk, x+rr, y)
	p.z.ClosePath()
}

// strokePolyline fills one polygon per dash (or one for a solid line).
func (p *Painter) strokePolyline(pts []geom.Point, width float64, dash []float64, col paint.Color) {
	for _, run := range dashRuns(pts, dash) {
		if len(run) < 2 {
			continue
		}
		outline(p.z, run, width/2)
	}
	p.fill(image.NewUniform(col.NRGBA()))
}

// outline adds the closed polygon around pts offset by ±half along normals.
func outline(z *vector.Rasterizer, pts []geom.Point, half float64) {
	left := make([]geom.Point, len(pts))
	right := make([]geom.Point, len(pts))
	for i := range pts {
		var dir geom.Point
		switch {
		case i == 0:
			dir = pts[1].Sub(pts[0])
		case i == len(pts)-1:
			dir = pts[i].Sub(pts[i-1])
		default:
			dir = pts[i+1].Sub(pts[i-1])
		}
		n := dir.Normal().Scale(half)
		left[i] = pts[i].Add(n)
		right[i] = pts[i].Sub(n)
	}
	z.MoveTo(float32(left[0].X), float32(left[0].Y))
	for _, q := range left[1:] {
		z.LineTo(float32(q.X), float32(q.Y))
	}
	for i := len(right) - 1; i >= 0; i-- {
		z.LineTo(float32(right[i].X), float32(right[i].Y))
	}
	z.ClosePath()
}

// dashRuns splits a polyline into the "on" runs of dash.
func dashRuns(pts []geom.Point, dash []float64) [][]geom.Point {
	if len(dash) == 0 {
		return [][]geom.Point{pts}
	}
	var (
		runs   [][]geom.Point
		cur    = []geom.Point{pts[0]}
		idx    int
		remain = dash[0]
		on     = true
	)
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		segLen := geom.Distance(a, b)
		pos := 0.0
		for segLen-pos > remain {
			pos += remain
			q := geom.LerpPoint(a, b, pos/segLen)
			if on {
				runs = append(runs, append(cur, q))
				cur = nil
			} else {
				cur = []geom.Point{q}
			}
			on = !on
			idx = (idx + 1) % len(dash)
			remain = dash[idx]
			if remain <= 0 {
				remain = 1e-9
			}
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

func scaleDash(d []float64, k float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	out := make([]float64, len(d))
	for i, v := range d {
		out[i] = v * k
	}
	return out
}

// renderBackdrop draws b at logical resolution.
func renderBackdrop(b *paint.Backdrop) *image.RGBA {
	w := max(1, int(math.Floor(b.Width)))
	h := max(1, int(math.Floor(b.Height)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, b.GradientAt(geom.Pt(float64(x)+0.5, float64(y)+0.5)).NRGBA())
		}
	}

	sub := &Painter{dpr: 1, img: img, z: vector.NewRasterizer(w, h)}
	for _, s := range b.Stars {
		sub.FillCircle(s.Pos, s.Radius, s.Color)
	}
	for _, g := range b.Glows {
		xdraw.Draw(img, img.Rect, &radial{center: g.Center, radius: g.Radius, stops: g.Stops(), bounds: img.Rect}, image.Point{}, xdraw.Over)
	}

	return img
}

// radial is an image.Image sampling a radial gradient.
type radial struct {
	center geom.Point
	radius float64
	stops  []paint.Stop
	bounds image.Rectangle
}

func (r *radial) ColorModel() color.Model { return color.NRGBAModel }

func (r *radial) Bounds() image.Rectangle { return r.bounds }

func (r *radial) At(x, y int) color.Color {
	d := geom.Distance(geom.Pt(float64(x)+0.5, float64(y)+0.5), r.center)
	return paint.Sample(r.stops, d/r.radius).NRGBA()
}
