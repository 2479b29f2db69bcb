// SPDX-License-Identifier: MIT
// Package: consentflow/paint
//
// backdrop.go - static background: diagonal gradient, star field, glows.
//
// A Backdrop is built once per resize and cached by painters; only its
// pointer identity changes when the viewport does.

package paint

import (
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/rng"
)

// Star is one point of the star field.
type Star struct {
	Pos    geom.Point
	Radius float64
	Color  Color
}

// Glow is a radial gradient filling the whole canvas.
type Glow struct {
	Center geom.Point
	Radius float64
	Color  Color // alpha at the centre, fading to transparent
}

// Stops returns the glow's gradient.
func (g Glow) Stops() []Stop {
	return []Stop{{Offset: 0, Color: g.Color}, {Offset: 1, Color: Transparent}}
}

// Backdrop is the static layer painted under everything else.
type Backdrop struct {
	Width, Height float64
	// Gradient runs from the top-left to the bottom-right corner.
	Gradient []Stop
	Stars    []Star
	Glows    []Glow
}

// GradientAt samples the diagonal gradient at p.
func (b *Backdrop) GradientAt(p geom.Point) Color {
	d := b.Width*b.Width + b.Height*b.Height
	if d == 0 {
		return Sample(b.Gradient, 0)
	}
	return Sample(b.Gradient, (p.X*b.Width+p.Y*b.Height)/d)
}

// GlowSpec places a glow relative to the viewport: centre at (X·w, Y·h),
// radius R·w.
type GlowSpec struct {
	X, Y, R float64
	Color   Color
}

// Theme describes how a variant's backdrop looks.
type Theme struct {
	Gradient   []Stop
	StarColor  Color
	StarRadius [2]float64
	StarAlpha  [2]float64
	Glows      []GlowSpec
	SignalTeal Color
	SignalBlue Color
	TrailColor Color
	TrailAlpha float64
}

// Palette shared by both variants.
var (
	SignalTeal = RGBA(24, 182, 164, 0.95)
	SignalBlue = RGBA(59, 130, 246, 0.94)
)

// ConsentTheme is the consent-aware hero look.
func ConsentTheme() Theme {
	return Theme{
		Gradient: []Stop{
			{Offset: 0, Color: MustHex("#050b21")},
			{Offset: 0.52, Color: MustHex("#101d55")},
			{Offset: 1, Color: MustHex("#070f2a")},
		},
		StarColor:  RGBA(255, 255, 255, 1),
		StarRadius: [2]float64{0.5, 1.9},
		StarAlpha:  [2]float64{0.2, 0.72},
		Glows: []GlowSpec{
			{X: 0.18, Y: 0.2, R: 0.42, Color: RGBA(59, 130, 246, 0.14)},
			{X: 0.78, Y: 0.3, R: 0.34, Color: RGBA(24, 182, 164, 0.1)},
		},
		SignalTeal: SignalTeal,
		SignalBlue: SignalBlue,
		TrailColor: RGBA(138, 224, 215, 1),
		TrailAlpha: 0.22,
	}
}

// BackdropTheme is the decorative backdrop look.
func BackdropTheme() Theme {
	return Theme{
		Gradient: []Stop{
			{Offset: 0, Color: MustHex("#0B1220")},
			{Offset: 0.5, Color: MustHex("#121C4D")},
			{Offset: 1, Color: MustHex("#0D163F")},
		},
		StarColor:  RGBA(182, 204, 255, 1),
		StarRadius: [2]float64{0.4, 1.4},
		StarAlpha:  [2]float64{0.16, 0.5},
		Glows: []GlowSpec{
			{X: 0.18, Y: 0.2, R: 0.42, Color: RGBA(59, 130, 246, 0.14)},
			{X: 0.8, Y: 0.28, R: 0.34, Color: RGBA(24, 182, 164, 0.1)},
		},
		SignalTeal: RGBA(24, 182, 164, 0.94),
		SignalBlue: RGBA(59, 130, 246, 0.9),
		TrailColor: RGBA(24, 182, 164, 1),
		TrailAlpha: 0.26,
	}
}

// NewBackdrop lays out t for a width×height viewport. Star positions,
// sizes and alphas are drawn from rng.New(starSeed) in x, y, radius,
// alpha order.
func NewBackdrop(t Theme, width, height float64, stars int, starSeed int64) *Backdrop {
	b := &Backdrop{
		Width:    width,
		Height:   height,
		Gradient: t.Gradient,
		Stars:    make([]Star, 0, max(stars, 0)),
		Glows:    make([]Glow, 0, len(t.Glows)),
	}

	src := rng.New(starSeed)
	for i := 0; i < stars; i++ {
		x := src.Range(0, width)
		y := src.Range(0, height)
		r := src.Range(t.StarRadius[0], t.StarRadius[1])
		a := src.Range(t.StarAlpha[0], t.StarAlpha[1])
		b.Stars = append(b.Stars, Star{Pos: geom.Pt(x, y), Radius: r, Color: t.StarColor.WithAlpha(a)})
	}
	for _, g := range t.Glows {
		b.Glows = append(b.Glows, Glow{
			Center: geom.Pt(g.X*width, g.Y*height),
			Radius: g.R * width,
			Color:  g.Color,
		})
	}

	return b
}
