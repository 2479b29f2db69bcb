package paint

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrBadHex is returned by ParseHex for malformed colour strings.
var ErrBadHex = errors.New("paint: malformed hex colour")

// Color is an sRGB colour with straight alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

// RGBA builds a Color; a is clamped to [0,1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clampUnit(a)}
}

// MustHex parses "#rrggbb" and panics on error. For package-level palettes.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("ParseHex: %q: %w", s, ErrBadHex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("ParseHex: %q: %w", s, ErrBadHex)
	}

	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, nil
}

// WithAlpha returns c with alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clampUnit(a)
	return c
}

// Fade multiplies alpha by k.
func (c Color) Fade(k float64) Color {
	return c.WithAlpha(c.A * k)
}

// Lerp blends c toward d by t in [0,1], alpha included.
func (c Color) Lerp(d Color, t float64) Color {
	t = clampUnit(t)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return Color{R: mix(c.R, d.R), G: mix(c.G, d.G), B: mix(c.B, d.B), A: c.A + (d.A-c.A)*t}
}

// NRGBA converts to image/color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clampUnit(c.A) * 255))}
}

// Hex formats the colour as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Stop is one colour stop of a gradient.
type Stop struct {
	Offset float64
	Color  Color
}

// Sample evaluates a stop list at t. Stops must be sorted by Offset.
func Sample(stops []Stop, t float64) Color {
	switch {
	case len(stops) == 0:
		return Transparent
	case t <= stops[0].Offset:
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Stroke describes a line.
type Stroke struct {
	Color Color
	Width float64
	// Dash alternates on/off lengths; empty means solid.
	Dash []float64
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
