// SPDX-License-Identifier: MIT
// Package: consentflow/tui
//
// cells.go - a paint.Painter that rasterizes into terminal cells.
//
// Each cell covers CellWidth×CellHeight logical pixels. Backgrounds carry
// gradients and glows; glyphs carry stars, edges, signals and nodes. The
// backdrop is resolved once per *paint.Backdrop and copied every frame.

package tui

import (
	"errors"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/paint"
)

// Logical pixels per terminal cell. A 80-column terminal is 1280 px wide,
// which keeps desktop sizing on ordinary terminals.
const (
	CellWidth  = 16.0
	CellHeight = 32.0
)

// ErrBadSize is returned by Begin for surfaces smaller than one cell.
var ErrBadSize = errors.New("tui: surface smaller than one cell")

type rgb struct{ r, g, b float64 }

// over composites c with extra opacity k onto dst.
func (dst rgb) over(c paint.Color, k float64) rgb {
	a := geom.Clamp(c.A*k, 0, 1)
	return rgb{
		r: dst.r + (float64(c.R)-dst.r)*a,
		g: dst.g + (float64(c.G)-dst.g)*a,
		b: dst.b + (float64(c.B)-dst.b)*a,
	}
}

func (c rgb) hex() string {
	return paint.RGBA(uint8(math.Round(c.r)), uint8(math.Round(c.g)), uint8(math.Round(c.b)), 1).Hex()
}

type cell struct {
	bg    rgb
	ink   rgb
	glyph rune
}

// CellPainter renders frames into a grid of terminal cells.
type CellPainter struct {
	cols, rows int
	cells      []cell
	active     bool

	cacheOf *paint.Backdrop
	cache   []cell

	// Frames counts completed frames.
	Frames int
}

var _ paint.Painter = (*CellPainter)(nil)

// NewCellPainter returns an empty painter; the grid is sized by Begin.
func NewCellPainter() *CellPainter { return &CellPainter{} }

// Size returns the grid dimensions of the last frame.
func (p *CellPainter) Size() (cols, rows int) { return p.cols, p.rows }

// Begin implements paint.Painter.
func (p *CellPainter) Begin(width, height float64) error {
	cols, rows := int(width/CellWidth), int(height/CellHeight)
	if cols < 1 || rows < 1 {
		return ErrBadSize
	}
	if cols != p.cols || rows != p.rows {
		p.cols, p.rows = cols, rows
		p.cells = make([]cell, cols*rows)
		p.cacheOf, p.cache = nil, nil
	} else {
		for i := range p.cells {
			p.cells[i] = cell{}
		}
	}
	p.active = true

	return nil
}

// Backdrop implements paint.Painter.
func (p *CellPainter) Backdrop(b *paint.Backdrop) {
	if !p.active || b == nil {
		return
	}
	if p.cacheOf != b {
		p.cache = p.resolveBackdrop(b)
		p.cacheOf = b
	}
	copy(p.cells, p.cache)
}

func (p *CellPainter) resolveBackdrop(b *paint.Backdrop) []cell {
	out := make([]cell, len(p.cells))
	for row := 0; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			c := p.center(col, row)
			bg := rgb{}.over(b.GradientAt(c), 1)
			for _, g := range b.Glows {
				if g.Radius <= 0 {
					continue
				}
				bg = bg.over(paint.Sample(g.Stops(), geom.Distance(c, g.Center)/g.Radius), 1)
			}
			out[row*p.cols+col] = cell{bg: bg, ink: bg}
		}
	}
	for _, s := range b.Stars {
		if i, ok := p.index(s.Pos); ok {
			out[i].glyph = '·'
			out[i].ink = out[i].bg.over(s.Color, 1)
		}
	}

	return out
}

// StrokeCurve implements paint.Painter.
func (p *CellPainter) StrokeCurve(from, control, to geom.Point, s paint.Stroke) {
	if !p.active {
		return
	}
	length := geom.QuadraticBezierLength(from, control, to, geom.DefaultBezierSamples)
	steps := int(math.Ceil(length/(CellWidth/2))) + 1
	var period float64
	for _, d := range s.Dash {
		period += d
	}
	for k := 0; k <= steps; k++ {
		t := float64(k) / float64(steps)
		if period > 0 && !dashOn(s.Dash, math.Mod(t*length, period)) {
			continue
		}
		p.mark(geom.QuadraticBezierPoint(from, control, to, t), '·', s.Color, false)
	}
}

// dashOn reports whether offset falls into an "on" run of pattern.
func dashOn(pattern []float64, offset float64) bool {
	on := true
	for _, d := range pattern {
		if offset < d {
			return on
		}
		offset -= d
		on = !on
	}
	return on
}

// FillCircle implements paint.Painter. Discs smaller than a cell become
// one glyph sized by radius; larger discs tint the background.
func (p *CellPainter) FillCircle(c geom.Point, r float64, col paint.Color) {
	if !p.active {
		return
	}
	if r < CellWidth/2 {
		glyph := '•'
		switch {
		case r < 1.2:
			glyph = '·'
		case r >= 4:
			glyph = '●'
		}
		p.mark(c, glyph, col, true)
		return
	}
	p.disc(c, r, func(float64) paint.Color { return col })
}

// FillGlow implements paint.Painter.
func (p *CellPainter) FillGlow(c geom.Point, r float64, stops []paint.Stop) {
	if !p.active || r <= 0 {
		return
	}
	p.disc(c, r, func(d float64) paint.Color { return paint.Sample(stops, d/r) })
}

// StrokeCircle implements paint.Painter.
func (p *CellPainter) StrokeCircle(c geom.Point, r float64, s paint.Stroke) {
	if !p.active {
		return
	}
	n := int(math.Max(8, math.Ceil(2*math.Pi*r/(CellWidth/2))))
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		p.mark(geom.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a)), '·', s.Color, false)
	}
}

// End implements paint.Painter.
func (p *CellPainter) End() error {
	if !p.active {
		return ErrBadSize
	}
	p.active = false
	p.Frames++
	return nil
}

// mark inks one glyph. Solid glyphs always replace; faint ones only fill
// empty cells.
func (p *CellPainter) mark(at geom.Point, glyph rune, col paint.Color, solid bool) {
	i, ok := p.index(at)
	if !ok {
		return
	}
	c := &p.cells[i]
	if c.glyph == 0 || solid {
		c.glyph = glyph
		c.ink = c.bg.over(col, 1)
		return
	}
	c.ink = c.ink.over(col, 1)
}

// disc tints backgrounds whose centre lies within r of c.
func (p *CellPainter) disc(c geom.Point, r float64, shade func(d float64) paint.Color) {
	c0, r0 := p.cellOf(geom.Pt(c.X-r, c.Y-r))
	c1, r1 := p.cellOf(geom.Pt(c.X+r, c.Y+r))
	for row := max(r0, 0); row <= min(r1, p.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, p.cols-1); col++ {
			d := geom.Distance(p.center(col, row), c)
			if d > r {
				continue
			}
			cl := &p.cells[row*p.cols+col]
			cl.bg = cl.bg.over(shade(d), 1)
			if cl.glyph == 0 {
				cl.ink = cl.bg
			}
		}
	}
}

func (p *CellPainter) cellOf(at geom.Point) (col, row int) {
	return int(math.Floor(at.X / CellWidth)), int(math.Floor(at.Y / CellHeight))
}

func (p *CellPainter) index(at geom.Point) (int, bool) {
	col, row := p.cellOf(at)
	if col < 0 || row < 0 || col >= p.cols || row >= p.rows {
		return 0, false
	}
	return row*p.cols + col, true
}

func (p *CellPainter) center(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
}

// Plain returns the glyph grid without colour, one line per row.
func (p *CellPainter) Plain() string {
	var sb strings.Builder
	for row := 0; row < p.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < p.cols; col++ {
			g := p.cells[row*p.cols+col].glyph
			if g == 0 {
				g = ' '
			}
			sb.WriteRune(g)
		}
	}
	return sb.String()
}

// Render returns the grid as styled terminal text. Adjacent cells with the
// same colours share one style run.
func (p *CellPainter) Render() string {
	var sb strings.Builder
	for row := 0; row < p.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		var fg, bg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fg)).
				Background(lipgloss.Color(bg))
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < p.cols; col++ {
			c := p.cells[row*p.cols+col]
			cfg, cbg := c.ink.hex(), c.bg.hex()
			if cfg != fg || cbg != bg {
				flush()
				fg, bg = cfg, cbg
			}
			g := c.glyph
			if g == 0 {
				g = ' '
			}
			run.WriteRune(g)
		}
		flush()
	}
	return sb.String()
}
