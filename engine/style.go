package engine

import (
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/signal"
)

// style collects the per-variant drawing constants.
type style struct {
	theme  paint.Theme
	tuning signal.Tuning

	rngOffset   int64      // animation rng = seed + rngOffset
	starWeights [2]int64   // star seed = seed + w·x + h·y (+ stars for consent)
	starCount   [2]int     // backdrop only: desktop, mobile
	parallaxK   float64    // easing per frame
	layerShift  [3]float64 // parallax multiplier per layer
	targetScale [2]float64 // pointer target = n·scale
	driftY      float64    // vertical drift damping

	coreBreath   [2]float64 // speed, amplitude
	coreRadius   [2]float64 // desktop, mobile
	coreHalo     []paint.Stop
	coreFill     []paint.Stop
	coreRing     bool
	layerAlpha   [3]float64
	nodeGlow     [2]float64 // base multiplier, hover gain
	nodeGlowTint paint.Color
	nodeHover    float64 // radius gain on hover
}

func styleFor(v Variant) style {
	if v == VariantBackdrop {
		return style{
			theme:       paint.BackdropTheme(),
			tuning:      signal.Backdrop(),
			rngOffset:   13,
			starWeights: [2]int64{11, 7},
			starCount:   [2]int{42, 24},
			parallaxK:   0.07,
			layerShift:  [3]float64{0.2, 0.5, 0.9},
			targetScale: [2]float64{10, 7.2},
			driftY:      0.7,
			coreBreath:  [2]float64{0.82, 0.028},
			coreRadius:  [2]float64{17, 14},
			coreHalo: []paint.Stop{
				{Offset: 0, Color: paint.RGBA(59, 130, 246, 0.36)},
				{Offset: 0.6, Color: paint.RGBA(24, 182, 164, 0.2)},
				{Offset: 1, Color: paint.Transparent},
			},
			coreFill: []paint.Stop{
				{Offset: 0, Color: paint.RGBA(226, 240, 255, 0.98)},
				{Offset: 0.45, Color: paint.RGBA(59, 130, 246, 0.9)},
				{Offset: 1, Color: paint.RGBA(30, 42, 120, 0.94)},
			},
			layerAlpha:   [3]float64{0.66, 0.82, 1},
			nodeGlow:     [2]float64{4.2, 1.4},
			nodeGlowTint: paint.RGBA(188, 211, 255, 1),
			nodeHover:    0.38,
		}
	}

	return style{
		theme:       paint.ConsentTheme(),
		tuning:      signal.Consent(),
		rngOffset:   17,
		starWeights: [2]int64{13, 7},
		parallaxK:   0.068,
		layerShift:  [3]float64{0.3, 0.58, 0.98},
		targetScale: [2]float64{16, 10},
		driftY:      0.72,
		coreBreath:  [2]float64{1.14, 0.03},
		coreRadius:  [2]float64{17, 17},
		coreHalo: []paint.Stop{
			{Offset: 0, Color: paint.RGBA(59, 130, 246, 0.42)},
			{Offset: 0.55, Color: paint.RGBA(24, 182, 164, 0.24)},
			{Offset: 1, Color: paint.Transparent},
		},
		coreFill: []paint.Stop{
			{Offset: 0, Color: paint.RGBA(212, 238, 255, 0.98)},
			{Offset: 0.45, Color: paint.RGBA(59, 130, 246, 0.92)},
			{Offset: 1, Color: paint.RGBA(30, 42, 120, 0.95)},
		},
		coreRing:     true,
		layerAlpha:   [3]float64{0.66, 0.83, 1},
		nodeGlow:     [2]float64{4.3, 1.6},
		nodeGlowTint: paint.RGBA(173, 198, 255, 1),
		nodeHover:    0.5,
	}
}

// edgeColors tints consent edges by category.
var edgeColors = map[core.Category]paint.Color{
	core.CategoryEssential:  paint.RGBA(170, 193, 255, 1),
	core.CategoryFunctional: paint.RGBA(157, 228, 219, 1),
	core.CategoryAnalytics:  paint.RGBA(138, 171, 246, 1),
	core.CategoryMarketing:  paint.RGBA(126, 152, 226, 1),
}

var (
	backdropEdge = paint.RGBA(116, 149, 235, 1)
	coreRing     = paint.RGBA(157, 228, 219, 0.36)
	blockedDash  = []float64{4, 7}
)

// nodeFill returns the disc colour of a non-core node.
func (s style) nodeFill(v Variant, r core.Role) paint.Color {
	if v == VariantBackdrop {
		if r == core.RoleSource {
			return paint.RGBA(186, 236, 229, 0.92)
		}
		return paint.RGBA(220, 230, 255, 0.9)
	}
	switch r {
	case core.RoleSource:
		return paint.RGBA(196, 239, 232, 0.95)
	case core.RoleDestination:
		return paint.RGBA(214, 223, 255, 0.95)
	default:
		return paint.RGBA(228, 236, 255, 0.92)
	}
}
