package builder

import (
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/rng"
)

// inferCategory assigns the traffic class of an edge between a and b.
//
//   - Touching a destination: that destination's category; between two
//     destinations the stricter one, so a destination's final hop always
//     carries at least its own class. No draw is consumed.
//   - Touching a source: one draw against 0.5/0.85/0.95.
//   - Otherwise: one draw against the relay thresholds.
func inferCategory(a, b core.Node, src *rng.Source, relay [3]float64) core.Category {
	aDest, bDest := a.Role == core.RoleDestination, b.Role == core.RoleDestination
	switch {
	case aDest && bDest:
		return core.Stricter(a.Category, b.Category)
	case aDest:
		return a.Category
	case bDest:
		return b.Category
	case a.Role == core.RoleSource || b.Role == core.RoleSource:
		return rollCategory(src.Float64(), sourceThresholds)
	default:
		return rollCategory(src.Float64(), relay)
	}
}

// rollCategory maps a uniform roll onto cumulative thresholds.
func rollCategory(roll float64, cuts [3]float64) core.Category {
	switch {
	case roll < cuts[0]:
		return core.CategoryEssential
	case roll < cuts[1]:
		return core.CategoryFunctional
	case roll < cuts[2]:
		return core.CategoryAnalytics
	default:
		return core.CategoryMarketing
	}
}
