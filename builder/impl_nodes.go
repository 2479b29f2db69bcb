// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// impl_nodes.go - node placement (pipeline steps 1-3).
//
// The order of random draws is part of the determinism contract: core
// (phase, speed), then per source/destination (x, y jitter, layer, phase,
// speed, amp), then per relay (layer, x, y, phase, speed, amp).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/rng"
)

// placeNodes returns core, sources, destinations and relays in id order.
// Complexity: O(NodeCount).
func placeNodes(cfg builderConfig, src *rng.Source) []core.Node {
	w, h, rc := cfg.width, cfg.height, cfg.rc
	total := rc.NodeCount
	if floor := 1 + rc.SourceCount + rc.DestinationCount; total < floor {
		total = floor
	}
	nodes := make([]core.Node, 0, total)

	// 1) Core near the visual focal point.
	nodes = append(nodes, core.Node{
		ID:         0,
		Role:       core.RoleCore,
		Label:      "Policy Core",
		Pos:        geom.Pt(w*coreX, h*coreY),
		Layer:      2,
		Radius:     coreRadius,
		DriftPhase: src.Angle(),
		DriftSpeed: src.Range(coreDriftSpeedLo, coreDriftSpeedHi),
		DriftAmp:   coreDriftAmp,
	})

	// 2a) Sources down the left margin.
	for i := 0; i < rc.SourceCount; i++ {
		yBase := geom.Lerp(h*sourceYLo, h*sourceYHi, float64(i+1)/float64(rc.SourceCount+1))
		n := core.Node{
			ID:     len(nodes),
			Role:   core.RoleSource,
			Label:  SourceLabels[i%len(SourceLabels)],
			Radius: sourceRadius,
		}
		n.Pos.X = src.Range(w*sourceXLo, w*sourceXHi)
		n.Pos.Y = geom.Clamp(yBase+src.Range(-h*sourceJitter, h*sourceJitter), h*marginYLo, h*marginYHi)
		n.Layer = chooseLayer(src)
		drift(&n, src, sourceDrift)
		nodes = append(nodes, n)
	}

	// 2b) Destinations down the right margin, categories in rotation.
	for i := 0; i < rc.DestinationCount; i++ {
		yBase := geom.Lerp(h*destYLo, h*destYHi, float64(i+1)/float64(rc.DestinationCount+1))
		n := core.Node{
			ID:       len(nodes),
			Role:     core.RoleDestination,
			Label:    DestinationLabels[i%len(DestinationLabels)],
			Radius:   destRadius,
			Category: DestinationCategory(i),
		}
		n.Pos.X = src.Range(w*destXLo, w*destXHi)
		n.Pos.Y = geom.Clamp(yBase+src.Range(-h*destJitter, h*destJitter), h*marginYLo, h*marginYHi)
		n.Layer = chooseLayer(src)
		drift(&n, src, destDrift)
		nodes = append(nodes, n)
	}

	// 3) Relays fill the remaining budget.
	for i := 0; len(nodes) < total; i++ {
		layer := chooseLayer(src)
		n := core.Node{
			ID:     len(nodes),
			Role:   core.RoleRelay,
			Label:  fmt.Sprintf("Relay %d", i+1),
			Layer:  layer,
			Radius: relayRadius[layer],
		}
		n.Pos.X = src.Range(w*relayXLo, w*relayXHi)
		n.Pos.Y = src.Range(h*relayYLo, h*relayYHi)
		drift(&n, src, relayDrift)
		nodes = append(nodes, n)
	}

	return nodes
}

// drift draws phase, speed and amplitude in that order.
func drift(n *core.Node, src *rng.Source, r [4]float64) {
	n.DriftPhase = src.Angle()
	n.DriftSpeed = src.Range(r[0], r[1])
	n.DriftAmp = src.Range(r[2], r[3])
}

// chooseLayer draws a depth tier: 38% far, 40% mid, 22% near.
func chooseLayer(src *rng.Source) core.Layer {
	roll := src.Float64()
	switch {
	case roll < layerFarCut:
		return 0
	case roll < layerMidCut:
		return 1
	default:
		return 2
	}
}

// DestinationCategory returns the category of the i-th destination:
// essential, functional, analytics, marketing, repeating.
func DestinationCategory(i int) core.Category {
	return core.Categories[i%len(core.Categories)]
}

// coreProximity maps the nearer endpoint's distance to the core into [0,1].
func coreProximity(a, b, coreNode core.Node, w, h float64) float64 {
	d := math.Min(geom.Distance(a.Pos, coreNode.Pos), geom.Distance(b.Pos, coreNode.Pos))

	return geom.Clamp(1-d/(math.Max(w, h)*coreProximityReach), 0, 1)
}
