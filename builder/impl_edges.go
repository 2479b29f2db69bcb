// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// impl_edges.go - pair proposal (steps 4-5) and edge shaping (step 7).

package builder

import (
	"cmp"
	"math"
	"slices"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
	"github.com/katalvlaran/consentflow/rng"
)

// pairSet keeps unordered endpoint pairs in insertion order.
type pairSet struct {
	seen map[core.PairKey]struct{}
	list []core.PairKey
}

func newPairSet(n int) *pairSet {
	return &pairSet{seen: make(map[core.PairKey]struct{}, n*3)}
}

// add records {a,b} once; loops and repeats are ignored.
func (p *pairSet) add(a, b int) bool {
	if a == b {
		return false
	}
	key := core.MakePairKey(a, b)
	if _, dup := p.seen[key]; dup {
		return false
	}
	p.seen[key] = struct{}{}
	p.list = append(p.list, key)

	return true
}

type candidate struct {
	id   int
	dist float64
}

// nearest returns up to k node ids closest to nodes[from] that pass keep,
// nearest first; ties keep id order.
func nearest(nodes []core.Node, from, k int, keep func(core.Node, float64) bool) []candidate {
	out := make([]candidate, 0, len(nodes))
	origin := nodes[from].Pos
	for i := range nodes {
		if i == from {
			continue
		}
		d := geom.Distance(origin, nodes[i].Pos)
		if keep(nodes[i], d) {
			out = append(out, candidate{id: i, dist: d})
		}
	}
	slices.SortStableFunc(out, func(a, b candidate) int { return cmp.Compare(a.dist, b.dist) })
	if len(out) > k {
		out = out[:k]
	}

	return out
}

// linkNearest joins every node to its k nearest neighbours within reach.
// Complexity: O(n² log n).
func linkNearest(nodes []core.Node, pairs *pairSet, k int, reach float64) {
	within := func(_ core.Node, d float64) bool { return d < reach }
	for i := range nodes {
		for _, c := range nearest(nodes, i, k, within) {
			pairs.add(i, c.id)
		}
	}
}

// linkAnchors joins each source and destination to its nearest
// anchorNeighbors nodes of a compatible role, then to the core.
func linkAnchors(nodes []core.Node, pairs *pairSet) {
	notDestination := func(n core.Node, _ float64) bool { return n.Role != core.RoleDestination }
	notSource := func(n core.Node, _ float64) bool { return n.Role != core.RoleSource }

	anchor := func(role core.Role, keep func(core.Node, float64) bool) {
		for i := range nodes {
			if nodes[i].Role != role {
				continue
			}
			for _, c := range nearest(nodes, i, anchorNeighbors, keep) {
				pairs.add(i, c.id)
			}
			pairs.add(i, 0)
		}
	}
	anchor(core.RoleSource, notDestination)
	anchor(core.RoleDestination, notSource)
}

// shapeEdges turns pairs into curved edges. Draw order per edge: curvature
// magnitude, curvature sign, category roll (when one is needed), dotted,
// phase.
func shapeEdges(nodes []core.Node, pairs []core.PairKey, cfg builderConfig, src *rng.Source) []core.Edge {
	edges := make([]core.Edge, len(pairs))
	coreNode := nodes[0]

	for i, p := range pairs {
		a, b := nodes[p.Lo], nodes[p.Hi]
		delta := b.Pos.Sub(a.Pos)
		dist := delta.Len()
		mid := geom.LerpPoint(a.Pos, b.Pos, 0.5)

		curvature := geom.Clamp(dist*src.Range(curveFactorLo, curveFactorHi), curveMin, curveMax) * src.Range(-1, 1)
		control := mid.Add(delta.Normal().Scale(curvature))

		e := core.Edge{
			ID:       i,
			A:        p.Lo,
			B:        p.Hi,
			Control:  control,
			Category: inferCategory(a, b, src, cfg.relayThresholds),
			Layer:    core.Layer(math.Round(float64(a.Layer+b.Layer) * 0.5)).Clamp(),
			Length:   geom.QuadraticBezierLength(a.Pos, control, b.Pos, cfg.lengthSamples),
		}
		e.Dotted = src.Chance(dottedChance)
		e.Phase = src.Angle()
		e.CoreProximity = coreProximity(a, b, coreNode, cfg.width, cfg.height)
		edges[i] = e
	}

	return edges
}
