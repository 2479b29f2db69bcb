// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// impl_repair.go - connectivity repair (step 6).
//
// Algorithm:
//  1. Union every proposed pair in a core.DisjointSet.
//  2. While more than one set remains, scan all i<j node pairs in different
//     sets and pick the one with the smallest squared distance (first wins
//     on ties).
//  3. Add that pair as a bridge and union its endpoints.
//
// Each round removes one component, so at most n-1 rounds run.
// Complexity: O(c·n²·α(n)) for c initial components.

package builder

import (
	"math"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/geom"
)

// repairConnectivity bridges components until one remains and returns the
// number of bridges added.
func repairConnectivity(nodes []core.Node, pairs *pairSet) int {
	dsu := core.NewDisjointSet(len(nodes))
	for _, p := range pairs.list {
		dsu.Union(p.Lo, p.Hi)
	}

	bridges := 0
	for dsu.Sets() > 1 {
		bestA, bestB := -1, -1
		best := math.Inf(1)
		for i := range nodes {
			ri := dsu.Find(i)
			for j := i + 1; j < len(nodes); j++ {
				if dsu.Find(j) == ri {
					continue
				}
				if d := geom.DistanceSquared(nodes[i].Pos, nodes[j].Pos); d < best {
					best, bestA, bestB = d, i, j
				}
			}
		}
		if bestA < 0 {
			break
		}
		pairs.add(bestA, bestB)
		dsu.Union(bestA, bestB)
		bridges++
	}

	return bridges
}
