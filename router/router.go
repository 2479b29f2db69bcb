// SPDX-License-Identifier: MIT
// Package: consentflow/router
//
// router.go - consent-aware route construction.

package router

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dijkstra"
)

// Option configures BuildRoutes.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger reports fallbacks and the route summary at debug level.
// Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("router: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}

// BuildRoutes returns one route per (source, destination) pair of g under
// policy. A nil graph yields nil; routes with no segments are dropped.
func BuildRoutes(g *core.Graph, policy core.Policy, opts ...Option) []Route {
	if g == nil {
		return nil
	}
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	routes := make([]Route, 0, len(g.SourceIDs)*len(g.DestinationIDs))
	for _, src := range g.SourceIDs {
		for _, dst := range g.DestinationIDs {
			path, fallback, ok := routePath(g, src, dst, policy)
			if !ok {
				o.logger.Debug("route unreachable", zap.Int("source", src), zap.Int("destination", dst))
				continue
			}
			if fallback {
				o.logger.Debug("route fallback",
					zap.Int("source", src),
					zap.Int("destination", dst),
					zap.Stringer("policy", policy),
				)
			}
			segs, err := Segments(g, path, policy)
			if err != nil || len(segs) == 0 {
				continue
			}
			routes = append(routes, Route{
				Key:                 RouteKey(src, dst),
				SourceID:            src,
				DestinationID:       dst,
				DestinationCategory: g.Nodes[dst].Category,
				Segments:            segs,
				Fallback:            fallback,
			})
		}
	}

	s := Summarize(routes)
	o.logger.Debug("routes built",
		zap.Stringer("policy", policy),
		zap.Int("routes", s.Total),
		zap.Int("blocked", s.Blocked),
		zap.Int("fallback", s.Fallback),
	)

	return routes
}

// SourceRoutes returns source → core routes for every source, searched over
// every edge with blocked flags left clear.
func SourceRoutes(g *core.Graph) []Route {
	if g == nil {
		return nil
	}
	routes := make([]Route, 0, len(g.SourceIDs))
	for _, src := range g.SourceIDs {
		path, err := dijkstra.ShortestPath(g, src, g.CoreID)
		if err != nil {
			continue
		}
		segs, err := Segments(g, path, core.PolicyGranted)
		if err != nil || len(segs) == 0 {
			continue
		}
		routes = append(routes, Route{
			Key:           RouteKey(src, g.CoreID),
			SourceID:      src,
			DestinationID: g.CoreID,
			Segments:      segs,
		})
	}

	return routes
}

// routePath joins source → core → destination, first under the policy then
// over every edge.
func routePath(g *core.Graph, src, dst int, policy core.Policy) (path []int, fallback bool, ok bool) {
	if path, ok = joinLegs(g, src, dst, dijkstra.WithPolicy(policy)); ok {
		return path, false, true
	}
	path, ok = joinLegs(g, src, dst)

	return path, true, ok
}

func joinLegs(g *core.Graph, src, dst int, opts ...dijkstra.Option) ([]int, bool) {
	in, err := dijkstra.ShortestPath(g, src, g.CoreID, opts...)
	if err != nil {
		return nil, false
	}
	out, err := dijkstra.ShortestPath(g, g.CoreID, dst, opts...)
	if err != nil {
		return nil, false
	}
	// out[0] is the core, already the last node of in.
	return append(in, out[1:]...), true
}

// Segments converts a node path into oriented edge segments, flagging those
// whose category policy does not allow.
func Segments(g *core.Graph, path []int, policy core.Policy) ([]Segment, error) {
	if len(path) < 2 {
		return nil, nil
	}
	segs := make([]Segment, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		id, ok := g.EdgeIndex(from, to)
		if !ok {
			return nil, fmt.Errorf("Segments: %d→%d: %w", from, to, ErrBrokenPath)
		}
		e := g.Edges[id]
		segs = append(segs, Segment{
			EdgeID:   id,
			From:     from,
			To:       to,
			Category: e.Category,
			Blocked:  !policy.AllowsEdge(e),
		})
	}

	return segs, nil
}
