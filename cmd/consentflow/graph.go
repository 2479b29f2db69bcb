package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/consentflow/bfs"
	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dfs"
)

// graphStats summarizes one synthesized network.
type graphStats struct {
	Nodes      int
	Edges      int
	Components int
	Roles      map[core.Role]int
	Categories map[core.Category]int
	Dotted     int

	// Depth histogram of hop distances from the core over every edge.
	Eccentricity int
	Depths       []int

	// Destinations reachable from the core through policy-allowed edges only.
	Reachable int

	// Islands counts the connected pieces left when only policy-allowed
	// edges remain; Blocked counts the edges the policy removes.
	Islands int
	Blocked int

	// Critical edges of the whole network and of its policy-allowed part.
	Bridges       []int
	PolicyBridges []int
}

func (a *app) graphCmd() *cobra.Command {
	var width, height float64
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print node, edge and hop-depth statistics of the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, rc, err := a.buildGraph(width, height)
			if err != nil {
				return err
			}
			st, err := collectStats(cmd.Context(), g, a.cfg.Policy())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "viewport %gx%g (mobile=%t, tier %s, seed %d)\n",
				width, height, rc.IsMobile, a.cfg.DensityTier(), a.cfg.Seed)
			writeStats(a.stdout, st, a.cfg.Policy(), len(g.DestinationIDs))

			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height in pixels")

	return cmd
}

func collectStats(ctx context.Context, g *core.Graph, policy core.Policy) (graphStats, error) {
	st := graphStats{
		Nodes:      g.Order(),
		Edges:      g.Size(),
		Components: core.Components(g),
		Roles:      make(map[core.Role]int),
		Categories: make(map[core.Category]int),
	}
	for _, n := range g.Nodes {
		st.Roles[n.Role]++
	}
	for _, e := range g.Edges {
		st.Categories[e.Category]++
		if e.Dotted {
			st.Dotted++
		}
		if !policy.AllowsEdge(e) {
			st.Blocked++
		}
	}

	// Visits arrive in non-decreasing depth, so the histogram grows at its end.
	open, err := bfs.BFS(g, g.CoreID, bfs.WithContext(ctx), bfs.WithOnVisit(func(_, depth int) error {
		if depth == len(st.Depths) {
			st.Depths = append(st.Depths, 0)
		}
		st.Depths[depth]++
		return nil
	}))
	if err != nil {
		return st, fmt.Errorf("hop depth: %w", err)
	}
	st.Eccentricity = open.Eccentricity()

	allowed, err := bfs.BFS(g, g.CoreID, bfs.WithContext(ctx), bfs.WithPolicy(policy))
	if err != nil {
		return st, fmt.Errorf("policy reach: %w", err)
	}
	for _, id := range g.DestinationIDs {
		if allowed.Reached(id) {
			st.Reachable++
		}
	}

	forest, err := dfs.DFS(g, g.CoreID, dfs.WithContext(ctx), dfs.WithFullTraversal(), dfs.WithPolicy(policy))
	if err != nil {
		return st, fmt.Errorf("policy islands: %w", err)
	}
	for id, parent := range forest.Parent {
		if parent == -1 && forest.Visited[id] {
			st.Islands++
		}
	}

	if st.Bridges, err = dfs.Bridges(g); err != nil {
		return st, fmt.Errorf("bridges: %w", err)
	}
	if st.PolicyBridges, err = dfs.Bridges(g, dfs.WithPolicy(policy)); err != nil {
		return st, fmt.Errorf("policy bridges: %w", err)
	}

	return st, nil
}

func writeStats(w io.Writer, st graphStats, policy core.Policy, destinations int) {
	var b strings.Builder
	fmt.Fprintf(&b, "nodes %d, edges %d, components %d\n", st.Nodes, st.Edges, st.Components)
	fmt.Fprintf(&b, "roles: core %d, source %d, relay %d, destination %d\n",
		st.Roles[core.RoleCore], st.Roles[core.RoleSource], st.Roles[core.RoleRelay], st.Roles[core.RoleDestination])
	b.WriteString("edge categories:")
	for _, c := range core.Categories {
		fmt.Fprintf(&b, " %s %d", c, st.Categories[c])
	}
	fmt.Fprintf(&b, " (dotted %d)\n", st.Dotted)
	fmt.Fprintf(&b, "hop depth from core: eccentricity %d\n", st.Eccentricity)
	for d, n := range st.Depths {
		fmt.Fprintf(&b, "  %2d %-3d %s\n", d, n, strings.Repeat("#", n))
	}
	fmt.Fprintf(&b, "destinations reachable from core under %s: %d/%d\n", policy, st.Reachable, destinations)
	fmt.Fprintf(&b, "policy islands under %s: %d (%d edges blocked)\n", policy, st.Islands, st.Blocked)
	fmt.Fprintf(&b, "critical edges: %d (under %s: %d)\n", len(st.Bridges), policy, len(st.PolicyBridges))
	_, _ = io.WriteString(w, b.String())
}
