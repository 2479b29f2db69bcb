package dijkstra_test

import (
	"fmt"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dijkstra"
)

// ExampleShortestPath routes around a marketing edge under denied consent.
func ExampleShortestPath() {
	// 1) Triangle: the direct 0–2 hop is marketing, the detour via 1 essential.
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore},
		{ID: 1, Role: core.RoleRelay},
		{ID: 2, Role: core.RoleDestination, Category: core.CategoryMarketing},
	}
	edges := []core.Edge{
		{ID: 0, A: 0, B: 2, Length: 4, Category: core.CategoryMarketing},
		{ID: 1, A: 0, B: 1, Length: 3, Category: core.CategoryEssential},
		{ID: 2, A: 1, B: 2, Length: 3, Category: core.CategoryEssential},
	}
	g, err := core.NewGraph(nodes, edges)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Unrestricted and policy-restricted searches.
	open, _ := dijkstra.ShortestPath(g, 0, 2)
	strict, _ := dijkstra.ShortestPath(g, 0, 2, dijkstra.WithPolicy(core.PolicyDenied))

	fmt.Println("open:  ", open)
	fmt.Println("denied:", strict)
	// Output:
	// open:   [0 2]
	// denied: [0 1 2]
}
