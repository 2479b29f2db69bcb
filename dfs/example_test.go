package dfs_test

import (
	"fmt"

	"github.com/katalvlaran/consentflow/core"
	"github.com/katalvlaran/consentflow/dfs"
)

// ExampleBridges finds the single points of failure of a small network,
// then of the part of it that denied consent still allows.
func ExampleBridges() {
	nodes := []core.Node{
		{ID: 0, Role: core.RoleCore},
		{ID: 1, Role: core.RoleSource},
		{ID: 2, Role: core.RoleRelay},
		{ID: 3, Role: core.RoleDestination, Category: core.CategoryEssential},
	}
	edges := []core.Edge{
		{ID: 0, A: 1, B: 0, Length: 5, Category: core.CategoryEssential},
		{ID: 1, A: 0, B: 2, Length: 5, Category: core.CategoryEssential},
		{ID: 2, A: 2, B: 3, Length: 5, Category: core.CategoryEssential},
		{ID: 3, A: 0, B: 3, Length: 5, Category: core.CategoryMarketing},
	}
	g, err := core.NewGraph(nodes, edges)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	open, _ := dfs.Bridges(g)
	denied, _ := dfs.Bridges(g, dfs.WithPolicy(core.PolicyDenied))
	fmt.Println("open:  ", open)
	fmt.Println("denied:", denied)
	// Output:
	// open:   [0]
	// denied: [0 1 2]
}
