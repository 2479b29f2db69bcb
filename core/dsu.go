package core

// DisjointSet is an array-backed union-find over the integers [0, n).
// Find uses path halving; Union attaches by rank. The zero value is empty;
// use NewDisjointSet.
type DisjointSet struct {
	parent []int
	rank   []uint8
	sets   int
}

// NewDisjointSet returns n singleton sets.
// Complexity: O(n).
func NewDisjointSet(n int) *DisjointSet {
	if n < 0 {
		n = 0
	}
	d := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]uint8, n),
		sets:   n,
	}
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

// Len returns the number of elements.
func (d *DisjointSet) Len() int { return len(d.parent) }

// Sets returns the number of disjoint sets remaining.
func (d *DisjointSet) Sets() int { return d.sets }

// Find returns the representative of x.
// Complexity: amortized O(α(n)).
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		// Path halving: point x at its grandparent and step there.
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

// Same reports whether a and b share a set.
func (d *DisjointSet) Same(a, b int) bool { return d.Find(a) == d.Find(b) }

// Union merges the sets of a and b. It returns false when they were
// already joined.
func (d *DisjointSet) Union(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
	d.sets--

	return true
}

// Components returns the number of connected components of g.
// An empty graph has zero components.
// Complexity: O(V + E·α(V)).
func Components(g *Graph) int {
	d := NewDisjointSet(len(g.Nodes))
	for _, e := range g.Edges {
		d.Union(e.A, e.B)
	}

	return d.Sets()
}

// Connected reports whether every node of g is reachable from every other.
func Connected(g *Graph) bool {
	return Components(g) == 1
}
