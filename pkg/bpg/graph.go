package bpg

import (
	"maps"
	"slices"
)

// Graph is an undirected breakpoint graph whose edges carry color sets.
// Parallel adjacencies are collapsed into one edge; self-loops are allowed.
//
// The zero value is not usable - use Build or NewBuilder.
// Graph is not safe for concurrent mutation; after Build returns it is only
// read and may be shared between readers.
type Graph struct {
	nodes map[Extremity]ColorSet
	edges map[Pair]ColorSet
	adj   map[Extremity]map[Extremity]struct{}
}

func newGraph() *Graph {
	return &Graph{
		nodes: make(map[Extremity]ColorSet),
		edges: make(map[Pair]ColorSet),
		adj:   make(map[Extremity]map[Extremity]struct{}),
	}
}

// addNode registers x or adds color to its set.
func (g *Graph) addNode(x Extremity, color string) {
	if cs, ok := g.nodes[x]; ok {
		cs.Add(color)
		return
	}
	g.nodes[x] = NewColorSet(color)
}

// addEdge creates edge {a, b} with color or adds color to an existing edge.
func (g *Graph) addEdge(a, b Extremity, color string) {
	p := NewPair(a, b)
	if cs, ok := g.edges[p]; ok {
		cs.Add(color)
		return
	}
	g.edges[p] = NewColorSet(color)
	g.link(a, b)
	g.link(b, a)
}

func (g *Graph) link(a, b Extremity) {
	n, ok := g.adj[a]
	if !ok {
		n = make(map[Extremity]struct{})
		g.adj[a] = n
	}
	n[b] = struct{}{}
}

// NodeCount returns the number of extremities in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct adjacencies.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all extremities in ascending order.
func (g *Graph) Nodes() []Extremity {
	return slices.SortedFunc(maps.Keys(g.nodes), Extremity.Compare)
}

// Edges returns all adjacencies in ascending order.
func (g *Graph) Edges() []Pair {
	return slices.SortedFunc(maps.Keys(g.edges), Pair.Compare)
}

// HasNode reports whether x is in the graph.
func (g *Graph) HasNode(x Extremity) bool {
	_, ok := g.nodes[x]
	return ok
}

// HasEdge reports whether {a, b} is an edge.
func (g *Graph) HasEdge(a, b Extremity) bool {
	_, ok := g.edges[NewPair(a, b)]
	return ok
}

// EdgeColors returns the color set of p, or nil if p is not an edge.
// The returned set must not be modified.
func (g *Graph) EdgeColors(p Pair) ColorSet { return g.edges[p] }

// NodeColors returns the colors of the genomes containing x, or nil if x is
// not in the graph. The returned set must not be modified.
func (g *Graph) NodeColors(x Extremity) ColorSet { return g.nodes[x] }

// Neighbors returns the extremities adjacent to x in ascending order.
// A self-loop makes x its own neighbor.
func (g *Graph) Neighbors(x Extremity) []Extremity {
	return slices.SortedFunc(maps.Keys(g.adj[x]), Extremity.Compare)
}

// Degree returns the number of edge ends at x. A self-loop contributes two.
func (g *Graph) Degree(x Extremity) int {
	n := len(g.adj[x])
	if _, loop := g.adj[x][x]; loop {
		n++
	}
	return n
}

// OtherEdges returns the edges incident to x except the edge {x, except}.
func (g *Graph) OtherEdges(x, except Extremity) []Pair {
	var out []Pair
	for y := range g.adj[x] {
		if y != except {
			out = append(out, NewPair(x, y))
		}
	}
	return out
}

// HasOtherEdge reports whether x has an incident edge besides {x, except}.
func (g *Graph) HasOtherEdge(x, except Extremity) bool {
	n := len(g.adj[x])
	if _, ok := g.adj[x][except]; ok {
		n--
	}
	return n > 0
}

// Restrict returns a new graph holding only the colors in keep. Edges and
// nodes whose color sets do not intersect keep are dropped; the rest carry
// the intersected color sets.
func (g *Graph) Restrict(keep ColorSet) *Graph {
	out := newGraph()
	for x, cs := range g.nodes {
		if in := cs.Intersect(keep); in.Len() > 0 {
			out.nodes[x] = in
		}
	}
	for p, cs := range g.edges {
		if in := cs.Intersect(keep); in.Len() > 0 {
			out.edges[p] = in
			out.link(p.U, p.V)
			out.link(p.V, p.U)
		}
	}
	return out
}
