// Package bpg builds the multi-colored breakpoint graph over a set of genomes.
//
// # Nodes
//
// Nodes are gene extremities: the [Head] or [Tail] of a marker ID, plus the
// single telomere sentinel [Telo] shared by every end of every linear
// chromosome in every genome. Circular chromosomes never reference the
// sentinel.
//
// # Edges
//
// Edges are adjacencies: two extremities that are consecutive on some
// chromosome once orientation is taken into account. Each edge carries the
// [ColorSet] of genomes exhibiting it. A genome adds its color to an edge at
// most once no matter how often the adjacency occurs, so the graph is
// sensitive to color presence, never to multiplicity. Self-loops are kept;
// they arise when an extremity is adjacent to itself, e.g. "+1 -1".
//
// The connection between the two extremities of one marker (the internal
// edge) is walked over but never stored.
//
// # Building
//
//	g, err := bpg.Build(genomes)
//	if err != nil {
//	    return err
//	}
//	for _, p := range g.Edges() {
//	    fmt.Println(p, g.EdgeColors(p).Sorted())
//	}
//
// A [Graph] is immutable once [Build] returns. Building is not safe for
// concurrent use: every analysis must build its own graph.
package bpg
