// Package split derives genome bipartitions ("splits") from the uncontested,
// non-universal adjacencies of a breakpoint graph.
//
// An adjacency shared by some but not all genomes separates the color set
// into the genomes that have it and those that do not. [Canonical] picks one
// side to represent that bipartition, so both sides map to the same [ID].
// [Analyze] counts, per split, the adjacencies that support it: edges whose
// endpoints have no other edge sharing any of the edge's colors.
//
// [TreeFilter] greedily keeps the best-supported splits that are pairwise
// disjoint or nested. It is a heuristic: the result is a laminar family that
// approximates a hierarchy, with no optimality guarantee and no promise of
// being a valid tree.
//
// [Residuals] compares the CARP index of the whole graph against the indices
// of the graphs restricted to each side of a split.
package split
