// Package carp computes the CARP index of a breakpoint graph.
//
// Every adjacency of a [bpg.Graph] is either contested or uncontested:
//
//  1. Edges touching the telomere sentinel are uncontested. Any number of
//     chromosome ends may share the sentinel without signalling ambiguity.
//  2. Self-loops are contested.
//  3. Any other edge {u, v} is uncontested iff it is the only edge at u and
//     the only edge at v; otherwise it is contested.
//
// The CARP index is the number of contested edges. It is insensitive to how
// many genomes share an adjacency: duplicating a genome never changes the
// index or the partition.
//
//	g, _ := bpg.Build(genomes)
//	p := carp.Classify(g)
//	fmt.Println(p.Index(), len(p.Uncontested))
//
// Use [Index] when only the count is needed.
//
// # Neighborhood scan
//
// [Scan] locates conflict by scoring each marker with the [LocalIndex] of
// its [Neighborhood], the edges within a number of marker steps.
// [Histogram] and [Percentile] summarize the scores.
package carp
