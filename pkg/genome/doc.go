// Package genome provides the in-memory genome model consumed by the
// breakpoint graph builder.
//
// A [Genome] is a named, ordered list of [Chromosome] values. Each chromosome
// is either [Linear] or [Circular] and holds an ordered sequence of signed
// [Marker] values. Marker IDs identify gene families and may repeat within a
// chromosome (duplications).
//
// Genome names act as colors: every adjacency a genome contributes to the
// breakpoint graph is tagged with its name, so names must be unique within a
// single analysis. Use [ValidateNames] before building a graph from
// untrusted input.
//
// # Core projection
//
// Comparative analyses usually restrict genomes to the markers they all
// share. [Core] computes that set and [Project] removes everything else:
//
//	core := genome.Core(genomes)
//	genomes = genome.Project(genomes, core)
//
// Chromosomes left empty by projection are dropped.
package genome
