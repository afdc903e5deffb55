// Package pkg holds the carp libraries.
//
// # Overview
//
// carp measures how much a set of genomes disagree about gene order. The
// genomes are merged into one multi-colored breakpoint graph; an adjacency is
// contested when one of its extremities also takes part in a different
// adjacency. The CARP index is the number of contested adjacencies.
//
// # Architecture
//
//	UniMoG file
//	     ↓
//	[io] + [genome] (parse, validate, core projection)
//	     ↓
//	[bpg] (breakpoint graph with edge colors)
//	     ↓
//	[carp] (contested / uncontested partition, index, per-marker scan)
//	     ↓
//	[split] (supported bipartitions, tree filter, residuals)
//	     ↓
//	[render/nodelink] + [io] (DOT, SVG, TSV, JSON)
//
// [pipeline] runs these stages behind a [cache] and reports timings through
// [observability]. [errors] defines the error codes shared by all of them.
//
// # Quick Start
//
//	genomes, _ := io.ImportUniMoG("genomes.unimog", io.ReadOptions{})
//	g, _ := bpg.Build(genome.Project(genomes, genome.Core(genomes)))
//	fmt.Println(carp.Index(g))
package pkg
