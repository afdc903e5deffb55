// Package io reads genomes from UniMoG text and writes analysis results in
// the plain-text formats used by downstream tools.
//
// # UniMoG
//
// A UniMoG file lists genomes, each introduced by a header line, followed by
// one line per chromosome. A chromosome line holds whitespace-separated
// signed markers and ends with "|" (linear) or ")" (circular):
//
//	>E.coli
//	+1 -2 3 |
//	4 5 )
//	>S.enterica
//	1 2 -3 4 5 |
//
// Markers without a sign are forward. Use [ReadUniMoG] for any io.Reader or
// [ImportUniMoG] for a file path. A line that does not end in a chromosome
// terminator fails with INVALID_CHROMOSOME_TYPE and the offending line
// number; it is never coerced into either type.
//
// # Output
//
// [WriteUniMoG] writes genomes back (for example after core projection).
// [WriteAdjacencies] writes one adjacency per line as two tab-separated
// extremities, each "marker tag" with tag h, t, or o for the telomere.
// [WriteSplits] writes one split per line: the support count followed by the
// colors of the canonical side, all tab-separated.
// [WriteScores] and [WriteHistogram] write neighborhood scan tables, and
// [WriteMeasure] writes the index as a one-line report.
//
// # Concurrency
//
// All functions are safe to call concurrently on independent inputs.
package io
