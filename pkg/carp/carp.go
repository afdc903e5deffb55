package carp

import (
	"slices"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/errors"
)

// Class is the classification of a single adjacency.
type Class int

const (
	Uncontested Class = iota
	Contested
)

// String returns "uncontested" or "contested".
func (c Class) String() string {
	if c == Contested {
		return "contested"
	}
	return "uncontested"
}

// ClassifyEdge classifies the edge p of g.
func ClassifyEdge(g *bpg.Graph, p bpg.Pair) Class {
	switch {
	case p.TouchesTelomere():
		return Uncontested
	case p.IsSelfLoop():
		return Contested
	case g.HasOtherEdge(p.U, p.V) || g.HasOtherEdge(p.V, p.U):
		return Contested
	}
	return Uncontested
}

// Partition splits the edges of a graph into contested and uncontested.
// Both slices are sorted.
type Partition struct {
	Contested   []bpg.Pair `json:"contested"`
	Uncontested []bpg.Pair `json:"uncontested"`
}

// Index returns the CARP index, the number of contested edges.
func (p Partition) Index() int { return len(p.Contested) }

// IsContested reports whether e is in the contested set.
func (p Partition) IsContested(e bpg.Pair) bool {
	_, ok := slices.BinarySearchFunc(p.Contested, e, bpg.Pair.Compare)
	return ok
}

// Classify partitions every edge of g.
func Classify(g *bpg.Graph) Partition {
	var p Partition
	for _, e := range g.Edges() {
		if ClassifyEdge(g, e) == Contested {
			p.Contested = append(p.Contested, e)
		} else {
			p.Uncontested = append(p.Uncontested, e)
		}
	}
	return p
}

// Index returns the CARP index of g without materialising the partition.
func Index(g *bpg.Graph) int {
	n := 0
	for _, e := range g.Edges() {
		if ClassifyEdge(g, e) == Contested {
			n++
		}
	}
	return n
}

// Check verifies that p is a valid classification of g: the two sets
// partition the edge set exactly, uncontested non-telomere edges have two
// degree-1 endpoints, and contested edges never touch the sentinel nor join
// two degree-1 endpoints. Violations are INTERNAL_ERROR.
func Check(g *bpg.Graph, p Partition) error {
	seen := make(map[bpg.Pair]Class, g.EdgeCount())
	for _, e := range p.Contested {
		seen[e] = Contested
	}
	for _, e := range p.Uncontested {
		if _, dup := seen[e]; dup {
			return errors.New(errors.ErrCodeInternal, "edge %s is both contested and uncontested", e)
		}
		seen[e] = Uncontested
	}
	if len(seen) != len(p.Contested)+len(p.Uncontested) {
		return errors.New(errors.ErrCodeInternal, "partition holds duplicate edges")
	}
	if len(seen) != g.EdgeCount() {
		return errors.New(errors.ErrCodeInternal, "partition covers %d edges, graph has %d", len(seen), g.EdgeCount())
	}

	for e, class := range seen {
		if !g.HasEdge(e.U, e.V) {
			return errors.New(errors.ErrCodeInternal, "edge %s is not in the graph", e)
		}
		leaves := g.Degree(e.U) == 1 && g.Degree(e.V) == 1
		switch class {
		case Uncontested:
			if !e.TouchesTelomere() && !leaves {
				return errors.New(errors.ErrCodeInternal, "uncontested edge %s has an endpoint of degree > 1", e)
			}
		case Contested:
			if e.TouchesTelomere() {
				return errors.New(errors.ErrCodeInternal, "contested edge %s touches the telomere", e)
			}
			if leaves {
				return errors.New(errors.ErrCodeInternal, "contested edge %s joins two degree-1 extremities", e)
			}
		}
	}
	return nil
}
