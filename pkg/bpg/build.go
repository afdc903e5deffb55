package bpg

import (
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
)

// walkState is the kind of edge expected next while walking a chromosome's
// extremities. Consecutive extremities alternate strictly between an
// adjacency (between two markers or a marker and a telomere) and the
// internal connection of a single marker.
type walkState int

const (
	expectAdjacency walkState = iota
	expectInternal
)

func (s walkState) next() walkState {
	if s == expectAdjacency {
		return expectInternal
	}
	return expectAdjacency
}

// Extremities expands a chromosome into its ordered extremity list. Forward
// markers contribute (tail, head), reverse markers (head, tail). Linear
// chromosomes are framed by the sentinel on both sides, so k markers yield
// 2k+2 entries; circular chromosomes yield 2k.
func Extremities(c genome.Chromosome) []Extremity {
	n := 2 * c.Len()
	if c.IsLinear() {
		n += 2
	}
	ext := make([]Extremity, 0, n)
	if c.IsLinear() {
		ext = append(ext, Telo)
	}
	for _, m := range c.Markers {
		if m.Orientation == genome.Reverse {
			ext = append(ext, Head(m.ID), Tail(m.ID))
		} else {
			ext = append(ext, Tail(m.ID), Head(m.ID))
		}
	}
	if c.IsLinear() {
		ext = append(ext, Telo)
	}
	return ext
}

// Adjacencies returns the adjacency edges of one chromosome in walk order.
// The walk starts with an adjacency at the chromosome boundary: between the
// leading sentinel and the first extremity for linear chromosomes, between
// the last and the first extremity for circular ones. Empty chromosomes have
// no adjacencies.
func Adjacencies(c genome.Chromosome) []Pair {
	if c.Len() == 0 || !c.Type().Valid() {
		return nil
	}
	ext := Extremities(c)

	var last Extremity
	rest := ext
	if c.IsLinear() {
		last, rest = ext[0], ext[1:]
	} else {
		last = ext[len(ext)-1]
	}

	out := make([]Pair, 0, c.Len()+1)
	state := expectAdjacency
	for _, x := range rest {
		if state == expectAdjacency {
			out = append(out, NewPair(last, x))
		}
		last = x
		state = state.next()
	}
	return out
}

// Builder accumulates genomes into a graph. A Builder must not be shared
// between goroutines: merging colors is a read-then-write on the color sets.
type Builder struct {
	g *Graph
}

// NewBuilder returns a builder holding an empty graph.
func NewBuilder() *Builder { return &Builder{g: newGraph()} }

// Add merges every chromosome of gnm into the graph under color gnm.Name.
func (b *Builder) Add(gnm genome.Genome) error {
	for i, c := range gnm.Chromosomes {
		if err := b.AddChromosome(gnm.Name, c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidChromosomeType, err, "genome %s, chromosome %d", gnm.Name, i+1)
		}
	}
	return nil
}

// AddChromosome merges one chromosome under color. A chromosome that is
// neither linear nor circular is rejected with INVALID_CHROMOSOME_TYPE and
// leaves the graph untouched.
func (b *Builder) AddChromosome(color string, c genome.Chromosome) error {
	if !c.Type().Valid() {
		return errors.New(errors.ErrCodeInvalidChromosomeType, "chromosome type %s", c.Type())
	}
	if c.Len() == 0 {
		return nil
	}
	for _, x := range Extremities(c) {
		b.g.addNode(x, color)
	}
	for _, p := range Adjacencies(c) {
		b.g.addEdge(p.U, p.V, color)
	}
	return nil
}

// Graph returns the graph built so far. The builder must not be used after
// calling Graph.
func (b *Builder) Graph() *Graph {
	g := b.g
	b.g = nil
	return g
}

// Build returns the breakpoint graph of genomes. An empty list yields an
// empty graph. The only failure is a chromosome whose type is neither linear
// nor circular (INVALID_CHROMOSOME_TYPE); such input is never coerced.
func Build(genomes []genome.Genome) (*Graph, error) {
	b := NewBuilder()
	for _, g := range genomes {
		if err := b.Add(g); err != nil {
			return nil, err
		}
	}
	return b.Graph(), nil
}

// MustBuild is like Build but panics on invalid input. It is intended for
// tests and for genomes built with genome.Lin and genome.Circ.
func MustBuild(genomes []genome.Genome) *Graph {
	g, err := Build(genomes)
	if err != nil {
		panic(err)
	}
	return g
}
