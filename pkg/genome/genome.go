package genome

import (
	"fmt"
	"strings"

	"github.com/gi-bielefeld/carp/pkg/errors"
)

// Orientation is the reading direction of a marker on its chromosome.
type Orientation int

const (
	// Forward markers are read tail to head.
	Forward Orientation = iota
	// Reverse markers are read head to tail.
	Reverse
)

// Orientation symbols as they appear in UniMoG input.
const (
	SymbolForward = '+'
	SymbolReverse = '-'
)

// String returns "+" or "-".
func (o Orientation) String() string {
	if o == Reverse {
		return string(SymbolReverse)
	}
	return string(SymbolForward)
}

// ParseOrientation maps '+' and '-' to an Orientation.
func ParseOrientation(r rune) (Orientation, error) {
	switch r {
	case SymbolForward:
		return Forward, nil
	case SymbolReverse:
		return Reverse, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation, "invalid orientation %q (must be %q or %q)", r, SymbolForward, SymbolReverse)
}

// ChromosomeType distinguishes linear from circular chromosomes.
// The zero value is invalid so that an unset type is caught by NewChromosome.
type ChromosomeType int

const (
	// Linear chromosomes have two telomeres.
	Linear ChromosomeType = iota + 1
	// Circular chromosomes are closed and have no telomeres.
	Circular
)

// Chromosome type symbols as they appear at the end of UniMoG chromosome lines.
const (
	SymbolLinear   = '|'
	SymbolCircular = ')'
)

// String returns "linear", "circular", or "invalid".
func (t ChromosomeType) String() string {
	switch t {
	case Linear:
		return "linear"
	case Circular:
		return "circular"
	}
	return "invalid"
}

// Symbol returns the UniMoG terminator for t.
func (t ChromosomeType) Symbol() rune {
	if t == Circular {
		return SymbolCircular
	}
	return SymbolLinear
}

// Valid reports whether t is Linear or Circular.
func (t ChromosomeType) Valid() bool { return t == Linear || t == Circular }

// ParseChromosomeType maps '|' and ')' to a ChromosomeType. Any other symbol
// is an INVALID_CHROMOSOME_TYPE error.
func ParseChromosomeType(r rune) (ChromosomeType, error) {
	switch r {
	case SymbolLinear:
		return Linear, nil
	case SymbolCircular:
		return Circular, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidChromosomeType, "invalid chromosome type %q (must be %q or %q)", r, SymbolLinear, SymbolCircular)
}

// Marker is one occurrence of a gene family on a chromosome.
type Marker struct {
	ID          string
	Orientation Orientation
}

// String renders the marker in UniMoG notation ("+7", "-7").
func (m Marker) String() string { return m.Orientation.String() + m.ID }

// Fwd returns a forward marker.
func Fwd(id string) Marker { return Marker{ID: id, Orientation: Forward} }

// Rev returns a reverse marker.
func Rev(id string) Marker { return Marker{ID: id, Orientation: Reverse} }

// Chromosome is an ordered sequence of markers with a fixed type.
// The zero value is not usable; construct with NewChromosome, Lin, or Circ.
type Chromosome struct {
	typ     ChromosomeType
	Markers []Marker
}

// NewChromosome returns a chromosome of type t. It fails fast with
// INVALID_CHROMOSOME_TYPE when t is neither Linear nor Circular.
func NewChromosome(t ChromosomeType, markers []Marker) (Chromosome, error) {
	if !t.Valid() {
		return Chromosome{}, errors.New(errors.ErrCodeInvalidChromosomeType, "invalid chromosome type %d", int(t))
	}
	return Chromosome{typ: t, Markers: markers}, nil
}

// Lin returns a linear chromosome.
func Lin(markers ...Marker) Chromosome { return Chromosome{typ: Linear, Markers: markers} }

// Circ returns a circular chromosome.
func Circ(markers ...Marker) Chromosome { return Chromosome{typ: Circular, Markers: markers} }

// Type returns the chromosome type.
func (c Chromosome) Type() ChromosomeType { return c.typ }

// IsLinear reports whether the chromosome is linear.
func (c Chromosome) IsLinear() bool { return c.typ == Linear }

// IsCircular reports whether the chromosome is circular.
func (c Chromosome) IsCircular() bool { return c.typ == Circular }

// Len returns the number of markers.
func (c Chromosome) Len() int { return len(c.Markers) }

// String renders the chromosome as a UniMoG line without the trailing newline.
func (c Chromosome) String() string {
	parts := make([]string, 0, len(c.Markers)+1)
	for _, m := range c.Markers {
		parts = append(parts, m.String())
	}
	return strings.Join(append(parts, string(c.typ.Symbol())), " ")
}

// Genome is a named list of chromosomes. The name is the genome's color.
type Genome struct {
	Name        string
	Chromosomes []Chromosome
}

// New returns a genome with the given chromosomes.
func New(name string, chromosomes ...Chromosome) Genome {
	return Genome{Name: name, Chromosomes: chromosomes}
}

// MarkerCount returns the total number of markers over all chromosomes.
func (g Genome) MarkerCount() int {
	n := 0
	for _, c := range g.Chromosomes {
		n += c.Len()
	}
	return n
}

// Validate checks the genome name and every chromosome type.
func (g Genome) Validate() error {
	if err := errors.ValidateGenomeName(g.Name); err != nil {
		return err
	}
	for i, c := range g.Chromosomes {
		if !c.typ.Valid() {
			return errors.New(errors.ErrCodeInvalidChromosomeType, "genome %s: chromosome %d has no valid type", g.Name, i+1)
		}
	}
	return nil
}

// Colors returns the genome names in input order.
func Colors(genomes []Genome) []string {
	colors := make([]string, len(genomes))
	for i, g := range genomes {
		colors[i] = g.Name
	}
	return colors
}

// ValidateNames validates every genome and rejects duplicate names.
func ValidateNames(genomes []Genome) error {
	seen := make(map[string]struct{}, len(genomes))
	for _, g := range genomes {
		if err := g.Validate(); err != nil {
			return err
		}
		if _, dup := seen[g.Name]; dup {
			return errors.New(errors.ErrCodeDuplicateGenome, "duplicate genome name %q", g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// Summary returns a one-line description used in logs.
func Summary(genomes []Genome) string {
	markers, chromosomes := 0, 0
	for _, g := range genomes {
		markers += g.MarkerCount()
		chromosomes += len(g.Chromosomes)
	}
	return fmt.Sprintf("%d genomes, %d chromosomes, %d markers", len(genomes), chromosomes, markers)
}
