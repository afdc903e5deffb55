package split

import (
	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/carp"
)

// Residual compares the CARP index of a graph with the indices of its two
// restrictions to the sides of one split.
type Residual struct {
	ID         string   `json:"id"`
	Side       []string `json:"side"`
	Complement []string `json:"complement"`
	IndexSide  int      `json:"index_side"`
	IndexOther int      `json:"index_other"`
	// Residual is Index(g) - IndexSide - IndexOther.
	Residual int `json:"residual"`
}

// Residuals computes a Residual for every split in s, in Ranked order.
func Residuals(g *bpg.Graph, colors []string, s Support) []Residual {
	total := carp.Index(g)
	out := make([]Residual, 0, len(s))
	for _, e := range Ranked(s) {
		side := ParseID(e.ID)
		other := Complement(side, colors)
		a := carp.Index(g.Restrict(side))
		b := carp.Index(g.Restrict(other))
		out = append(out, Residual{
			ID:         e.ID,
			Side:       side.Sorted(),
			Complement: other.Sorted(),
			IndexSide:  a,
			IndexOther: b,
			Residual:   total - a - b,
		})
	}
	return out
}
