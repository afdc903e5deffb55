package split

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/errors"
)

// Separator joins the colors of a split side into its identifier.
const Separator = errors.SplitSeparator

// Complement returns the colors of colors not in side, in colors order.
func Complement(side bpg.ColorSet, colors []string) bpg.ColorSet {
	out := make(bpg.ColorSet)
	for _, c := range colors {
		if !side.Has(c) {
			out.Add(c)
		}
	}
	return out
}

// Canonical returns the side that represents the bipartition {side,
// colors \ side}: the smaller side by color count; on a tie, the side that
// excludes colors[0]. Colors in side that are not in colors are ignored.
func Canonical(side bpg.ColorSet, colors []string) bpg.ColorSet {
	in := make(bpg.ColorSet, len(side))
	for _, c := range colors {
		if side.Has(c) {
			in.Add(c)
		}
	}
	k, n := in.Len(), len(colors)
	switch {
	case 2*k < n:
		return in
	case 2*k > n:
		return Complement(in, colors)
	case n > 0 && in.Has(colors[0]):
		return Complement(in, colors)
	}
	return in
}

// ID joins the sorted colors of side with Separator.
func ID(side bpg.ColorSet) string { return strings.Join(side.Sorted(), Separator) }

// ParseID returns the colors of a split identifier.
func ParseID(id string) bpg.ColorSet {
	if id == "" {
		return bpg.ColorSet{}
	}
	return bpg.NewColorSet(strings.Split(id, Separator)...)
}

// Support maps split identifiers to the number of supporting adjacencies.
type Support map[string]int

// Supports reports whether the edge e of g supports its split: it touches
// neither the sentinel nor itself, it is not shared by all n genomes, both
// endpoints have other edges, and none of those shares a color with it.
// An edge with an isolated endpoint says nothing about the split.
func Supports(g *bpg.Graph, e bpg.Pair, n int) bool {
	if e.TouchesTelomere() || e.IsSelfLoop() {
		return false
	}
	colors := g.EdgeColors(e)
	if colors.Len() >= n {
		return false
	}
	atU, atV := g.OtherEdges(e.U, e.V), g.OtherEdges(e.V, e.U)
	if len(atU) == 0 || len(atV) == 0 {
		return false
	}
	for _, o := range append(atU, atV...) {
		if g.EdgeColors(o).Intersects(colors) {
			return false
		}
	}
	return true
}

// Analyze counts the supporting adjacencies of every split of colors.
// Splits without support are absent from the result.
func Analyze(g *bpg.Graph, colors []string) Support {
	s := make(Support)
	for _, e := range g.Edges() {
		if Supports(g, e, len(colors)) {
			s[ID(Canonical(g.EdgeColors(e), colors))]++
		}
	}
	return s
}

// Entry is one row of a split table.
type Entry struct {
	ID      string   `json:"id"`
	Side    []string `json:"side"`
	Support int      `json:"support"`
}

// Ranked returns the entries of s by descending support, ties broken by
// identifier.
func Ranked(s Support) []Entry {
	out := make([]Entry, 0, len(s))
	for id, n := range s {
		out = append(out, Entry{ID: id, Side: ParseID(id).Sorted(), Support: n})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Support, a.Support); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Top truncates ranked entries. A top of at least 1 keeps that many entries;
// a top in (0, 1) keeps that fraction, rounded; anything else keeps all.
func Top(entries []Entry, top float64) []Entry {
	var n int
	switch {
	case top >= 1:
		n = int(top)
	case top > 0:
		n = int(math.Round(float64(len(entries)) * top))
	default:
		return entries
	}
	return entries[:min(n, len(entries))]
}
