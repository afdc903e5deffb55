package carp

import (
	"maps"
	"slices"

	"github.com/gi-bielefeld/carp/pkg/bpg"
)

// Neighborhood returns the edges of g near marker, sorted. A walk leaves
// marker through both extremities. Each edge it follows enters another
// marker, and the walk continues from that marker's opposite extremity,
// one step further out. The result holds every edge at an extremity the walk
// leaves from within depth steps, so depth 0 yields only the edges at marker
// itself. The telomere is never crossed.
//
// An unknown marker or a negative depth yields nil.
func Neighborhood(g *bpg.Graph, marker string, depth int) []bpg.Pair {
	if depth < 0 {
		return nil
	}
	dist := make(map[bpg.Extremity]int)
	var queue []bpg.Extremity
	for _, x := range []bpg.Extremity{bpg.Head(marker), bpg.Tail(marker)} {
		if g.HasNode(x) {
			dist[x] = 0
			queue = append(queue, x)
		}
	}

	seen := make(map[bpg.Pair]struct{})
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, y := range g.Neighbors(x) {
			seen[bpg.NewPair(x, y)] = struct{}{}
			if y.IsTelomere() {
				continue
			}
			next, d := y.Other(), dist[x]+1
			if _, ok := dist[next]; ok || d > depth {
				continue
			}
			dist[next] = d
			queue = append(queue, next)
		}
	}
	if len(seen) == 0 {
		return nil
	}
	return slices.SortedFunc(maps.Keys(seen), bpg.Pair.Compare)
}

// LocalIndex counts the edges of a subgraph that are contested within it.
// Degrees count only the given edges, so an edge contested in the full graph
// may be uncontested here when its rivals lie outside.
func LocalIndex(edges []bpg.Pair) int {
	degree := make(map[bpg.Extremity]int, 2*len(edges))
	for _, e := range edges {
		degree[e.U]++
		degree[e.V]++
	}
	n := 0
	for _, e := range edges {
		if e.TouchesTelomere() {
			continue
		}
		if degree[e.U] > 1 || degree[e.V] > 1 {
			n++
		}
	}
	return n
}

// Markers returns the marker IDs of g in ascending order.
func Markers(g *bpg.Graph) []string {
	var out []string
	for _, x := range g.Nodes() {
		if x.IsTelomere() {
			continue
		}
		if n := len(out); n == 0 || out[n-1] != x.Marker {
			out = append(out, x.Marker)
		}
	}
	return out
}

// MarkerScore is the local CARP index around one marker.
type MarkerScore struct {
	Marker string `json:"marker"`
	Index  int    `json:"index"`
}

// ScoreMarkers scores each marker by the local index of its neighborhood.
// Scores keep the order of markers.
func ScoreMarkers(g *bpg.Graph, markers []string, depth int) []MarkerScore {
	out := make([]MarkerScore, len(markers))
	for i, m := range markers {
		out[i] = MarkerScore{Marker: m, Index: LocalIndex(Neighborhood(g, m, depth))}
	}
	return out
}

// Scan scores every marker of g. See [Neighborhood] for depth.
func Scan(g *bpg.Graph, depth int) []MarkerScore {
	return ScoreMarkers(g, Markers(g), depth)
}

// Bin is one histogram bucket: Count markers have local index Index.
type Bin struct {
	Index int `json:"index"`
	Count int `json:"count"`
}

// Histogram counts markers per local index, ascending by index.
func Histogram(scores []MarkerScore) []Bin {
	counts := make(map[int]int)
	for _, s := range scores {
		counts[s.Index]++
	}
	out := make([]Bin, 0, len(counts))
	for _, idx := range slices.Sorted(maps.Keys(counts)) {
		out = append(out, Bin{Index: idx, Count: counts[idx]})
	}
	return out
}

// Percentile returns the scores whose index falls in the quantile band
// [lo, hi) of the distribution, in input order. Whole histogram bins are
// kept: a bin is in the band when the number of markers with a smaller index
// is at least lo*n and below hi*n. An empty band or lo >= hi yields nil.
func Percentile(scores []MarkerScore, lo, hi float64) []MarkerScore {
	n := float64(len(scores))
	low, high, found := 0, 0, false
	below := 0
	for _, b := range Histogram(scores) {
		c := float64(below)
		below += b.Count
		if c >= hi*n {
			break
		}
		if c >= lo*n {
			if !found {
				low, found = b.Index, true
			}
			high = b.Index + 1
		}
	}
	if !found {
		return nil
	}
	var out []MarkerScore
	for _, s := range scores {
		if s.Index >= low && s.Index < high {
			out = append(out, s)
		}
	}
	return out
}
