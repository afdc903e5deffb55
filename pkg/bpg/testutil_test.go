package bpg

import (
	"testing"
)

func ext(t *testing.T, s string) Extremity {
	t.Helper()
	x, err := ParseExtremity(s)
	if err != nil {
		t.Fatal(err)
	}
	return x
}

func pair(t *testing.T, s string) Pair {
	t.Helper()
	p, err := ParsePair(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func pairSet(t *testing.T, specs ...string) map[Pair]bool {
	t.Helper()
	out := make(map[Pair]bool, len(specs))
	for _, s := range specs {
		out[pair(t, s)] = true
	}
	return out
}

func edgeSet(g *Graph) map[Pair]bool {
	out := make(map[Pair]bool)
	for _, p := range g.Edges() {
		out[p] = true
	}
	return out
}

func assertPairSet(t *testing.T, got, want map[Pair]bool) {
	t.Helper()
	for p := range want {
		if !got[p] {
			t.Errorf("missing edge %s", p)
		}
	}
	for p := range got {
		if !want[p] {
			t.Errorf("unexpected edge %s", p)
		}
	}
}
