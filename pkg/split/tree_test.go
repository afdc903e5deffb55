package split

import (
	"slices"
	"testing"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/genome"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		a, b []string
		want bool
	}{
		{[]string{"A"}, []string{"B"}, true},
		{[]string{"A"}, []string{"A", "B"}, true},
		{[]string{"A", "B", "C"}, []string{"B", "C"}, true},
		{[]string{"A", "B"}, []string{"B", "C"}, false},
	}
	for _, tt := range tests {
		if got := Compatible(bpg.NewColorSet(tt.a...), bpg.NewColorSet(tt.b...)); got != tt.want {
			t.Errorf("Compatible(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTreeFilter(t *testing.T) {
	s := Support{
		"A...B": 5,
		"B...C": 3,
		"A":     2,
		"D":     1,
	}
	var ids []string
	for _, e := range TreeFilter(s) {
		ids = append(ids, e.ID)
	}
	if !slices.Equal(ids, []string{"A...B", "A", "D"}) {
		t.Errorf("TreeFilter = %v, want [A...B A D]", ids)
	}
	if TreeFilter(Support{}) != nil {
		t.Error("TreeFilter of empty support should be nil")
	}
}

func TestResiduals(t *testing.T) {
	gs := twoClades()
	g := bpg.MustBuild(gs)
	colors := genome.Colors(gs)

	res := Residuals(g, colors, Analyze(g, colors))
	if len(res) != 1 {
		t.Fatalf("Residuals = %v", res)
	}
	r := res[0]
	if r.IndexSide != 0 || r.IndexOther != 0 || r.Residual != 4 {
		t.Errorf("Residual = %+v, want sides 0/0 and residual 4", r)
	}
	if !slices.Equal(r.Complement, []string{"A", "B"}) {
		t.Errorf("Complement = %v", r.Complement)
	}
}
