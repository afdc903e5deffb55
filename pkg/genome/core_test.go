package genome

import "testing"

func TestCore(t *testing.T) {
	gs := []Genome{
		New("A", Lin(Fwd("1"), Fwd("2"), Fwd("3"))),
		New("B", Circ(Rev("3"), Fwd("1")), Lin(Fwd("4"))),
	}
	core := Core(gs)
	if len(core) != 2 {
		t.Fatalf("Core = %v, want {1,3}", core)
	}
	for _, id := range []string{"1", "3"} {
		if _, ok := core[id]; !ok {
			t.Errorf("Core missing %s", id)
		}
	}

	if got := Core(nil); len(got) != 0 {
		t.Errorf("Core(nil) = %v, want empty", got)
	}
}

func TestProject(t *testing.T) {
	gs := []Genome{
		New("A", Lin(Fwd("1"), Fwd("2"), Rev("3"))),
		New("B", Circ(Rev("3"), Fwd("1")), Lin(Fwd("4"))),
	}
	out := Project(gs, Core(gs))

	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	if got := out[0].Chromosomes[0].String(); got != "+1 -3 |" {
		t.Errorf("A projected = %q", got)
	}
	if len(out[1].Chromosomes) != 1 {
		t.Fatalf("B should drop its emptied chromosome, got %d", len(out[1].Chromosomes))
	}
	if !out[1].Chromosomes[0].IsCircular() {
		t.Error("projection must keep chromosome type")
	}
	if gs[0].MarkerCount() != 3 {
		t.Error("Project must not modify its input")
	}
}
