package genome

// Core returns the marker IDs present in every genome.
// An empty genome list yields an empty set.
func Core(genomes []Genome) map[string]struct{} {
	var core map[string]struct{}
	for _, g := range genomes {
		markers := make(map[string]struct{})
		for _, c := range g.Chromosomes {
			for _, m := range c.Markers {
				markers[m.ID] = struct{}{}
			}
		}
		if core == nil {
			core = markers
			continue
		}
		for id := range core {
			if _, ok := markers[id]; !ok {
				delete(core, id)
			}
		}
	}
	if core == nil {
		core = map[string]struct{}{}
	}
	return core
}

// Project returns copies of genomes restricted to markers in keep.
// Chromosomes that become empty are dropped; genomes are kept even if they
// end up with no chromosomes, so colors are preserved.
func Project(genomes []Genome, keep map[string]struct{}) []Genome {
	out := make([]Genome, len(genomes))
	for i, g := range genomes {
		var chromosomes []Chromosome
		for _, c := range g.Chromosomes {
			var markers []Marker
			for _, m := range c.Markers {
				if _, ok := keep[m.ID]; ok {
					markers = append(markers, m)
				}
			}
			if len(markers) > 0 {
				chromosomes = append(chromosomes, Chromosome{typ: c.typ, Markers: markers})
			}
		}
		out[i] = Genome{Name: g.Name, Chromosomes: chromosomes}
	}
	return out
}
