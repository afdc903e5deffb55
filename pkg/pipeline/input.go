package pipeline

import (
	"bytes"
	"slices"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/genome"
	cio "github.com/gi-bielefeld/carp/pkg/io"
)

// loadGenomes decodes or filters the input genomes and returns them with the
// content hash used for cache keys.
func loadGenomes(opts Options) ([]genome.Genome, string, error) {
	var only map[string]bool
	if len(opts.Only) > 0 {
		only = make(map[string]bool, len(opts.Only))
		for _, name := range opts.Only {
			only[name] = true
		}
	}

	var genomes []genome.Genome
	if opts.Input != nil {
		gs, err := cio.ReadUniMoG(bytes.NewReader(opts.Input), cio.ReadOptions{Only: only})
		if err != nil {
			return nil, "", err
		}
		genomes = gs
	} else {
		for _, g := range opts.Genomes {
			if only == nil || only[g.Name] {
				genomes = append(genomes, g)
			}
		}
	}
	if err := genome.ValidateNames(genomes); err != nil {
		return nil, "", err
	}

	// Pre-parsed genomes are hashed through their canonical UniMoG form.
	data := opts.Input
	if data == nil {
		var buf bytes.Buffer
		if err := cio.WriteUniMoG(&buf, genomes); err != nil {
			return nil, "", err
		}
		data = buf.Bytes()
	}
	return genomes, cache.Hash(data), nil
}

// project restricts genomes to their core markers when enabled.
func project(genomes []genome.Genome, enabled bool) ([]genome.Genome, int) {
	if !enabled || len(genomes) == 0 {
		return genomes, 0
	}
	core := genome.Core(genomes)
	return genome.Project(genomes, core), len(core)
}

func countChromosomes(genomes []genome.Genome) (chromosomes, markers int) {
	for _, g := range genomes {
		chromosomes += len(g.Chromosomes)
		markers += g.MarkerCount()
	}
	return chromosomes, markers
}

// onlyKey returns a sorted copy of names so filter order does not change
// the cache key.
func onlyKey(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
