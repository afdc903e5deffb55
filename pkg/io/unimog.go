package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/genome"
)

// maxLineBytes bounds a single chromosome line. Genomes with ~10^5 markers
// per chromosome need well over bufio's 64 KiB default.
const maxLineBytes = 64 << 20

// ReadOptions configures UniMoG reading.
type ReadOptions struct {
	// Only restricts the result to the named genomes. Nil keeps all.
	Only map[string]bool
}

// ReadUniMoG decodes genomes from r in file order.
//
// ReadUniMoG returns an error if:
//   - A chromosome line appears before the first header (INVALID_FORMAT)
//   - A chromosome line does not end in "|" or ")" (INVALID_CHROMOSOME_TYPE)
//   - A marker has an empty ID (INVALID_FORMAT)
//
// Errors carry the 1-based line number. ReadUniMoG does not close r.
func ReadUniMoG(r io.Reader, opts ReadOptions) ([]genome.Genome, error) {
	var genomes []genome.Genome
	skip := false

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if name, ok := strings.CutPrefix(line, ">"); ok {
			name = strings.TrimSpace(name)
			skip = opts.Only != nil && !opts.Only[name]
			if !skip {
				genomes = append(genomes, genome.New(name))
			}
			continue
		}
		if skip {
			continue
		}
		if len(genomes) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: chromosome before first genome header", n)
		}

		c, err := parseChromosome(line)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "line %d", n)
		}
		last := &genomes[len(genomes)-1]
		last.Chromosomes = append(last.Chromosomes, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read unimog")
	}
	return genomes, nil
}

func parseChromosome(line string) (genome.Chromosome, error) {
	term := rune(line[len(line)-1])
	t, err := genome.ParseChromosomeType(term)
	if err != nil {
		return genome.Chromosome{}, err
	}

	fields := strings.Fields(line[:len(line)-1])
	markers := make([]genome.Marker, 0, len(fields))
	for _, f := range fields {
		m, err := parseMarker(f)
		if err != nil {
			return genome.Chromosome{}, err
		}
		markers = append(markers, m)
	}
	return genome.NewChromosome(t, markers)
}

func parseMarker(s string) (genome.Marker, error) {
	var m genome.Marker
	if id, ok := strings.CutPrefix(s, string(genome.SymbolReverse)); ok {
		m = genome.Rev(id)
	} else {
		m = genome.Fwd(strings.TrimLeft(s, string(genome.SymbolForward)))
	}
	if err := errors.ValidateMarkerID(m.ID); err != nil {
		return m, errors.New(errors.ErrCodeInvalidFormat, "invalid marker %q", s)
	}
	return m, nil
}

// ImportUniMoG reads the UniMoG file at path.
// A missing file is reported as FILE_NOT_FOUND.
func ImportUniMoG(path string, opts ReadOptions) ([]genome.Genome, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	genomes, err := ReadUniMoG(f, opts)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return genomes, nil
}

// WriteUniMoG encodes genomes in UniMoG format.
func WriteUniMoG(w io.Writer, genomes []genome.Genome) error {
	bw := bufio.NewWriter(w)
	for _, g := range genomes {
		fmt.Fprintf(bw, ">%s\n", g.Name)
		for _, c := range g.Chromosomes {
			fmt.Fprintln(bw, c.String())
		}
	}
	return bw.Flush()
}
