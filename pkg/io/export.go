package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/carp"
	"github.com/gi-bielefeld/carp/pkg/split"
)

// formatExtremity renders x as "marker tag"; the telomere is "o o".
func formatExtremity(x bpg.Extremity) string {
	if x.IsTelomere() {
		return fmt.Sprintf("%c %c", bpg.TagTelomere, bpg.TagTelomere)
	}
	return fmt.Sprintf("%s %c", x.Marker, x.End.Tag())
}

// WriteAdjacencies writes one adjacency per line as two tab-separated
// extremities.
func WriteAdjacencies(w io.Writer, pairs []bpg.Pair) error {
	bw := bufio.NewWriter(w)
	for _, p := range pairs {
		fmt.Fprintf(bw, "%s\t%s\n", formatExtremity(p.U), formatExtremity(p.V))
	}
	return bw.Flush()
}

// WriteSplits writes one split per line: support, then the side's colors.
func WriteSplits(w io.Writer, entries []split.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%d\t%s\n", e.Support, strings.Join(e.Side, "\t"))
	}
	return bw.Flush()
}

// WriteScores writes a "#marker\tlocal_index" header, then one
// marker and its local CARP index per line.
func WriteScores(w io.Writer, scores []carp.MarkerScore) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "#marker\tlocal_index")
	for _, s := range scores {
		fmt.Fprintf(bw, "%s\t%d\n", s.Marker, s.Index)
	}
	return bw.Flush()
}

// WriteHistogram writes one "index<TAB>count" line per bin.
func WriteHistogram(w io.Writer, bins []carp.Bin) error {
	bw := bufio.NewWriter(w)
	for _, b := range bins {
		fmt.Fprintf(bw, "%d\t%d\n", b.Index, b.Count)
	}
	return bw.Flush()
}

// WriteMeasure writes the single line "CARP index: n".
func WriteMeasure(w io.Writer, index int) error {
	_, err := fmt.Fprintf(w, "CARP index: %d\n", index)
	return err
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
