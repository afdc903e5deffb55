package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/gi-bielefeld/carp/pkg/bpg"
	"github.com/gi-bielefeld/carp/pkg/carp"
)

const (
	colorContested   = "red"
	colorUncontested = "grey55"
	colorTelomere    = "lightgrey"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Partition colours edges by classification. Nil leaves edges black.
	Partition *carp.Partition
	// Colors labels each edge with its sorted genome names.
	Colors bool
}

// ToDOT converts a breakpoint graph to undirected Graphviz DOT.
// Output is deterministic: nodes and edges follow the graph's sorted order.
func ToDOT(g *bpg.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, x := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", x.String(), strings.Join(nodeAttrs(x), ", "))
	}

	buf.WriteString("\n")
	for _, p := range g.Edges() {
		attrs := edgeAttrs(g, p, opts)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -- %q;\n", p.U.String(), p.V.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", p.U.String(), p.V.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(x bpg.Extremity) []string {
	if x.IsTelomere() {
		return []string{`label="o"`, "shape=doublecircle", "fillcolor=" + colorTelomere}
	}
	return []string{fmt.Sprintf("label=%q", x.String())}
}

func edgeAttrs(g *bpg.Graph, p bpg.Pair, opts Options) []string {
	var attrs []string
	if opts.Partition != nil {
		if opts.Partition.IsContested(p) {
			attrs = append(attrs, "color="+colorContested, "penwidth=2")
		} else {
			attrs = append(attrs, "color="+colorUncontested)
		}
	}
	if opts.Colors {
		label := strings.Join(g.EdgeColors(p).Sorted(), ",")
		attrs = append(attrs, fmt.Sprintf("label=%q", label), "fontsize=9")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
