// Package nodelink renders breakpoint graphs as node-link diagrams.
//
// # Overview
//
// Nodes are marker extremities ("1h", "1t") plus the telomere sentinel.
// Edges are adjacencies; each is drawn once regardless of how many genomes
// share it. When a [carp.Partition] is supplied, contested adjacencies are
// drawn red and uncontested ones grey.
//
// # Usage
//
//	p := carp.Classify(g)
//	dot := nodelink.ToDOT(g, nodelink.Options{Partition: &p, Colors: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Partition: edge colouring by classification (nil draws all edges black)
//   - Colors: label each edge with the genomes that carry it
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly; no external binaries are needed.
package nodelink
