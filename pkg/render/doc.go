// Package render holds visualization back ends for breakpoint graphs.
//
// The [nodelink] subpackage emits Graphviz DOT and renders it to SVG
// in-process, colouring each adjacency by its CARP classification.
package render
