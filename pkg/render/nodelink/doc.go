// Package nodelink renders assembled dependency graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Styling
//
// Projects are drawn as filled boxes, packages as rounded boxes. Edges are
// labelled with the dependency version; edges and nodes flagged with
// multiple versions are drawn in red so conflicts stand out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
