// Package dot renders computed layouts as Graphviz diagrams.
//
// # Overview
//
// The canvas in the dashboard draws layouts itself, but the CLI needs a
// way to export the same picture as a standalone file. This package turns
// a [layout.Result] into Graphviz DOT source and renders it to SVG
// in-process.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	src := dot.ToDOT(res, snap, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Styling
//
// Branch nodes are solid rounded boxes filled by pull request state
// (draft grey, open green, merged purple, closed red). Tentative task
// nodes and their edges are dashed, matching the dashboard's overlay
// styling. Designed edges are drawn solid, inferred edges dotted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so exports work without a graphviz binary installed.
package dot
