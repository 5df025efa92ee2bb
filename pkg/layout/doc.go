// Package layout turns a branch graph, optionally overlaid with a
// tentative task plan, into 2D coordinates for rendering.
//
// # Overview
//
// The engine is a single recursive tree layout parameterized by an axis
// orientation. Each node gets a generation (depth axis) and a sibling slot
// (cross axis); a parent is centered over the span of its descendants.
// DAG inputs are projected into a forest: a node is placed by the first
// parent that reaches it and later edges simply connect to the already
// placed node.
//
// A completed real-graph layout can be extended with a tentative overlay:
// planned tasks are laid out as children of a chosen anchor branch, in the
// same coordinate space, continuing the cross-axis cursor so the two
// graphs never collide. Tasks whose effective branch name collides with a
// real branch are suppressed - the real node wins.
//
// # Usage
//
//	res := layout.Compute(layout.Input{
//	    Nodes:         nodes,
//	    Edges:         edges,
//	    DefaultBranch: "main",
//	}, layout.DefaultConfig())
//	for _, n := range res.Nodes {
//	    draw(n.X, n.Y, n.ID)
//	}
//
// # Determinism
//
// Compute is a pure function: identical inputs and config produce
// bit-identical coordinates. All state lives in the call frame; nothing is
// shared across invocations or goroutines.
package layout
