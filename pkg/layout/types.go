package layout

import (
	"github.com/branchboard/branchboard/pkg/branchgraph"
	"github.com/branchboard/branchboard/pkg/plan"
)

// Orientation selects how the abstract (depth, cross) axes map to (x, y).
type Orientation string

const (
	// OrientationRows advances generations downward: depth→y, cross→x.
	OrientationRows Orientation = "rows"
	// OrientationColumns advances generations rightward: depth→x, cross→y.
	OrientationColumns Orientation = "columns"
)

// Config holds the pure-geometry options for a layout pass.
type Config struct {
	NodeWidth           float64
	NodeHeight          float64
	TentativeNodeHeight float64
	HorizontalGap       float64
	VerticalGap         float64
	Padding             float64
	Orientation         Orientation
}

// DefaultConfig returns the geometry the dashboard ships with.
func DefaultConfig() Config {
	return Config{
		NodeWidth:           180,
		NodeHeight:          72,
		TentativeNodeHeight: 56,
		HorizontalGap:       48,
		VerticalGap:         32,
		Padding:             24,
		Orientation:         OrientationRows,
	}
}

// Node is a positioned projection of exactly one branch or one tentative
// task. Created fresh by every Compute call and never mutated afterwards;
// the caller owns the slice and may discard it on the next recompute.
type Node struct {
	ID         string
	X, Y       float64
	Depth      int
	CrossIndex float64 // fractional when a parent is centered over an even span
	Tentative  bool

	// Exactly one of Branch/Task is set, pointing at the source entity.
	Branch *branchgraph.Node
	Task   *plan.Task
}

// Edge connects two placed nodes. Edges whose endpoints failed to resolve
// to a placed node are dropped before the result is returned.
type Edge struct {
	From      *Node
	To        *Node
	Designed  bool
	Tentative bool
}

// Input is an immutable snapshot of everything a layout pass consumes.
type Input struct {
	Nodes         []branchgraph.Node
	Edges         []branchgraph.Edge
	DefaultBranch string

	// Optional tentative overlay. Anchor names the real branch the plan
	// hangs under; when it does not resolve the overlay is skipped.
	Tasks  []plan.Task
	Deps   []plan.Dependency
	Anchor string
}

// Result is the positioned graph plus the canvas extent that contains it.
type Result struct {
	Nodes  []*Node
	Edges  []*Edge
	Width  float64
	Height float64
}

// NodeByID returns the placed node with the given identity, or nil.
func (r Result) NodeByID(id string) *Node {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
