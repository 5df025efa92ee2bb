package layout

import (
	"github.com/branchboard/branchboard/pkg/branchgraph"
	"github.com/branchboard/branchboard/pkg/plan"
)

// engine holds the per-call state of one layout pass. It is created inside
// Compute and never escapes, so layout stays free of shared mutable state.
type engine struct {
	children func(id string) []string
	placed   map[string]*Node
	nodes    []*Node

	// subtree-width cache for the current phase; onStack guards the width
	// recursion against malformed cyclic input.
	widths  map[string]float64
	onStack map[string]bool

	// overlay phase decoration
	tentative bool
	taskOf    map[string]*plan.Task
}

// Compute lays out the branch graph described by in, optionally merges the
// tentative overlay, and converts the abstract (depth, cross) grid to
// pixel coordinates per cfg. It is pure: identical inputs produce
// bit-identical results, and the returned nodes are freshly allocated.
func Compute(in Input, cfg Config) Result {
	m := branchgraph.Build(in.Nodes, in.Edges, in.DefaultBranch)

	e := &engine{
		children: m.Children,
		placed:   make(map[string]*Node, m.NodeCount()),
		widths:   make(map[string]float64, m.NodeCount()),
		onStack:  make(map[string]bool),
	}

	// Roots share one cross cursor so their subtrees never overlap.
	cursor := 0.0
	for _, root := range m.Roots() {
		cursor = e.layoutSubtree(root, 0, cursor)
	}

	// Orphan scan: nodes unreached from any root (possible only with
	// malformed input such as isolated cycles) become extra roots, in
	// original list order.
	ns := m.Nodes()
	for i := range ns {
		if _, ok := e.placed[ns[i].Name]; !ok {
			cursor = e.layoutSubtree(ns[i].Name, 0, cursor)
		}
	}

	for i := range ns {
		if n := e.placed[ns[i].Name]; n != nil {
			n.Branch = &ns[i]
		}
	}

	var edges []*Edge
	for _, ed := range in.Edges {
		if ed.Parent == ed.Child {
			continue
		}
		from, to := e.placed[ed.Parent], e.placed[ed.Child]
		if from == nil || to == nil {
			continue // dangling edge, expected mid-refresh
		}
		edges = append(edges, &Edge{From: from, To: to, Designed: ed.Designed})
	}

	if len(in.Tasks) > 0 {
		edges = append(edges, e.mergePlan(in, &cursor)...)
	}

	w, h := cfg.place(e.nodes)
	return Result{Nodes: e.nodes, Edges: edges, Width: w, Height: h}
}

// layoutSubtree places id at the given depth and the cross slot that
// centers it over its descendants, then recurses over its children with a
// running cursor. Returns the next free cross slot. A node already placed
// through an earlier parent is skipped, projecting DAG input into a forest.
func (e *engine) layoutSubtree(id string, depth int, minCross float64) float64 {
	if _, ok := e.placed[id]; ok {
		return minCross
	}

	n := &Node{
		ID:         id,
		Depth:      depth,
		CrossIndex: minCross + (e.subtreeWidth(id)-1)/2,
		Tentative:  e.tentative,
	}
	if e.tentative {
		n.Task = e.taskOf[id]
	}
	e.placed[id] = n
	e.nodes = append(e.nodes, n)

	cursor := minCross
	for _, c := range e.children(id) {
		cursor = e.layoutSubtree(c, depth+1, cursor)
	}
	if next := minCross + 1; cursor < next {
		cursor = next
	}
	return cursor
}

// subtreeWidth counts the leaf slots a subtree consumes: 1 for a leaf,
// otherwise the sum over its children. Memoized per phase; a back edge in
// malformed cyclic input contributes a single slot instead of recursing.
func (e *engine) subtreeWidth(id string) float64 {
	if w, ok := e.widths[id]; ok {
		return w
	}
	if e.onStack[id] {
		return 1
	}
	e.onStack[id] = true
	w := 0.0
	for _, c := range e.children(id) {
		w += e.subtreeWidth(c)
	}
	delete(e.onStack, id)
	if w == 0 {
		w = 1
	}
	e.widths[id] = w
	return w
}
