package layout

import (
	"github.com/branchboard/branchboard/pkg/plan"
)

// mergePlan extends a completed real-graph layout with the tentative task
// graph, anchored under in.Anchor. The cross cursor continues from where
// the real layout stopped so the two graphs never overlap in cross space.
// Returns the tentative layout edges (anchor→root plus internal task
// dependencies); placed tentative nodes are appended to e.nodes.
//
// A task whose effective branch name collides with an already placed real
// node is suppressed entirely: no node, no edges. Its children are treated
// as if the suppressed task never existed, so they become overlay roots
// when no surviving dependency reaches them.
func (e *engine) mergePlan(in Input, cursor *float64) []*Edge {
	anchor := e.placed[in.Anchor]
	if anchor == nil {
		return nil // anchor unresolved, skip the overlay
	}

	// Resolve effective identities, dropping real-node collisions and
	// duplicate identities between tasks (first task wins).
	effByTask := make(map[string]string, len(in.Tasks))
	taskOf := make(map[string]*plan.Task, len(in.Tasks))
	var order []string
	for i := range in.Tasks {
		t := &in.Tasks[i]
		eff := t.EffectiveBranch()
		if _, real := e.placed[eff]; real {
			continue
		}
		if _, dup := taskOf[eff]; dup {
			continue
		}
		effByTask[t.ID] = eff
		taskOf[eff] = t
		order = append(order, eff)
	}

	children := make(map[string][]string)
	hasParent := make(map[string]bool)
	for _, d := range in.Deps {
		p, okP := effByTask[d.Parent]
		c, okC := effByTask[d.Child]
		if !okP || !okC || p == c {
			continue
		}
		children[p] = append(children[p], c)
		hasParent[c] = true
	}

	// Switch the engine into the overlay phase: same recursion, tentative
	// subgraph, fresh width cache.
	e.children = func(id string) []string { return children[id] }
	e.tentative = true
	e.taskOf = taskOf
	e.widths = make(map[string]float64, len(order))
	e.onStack = make(map[string]bool)

	var edges []*Edge
	for _, eff := range order {
		if hasParent[eff] {
			continue
		}
		*cursor = e.layoutSubtree(eff, anchor.Depth+1, *cursor)
		edges = append(edges, &Edge{From: anchor, To: e.placed[eff], Tentative: true})
	}

	for _, d := range in.Deps {
		p, okP := effByTask[d.Parent]
		c, okC := effByTask[d.Child]
		if !okP || !okC || p == c {
			continue
		}
		from, to := e.placed[p], e.placed[c]
		if from == nil || to == nil {
			continue
		}
		edges = append(edges, &Edge{From: from, To: to, Tentative: true})
	}

	return edges
}
