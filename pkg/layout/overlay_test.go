package layout

import (
	"testing"

	"github.com/branchboard/branchboard/pkg/branchgraph"
	"github.com/branchboard/branchboard/pkg/plan"
)

func TestOverlayDerivedIdentity(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main"),
		DefaultBranch: "main",
		Tasks:         []plan.Task{{ID: "uuid-1", Title: "Add Auth"}},
		Anchor:        "main",
	}, DefaultConfig())

	task := res.NodeByID("task/add-auth")
	if task == nil {
		t.Fatal("derived identity task/add-auth not placed")
	}
	if !task.Tentative {
		t.Error("overlay node must be tentative")
	}
	if task.Task == nil || task.Task.ID != "uuid-1" {
		t.Error("overlay node should reference its source task")
	}

	main := res.NodeByID("main")
	if task.Depth != main.Depth+1 {
		t.Errorf("task depth = %d, want %d", task.Depth, main.Depth+1)
	}

	if len(res.Edges) != 1 {
		t.Fatalf("edges = %d, want 1 anchor edge", len(res.Edges))
	}
	e := res.Edges[0]
	if e.From != main || e.To != task || !e.Tentative {
		t.Errorf("anchor edge = %s→%s tentative=%v, want main→task/add-auth tentative", e.From.ID, e.To.ID, e.Tentative)
	}
}

func TestOverlayCollisionSuppressed(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main", "task/add-auth"),
		Edges:         []branchgraph.Edge{{Parent: "main", Child: "task/add-auth"}},
		DefaultBranch: "main",
		Tasks:         []plan.Task{{ID: "uuid-1", Title: "Add Auth"}},
		Anchor:        "main",
	}, DefaultConfig())

	count := 0
	for _, n := range res.Nodes {
		if n.ID == "task/add-auth" {
			count++
			if n.Tentative {
				t.Error("real node must win the identity collision")
			}
		}
	}
	if count != 1 {
		t.Errorf("task/add-auth appears %d times, want 1", count)
	}

	for _, e := range res.Edges {
		if e.Tentative {
			t.Error("suppressed task must not contribute an edge")
		}
	}
}

func TestOverlayCursorContinues(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main", "feature-a", "feature-b"),
		Edges:         []branchgraph.Edge{{Parent: "main", Child: "feature-a"}, {Parent: "main", Child: "feature-b"}},
		DefaultBranch: "main",
		Tasks:         []plan.Task{{ID: "t1", Title: "refactor"}},
		Anchor:        "main",
	}, DefaultConfig())

	task := res.NodeByID("task/refactor")
	if task == nil {
		t.Fatal("task not placed")
	}
	// Real layout consumed cross slots 0 and 1; the overlay continues at 2.
	if task.CrossIndex != 2 {
		t.Errorf("task cross = %v, want 2 (continuing the real cursor)", task.CrossIndex)
	}
}

func TestOverlayTaskGraph(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main"),
		DefaultBranch: "main",
		Tasks: []plan.Task{
			{ID: "t1", Title: "API"},
			{ID: "t2", Title: "Client"},
		},
		Deps:   []plan.Dependency{{Parent: "t1", Child: "t2"}},
		Anchor: "main",
	}, DefaultConfig())

	api := res.NodeByID("task/api")
	client := res.NodeByID("task/client")
	if api == nil || client == nil {
		t.Fatal("missing overlay node")
	}
	if client.Depth != api.Depth+1 {
		t.Errorf("client depth = %d, want %d", client.Depth, api.Depth+1)
	}

	// One anchor edge to the overlay root, one internal dependency edge.
	var anchorEdges, taskEdges int
	for _, e := range res.Edges {
		if !e.Tentative {
			continue
		}
		if e.From.ID == "main" {
			anchorEdges++
		} else {
			taskEdges++
		}
	}
	if anchorEdges != 1 || taskEdges != 1 {
		t.Errorf("anchor edges = %d, task edges = %d, want 1/1", anchorEdges, taskEdges)
	}
}

func TestOverlayExplicitBranchName(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main"),
		DefaultBranch: "main",
		Tasks:         []plan.Task{{ID: "t1", Title: "whatever", Branch: "spike/wip"}},
		Anchor:        "main",
	}, DefaultConfig())

	if res.NodeByID("spike/wip") == nil {
		t.Error("explicit branch name should be the effective identity")
	}
}

func TestOverlayAnchorMissing(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main"),
		DefaultBranch: "main",
		Tasks:         []plan.Task{{ID: "t1", Title: "x"}},
		Anchor:        "not-there",
	}, DefaultConfig())

	if len(res.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1 (overlay skipped without anchor)", len(res.Nodes))
	}
}

func TestOverlayUniqueIDs(t *testing.T) {
	res := Compute(Input{
		Nodes:         nodes("main", "task/x"),
		Edges:         []branchgraph.Edge{{Parent: "main", Child: "task/x"}},
		DefaultBranch: "main",
		Tasks: []plan.Task{
			{ID: "t1", Title: "x"},          // collides with real task/x
			{ID: "t2", Title: "x"},          // collides with t1's identity too
			{ID: "t3", Title: "fresh work"}, // survives
		},
		Anchor: "main",
	}, DefaultConfig())

	seen := make(map[string]bool)
	for _, n := range res.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate layout node id %s", n.ID)
		}
		seen[n.ID] = true
	}
	if !seen["task/fresh-work"] {
		t.Error("non-colliding task should be placed")
	}
	if len(res.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(res.Nodes))
	}
}
