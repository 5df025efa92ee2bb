package snapshot

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/branchboard/branchboard/pkg/layout"
	"github.com/branchboard/branchboard/pkg/plan"
)

func TestReadWriteRoundTrip(t *testing.T) {
	s := &Snapshot{
		DefaultBranch: "main",
		Nodes: []Node{
			{Name: "main", Worktree: "/repo"},
			{Name: "feature-a", PRState: PRStateOpen, PRNumber: 12, Ahead: 3, Behind: 1},
		},
		Edges: []Edge{{Parent: "main", Child: "feature-a", Designed: true}},
	}

	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.DefaultBranch != "main" || len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
	n, ok := got.Node("feature-a")
	if !ok || n.PRState != PRStateOpen || n.PRNumber != 12 {
		t.Errorf("feature-a = %+v", n)
	}
}

func TestReadInvalid(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParsePRState(t *testing.T) {
	tests := []struct {
		in   string
		want PRState
	}{
		{"open", PRStateOpen},
		{"draft", PRStateDraft},
		{"merged", PRStateMerged},
		{"closed", PRStateClosed},
		{"", PRStateNone},
		{"bogus", PRStateNone},
	}
	for _, tt := range tests {
		if got := ParsePRState(tt.in); got != tt.want {
			t.Errorf("ParsePRState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGraphConversion(t *testing.T) {
	s := &Snapshot{
		DefaultBranch: "main",
		Nodes:         []Node{{Name: "main", PRState: PRStateMerged, PRNumber: 7}},
	}

	ns, es := s.Graph()
	if len(ns) != 1 || len(es) != 0 {
		t.Fatalf("conversion = %d nodes, %d edges", len(ns), len(es))
	}
	if ns[0].Meta["pr_state"] != "merged" || ns[0].Meta["pr_number"] != 7 {
		t.Errorf("meta = %v", ns[0].Meta)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	s := &Snapshot{DefaultBranch: "main", Nodes: []Node{{Name: "main"}}}
	ns, es := s.Graph()
	computed := layout.Compute(layout.Input{
		Nodes:         ns,
		Edges:         es,
		DefaultBranch: s.DefaultBranch,
		Tasks:         []plan.Task{{ID: "t1", Title: "Add Auth"}},
		Anchor:        "main",
	}, layout.DefaultConfig())

	wire := FromResult(computed)
	if len(wire.Nodes) != 2 || len(wire.Edges) != 1 {
		t.Fatalf("wire = %d nodes, %d edges", len(wire.Nodes), len(wire.Edges))
	}

	var tentative *LayoutNode
	for i := range wire.Nodes {
		if wire.Nodes[i].Tentative {
			tentative = &wire.Nodes[i]
		}
	}
	if tentative == nil || tentative.ID != "task/add-auth" || tentative.Title != "Add Auth" {
		t.Errorf("tentative wire node = %+v", tentative)
	}

	path := filepath.Join(t.TempDir(), "out.layout.json")
	if err := WriteLayoutFile(wire, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	back, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if back.Width != wire.Width || len(back.Nodes) != len(wire.Nodes) {
		t.Error("layout file round trip lost data")
	}
}
