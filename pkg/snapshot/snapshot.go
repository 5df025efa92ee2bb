package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/branchboard/branchboard/pkg/branchgraph"
)

// PRState classifies the pull request attached to a branch, if any.
type PRState string

// Known pull request states. The rendering layer switches over these
// exhaustively; anything else decodes to PRStateNone.
const (
	PRStateNone   PRState = ""
	PRStateDraft  PRState = "draft"
	PRStateOpen   PRState = "open"
	PRStateMerged PRState = "merged"
	PRStateClosed PRState = "closed"
)

// ParsePRState maps an upstream status string onto the closed enum.
func ParsePRState(s string) PRState {
	switch PRState(s) {
	case PRStateDraft, PRStateOpen, PRStateMerged, PRStateClosed:
		return PRState(s)
	default:
		return PRStateNone
	}
}

// Node is one branch in a snapshot, with the metadata the dashboard shows
// on its card. Layout treats everything beyond Name as opaque.
type Node struct {
	Name     string  `json:"name" bson:"name"`
	PRState  PRState `json:"pr_state,omitempty" bson:"pr_state,omitempty"`
	PRNumber int     `json:"pr_number,omitempty" bson:"pr_number,omitempty"`
	Worktree string  `json:"worktree,omitempty" bson:"worktree,omitempty"`
	Ahead    int     `json:"ahead,omitempty" bson:"ahead,omitempty"`
	Behind   int     `json:"behind,omitempty" bson:"behind,omitempty"`

	Meta map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Edge is a directed parent→child relationship between two branches.
type Edge struct {
	Parent   string `json:"parent" bson:"parent"`
	Child    string `json:"child" bson:"child"`
	Designed bool   `json:"designed,omitempty" bson:"designed,omitempty"`
}

// Snapshot is the canonical serialization of a repository's branch graph
// at one point in time.
type Snapshot struct {
	DefaultBranch string `json:"default_branch" bson:"default_branch"`
	Nodes         []Node `json:"nodes" bson:"nodes"`
	Edges         []Edge `json:"edges" bson:"edges"`
}

// Graph converts the snapshot into the layout engine's input types. Each
// node's typed fields are folded into the opaque metadata map so they
// survive to the rendering layer without layout ever inspecting them.
func (s *Snapshot) Graph() ([]branchgraph.Node, []branchgraph.Edge) {
	ns := make([]branchgraph.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		meta := branchgraph.Metadata{}
		for k, v := range n.Meta {
			meta[k] = v
		}
		if n.PRState != PRStateNone {
			meta["pr_state"] = string(n.PRState)
			meta["pr_number"] = n.PRNumber
		}
		if n.Worktree != "" {
			meta["worktree"] = n.Worktree
		}
		meta["ahead"] = n.Ahead
		meta["behind"] = n.Behind
		ns[i] = branchgraph.Node{Name: n.Name, Meta: meta}
	}

	es := make([]branchgraph.Edge, len(s.Edges))
	for i, e := range s.Edges {
		es[i] = branchgraph.Edge{Parent: e.Parent, Child: e.Child, Designed: e.Designed}
	}
	return ns, es
}

// Node returns the snapshot node with the given branch name, or false.
func (s *Snapshot) Node(name string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Read decodes a JSON snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}

// ReadFile reads a JSON snapshot from disk.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the snapshot as indented JSON to w.
func Write(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// WriteFile writes the snapshot to a JSON file with 0644 permissions.
func WriteFile(s *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Hashable returns a stable byte representation of the snapshot for
// content-addressed cache keys.
func (s *Snapshot) Hashable() []byte {
	data, _ := json.Marshal(s)
	return data
}
