package branchgraph

import (
	"slices"
)

// Metadata stores arbitrary key-value pairs attached to a branch node.
// Layout never inspects it; it exists so PR state, worktree info and
// ahead/behind counts can travel with the node to the rendering layer.
type Metadata map[string]any

// Node represents one branch in the repository graph.
// Identity is the branch name, which must be unique.
type Node struct {
	Name string   // Branch name, the node's identity
	Meta Metadata // Opaque metadata (PR state, worktree, ahead/behind)
}

// Edge is a directed parent→child relationship between two branches.
// Designed marks edges the user drew during planning rather than edges
// derived from git history; it is cosmetic and has no layout effect.
type Edge struct {
	Parent   string
	Child    string
	Designed bool
}

// Model is the lookup structure built from a flat node/edge list.
// It is immutable after Build.
type Model struct {
	nodes    []Node
	index    map[string]int
	children map[string][]string
	parent   map[string]string
	roots    []string
}

// Build constructs a Model from raw nodes and edges.
//
// Edges whose endpoints are not both in the node set are dropped, as are
// self-edges. When a child appears under multiple parents the last edge
// wins for the parent lookup. Roots are the nodes that never appear as an
// edge's child, ordered with defaultBranch first (when it is a root) and
// the rest sorted lexicographically. Empty input yields an empty model.
func Build(nodes []Node, edges []Edge, defaultBranch string) *Model {
	m := &Model{
		index:    make(map[string]int, len(nodes)),
		children: make(map[string][]string),
		parent:   make(map[string]string),
	}
	for _, n := range nodes {
		if _, dup := m.index[n.Name]; dup {
			continue // first occurrence wins
		}
		m.index[n.Name] = len(m.nodes)
		m.nodes = append(m.nodes, n)
	}

	hasParent := make(map[string]bool)
	for _, e := range edges {
		if e.Parent == e.Child {
			continue
		}
		if _, ok := m.index[e.Parent]; !ok {
			continue
		}
		if _, ok := m.index[e.Child]; !ok {
			continue
		}
		m.children[e.Parent] = append(m.children[e.Parent], e.Child)
		m.parent[e.Child] = e.Parent
		hasParent[e.Child] = true
	}

	var rest []string
	for _, n := range m.nodes {
		if !hasParent[n.Name] && n.Name != defaultBranch {
			rest = append(rest, n.Name)
		}
	}
	slices.Sort(rest)

	if _, ok := m.index[defaultBranch]; ok && !hasParent[defaultBranch] {
		m.roots = append(m.roots, defaultBranch)
	}
	m.roots = append(m.roots, rest...)

	return m
}

// Nodes returns the input nodes in their original order.
// The returned slice must not be modified.
func (m *Model) Nodes() []Node { return m.nodes }

// Node returns the node with the given name, or false if absent.
func (m *Model) Node(name string) (Node, bool) {
	i, ok := m.index[name]
	if !ok {
		return Node{}, false
	}
	return m.nodes[i], true
}

// Children returns the child branch names of name, in edge order.
// Returns nil for leaves and unknown names. Read-only view.
func (m *Model) Children(name string) []string { return m.children[name] }

// Parent returns the parent of name as recorded by the last edge that
// referenced it as a child, or false if it has no parent.
func (m *Model) Parent(name string) (string, bool) {
	p, ok := m.parent[name]
	return p, ok
}

// Roots returns the ordered root names: the default branch first (when it
// is a root), then remaining roots lexicographically.
func (m *Model) Roots() []string { return m.roots }

// Contains reports whether a branch with the given name exists.
func (m *Model) Contains(name string) bool {
	_, ok := m.index[name]
	return ok
}

// NodeCount returns the number of distinct branch nodes.
func (m *Model) NodeCount() int { return len(m.index) }
