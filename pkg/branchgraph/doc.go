// Package branchgraph models a repository's branch graph for layout.
//
// # Overview
//
// Branchboard visualizes the branches of a repository (plus their worktrees
// and pull requests) as a tree rooted at the default branch. This package
// builds the lookup structure that the layout engine walks: parent→children
// and child→parent maps, the ordered set of roots, and the original node
// list for orphan handling.
//
// The input is deliberately loose. Branch data arrives from an external
// refresher and may be transiently inconsistent: edges can reference
// branches that no longer exist, a branch can appear as the child of more
// than one parent, and a malformed snapshot can even contain cycles.
// [Build] never fails - dangling edges and self-edges are dropped, and a
// child with multiple parents keeps the last parent written (layout later
// places it under whichever parent reaches it first).
//
// # Basic Usage
//
//	m := branchgraph.Build(nodes, edges, "main")
//	for _, root := range m.Roots() {
//	    walk(m, root)
//	}
//
// Roots are ordered with the default branch first and the remaining roots
// sorted lexicographically, so layout output is deterministic.
//
// # Concurrency
//
// A Model is immutable after Build and safe for concurrent reads.
package branchgraph
