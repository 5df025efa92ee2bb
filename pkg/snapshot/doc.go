// Package snapshot provides serialization types for repository snapshots
// and computed layouts.
//
// This package defines Branchboard's wire format, used for JSON files, API
// requests/responses, caching, and MongoDB persistence (the types carry
// bson tags for that reason).
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Snapshot]: the branch/worktree/PR state of a repository at a point
//     in time, as delivered by the (external) refresher
//   - [Layout]: a serialized [layout.Result], positions flattened to ids
//   - pkg/branchgraph, pkg/layout: the internal representations
//
// Use [Snapshot.Graph] to feed a snapshot into the layout engine and
// [FromResult] to serialize what comes back.
//
// # PR status
//
// PRState is a closed enum rather than a free-form string so the rendering
// layer can switch over it exhaustively; unknown upstream values map to
// [PRStateNone] at the decode boundary via [ParsePRState].
package snapshot
