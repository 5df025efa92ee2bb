// Package interact implements the drag-to-reparent gesture for the branch
// graph as a pointer-driven state machine, independent of how layout is
// computed or how the graph is rendered.
//
// A [Controller] consumes pointer events from the host UI and emits a
// single commit callback when a drag from one eligible node ends on
// another. The machine has two states: Idle and Dragging. A drag starts on
// pointer-down over a node's handle (only in interactive-edit mode, and
// never from the default branch or a tentative node), tracks the pointer
// and the currently hovered drop candidate, and ends with exactly one of
// commit, no-op, or cancel. At most one drag session exists at a time and
// at most one commit is emitted per session.
//
// Direction convention: OnCommit(origin, target) proposes target as the
// new parent of origin - dragging a branch onto another base reads as
// "rebase origin onto target".
package interact
