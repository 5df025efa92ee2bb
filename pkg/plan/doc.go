// Package plan models tentative task graphs: work a user has sketched on
// the dashboard that has not yet been promoted to real branches.
//
// # Overview
//
// A plan is a small DAG of tasks. Each task has an opaque id (a UUID when
// generated by Branchboard), a human title, and optionally an explicit
// branch name. Tasks without an explicit branch name get one derived from
// the title by [Slug], so the overlay can place them in the same identity
// space as real branches.
//
// Plans can be authored by hand as YAML and loaded with [Load]:
//
//	tasks:
//	  - id: auth
//	    title: Add Auth
//	  - id: auth-mw
//	    title: Auth middleware
//	    needs: [auth]
//
// The `needs` list names the parent tasks a task depends on. Missing ids
// are filled in with UUIDs at load time.
//
// # Concurrency
//
// Plan values are plain data and safe to share once built.
package plan
