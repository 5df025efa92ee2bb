// Package store persists named plans for the dashboard server.
//
// The CLI works off plan files on disk, but the server needs plans to
// survive restarts and be shared between clients, so it saves them as
// records keyed by id. Two backends:
//
//   - [MemoryStore]: in-process map, the default for single-instance runs
//   - [MongoStore]: MongoDB collection for hosted deployments
package store

import (
	"context"
	"time"

	"github.com/branchboard/branchboard/pkg/plan"
)

// Record is a saved plan plus the metadata the server tracks for it.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Anchor    string    `json:"anchor" bson:"anchor"`
	Plan      plan.Plan `json:"plan" bson:"plan"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists plan records.
type Store interface {
	// Put inserts or replaces a record. An empty ID is filled in and the
	// stored record (with timestamps set) is returned.
	Put(ctx context.Context, rec Record) (Record, error)

	// Get returns the record with the given id, or ErrCodePlanNotFound.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records ordered by name.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record; deleting a missing id is ErrCodePlanNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
