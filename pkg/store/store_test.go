package store

import (
	"context"
	"testing"

	bberrors "github.com/branchboard/branchboard/pkg/errors"
	"github.com/branchboard/branchboard/pkg/plan"
)

func testRecord(name string) Record {
	return Record{
		Name:   name,
		Anchor: "main",
		Plan: plan.Plan{
			Tasks: []plan.Task{{ID: "t1", Title: "Add auth"}},
			Deps:  nil,
		},
	}
}

func TestMemoryStorePutFillsID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.Put(ctx, testRecord("sprint-1"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestMemoryStoreGetRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	saved, err := s.Put(ctx, testRecord("sprint-1"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "sprint-1" {
		t.Errorf("Name = %q, want %q", got.Name, "sprint-1")
	}
	if len(got.Plan.Tasks) != 1 || got.Plan.Tasks[0].ID != "t1" {
		t.Errorf("plan not preserved: %+v", got.Plan)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	if !bberrors.Is(err, bberrors.ErrCodePlanNotFound) {
		t.Errorf("expected PLAN_NOT_FOUND, got %v", err)
	}
}

func TestMemoryStorePutPreservesCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.Put(ctx, testRecord("sprint-1"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	updated := first
	updated.Name = "sprint-1-renamed"
	second, err := s.Put(ctx, updated)
	if err != nil {
		t.Fatalf("Put update: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v vs %v", second.CreatedAt, first.CreatedAt)
	}
	if second.Name != "sprint-1-renamed" {
		t.Errorf("Name = %q, want renamed", second.Name)
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if _, err := s.Put(ctx, testRecord(name)); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for i, want := range []string{"alpha", "bravo", "charlie"} {
		if recs[i].Name != want {
			t.Errorf("recs[%d].Name = %q, want %q", i, recs[i].Name, want)
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.Put(ctx, testRecord("sprint-1"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !bberrors.Is(err, bberrors.ErrCodePlanNotFound) {
		t.Errorf("expected PLAN_NOT_FOUND after delete, got %v", err)
	}
	if err := s.Delete(ctx, rec.ID); !bberrors.Is(err, bberrors.ErrCodePlanNotFound) {
		t.Errorf("expected PLAN_NOT_FOUND on double delete, got %v", err)
	}
}
