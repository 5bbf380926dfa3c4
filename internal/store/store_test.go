package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *ProjectStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestProjectStore_SaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &Project{
		SystemName:      "HireAI Resume Screener",
		IntendedPurpose: "Screen applicants",
		UseCase:         "Employment",
		ReportMD:        "# Report",
		SourcesJSON:     `[{"key":"S1"}]`,
		TotalTokens:     1500,
		CostUSD:         0.045,
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	if p.ID == 0 {
		t.Fatal("Save must assign an id")
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SystemName != p.SystemName || got.ReportMD != p.ReportMD || got.CostUSD != p.CostUSD {
		t.Fatalf("loaded = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestProjectStore_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if err := s.Save(ctx, &Project{SystemName: name}); err != nil {
			t.Fatal(err)
		}
	}
	rows, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	// Same-timestamp rows may keep insert order; the last insert must not be
	// ordered before an earlier one with a later timestamp.
	if rows[0].CreatedAt.Before(rows[2].CreatedAt) {
		t.Fatal("list not ordered newest first")
	}
}

func TestProjectStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProjectStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := &Project{SystemName: "to delete"}
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted project still loads: %v", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}
