package localstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"blinky/internal/core"
	"blinky/internal/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestProjectRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	projects := s.Projects()

	created := core.Project{
		ID:          "p1",
		Name:        "X",
		Manager:     "M",
		Status:      core.StatusInProgress,
		Type:        core.TypeFreelancer,
		Progress:    40,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		LastUpdated: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	if err := projects.Insert(ctx, created); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Reopen from disk to prove durability.
	reopened, err := Open(s.dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	items, err := reopened.Projects().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0] != created {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", items[0], created)
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	projects := s.Projects()

	p := core.Project{ID: "dup", Name: "X", Manager: "M", Status: core.StatusNotStarted}
	if err := projects.Insert(ctx, p); err != nil {
		t.Fatalf("insert: %v", err)
	}

	p.Name = "Y"
	if err := projects.Insert(ctx, p); !errors.Is(err, state.ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}

	items, err := projects.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "X" {
		t.Fatalf("store holds %d records with id %q: %+v", len(items), "dup", items)
	}
}

func TestReplaceAndRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	expenses := s.Expenses()

	e := core.Expense{ID: "e1", Amount: core.Money{Cents: 500}, Category: "food", Description: "lunch", Date: time.Now().UTC().Truncate(time.Second)}
	if err := expenses.Insert(ctx, e); err != nil {
		t.Fatalf("insert: %v", err)
	}

	e.Description = "dinner"
	if err := expenses.Replace(ctx, e); err != nil {
		t.Fatalf("replace: %v", err)
	}
	items, _ := expenses.List(ctx)
	if items[0].Description != "dinner" {
		t.Fatalf("replace not persisted: %+v", items[0])
	}

	// Replacing an unknown id must not add a row.
	ghost := e
	ghost.ID = "missing"
	if err := expenses.Replace(ctx, ghost); err != nil {
		t.Fatalf("replace unknown: %v", err)
	}
	if items, _ := expenses.List(ctx); len(items) != 1 {
		t.Fatalf("replace of unknown id added a row")
	}

	if err := expenses.Remove(ctx, "e1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := expenses.Remove(ctx, "e1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if items, _ := expenses.List(ctx); len(items) != 0 {
		t.Fatalf("remove not persisted")
	}
}

func TestLegacyBareArrayIsReadAndUpgraded(t *testing.T) {
	dir := t.TempDir()
	// A file written before the envelope existed: bare array, no status field
	// on the second record.
	legacy := `[
		{"id":"p1","name":"Old","manager":"M","status":"Completed","progress":100},
		{"id":"p2","name":"Older","manager":"M","progress":180}
	]`
	if err := os.WriteFile(filepath.Join(dir, "projects.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("seed legacy file: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	items, err := s.Projects().List(ctx)
	if err != nil {
		t.Fatalf("list legacy: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[1].Status != core.StatusNotStarted {
		t.Fatalf("missing status not defaulted: %q", items[1].Status)
	}
	if items[1].Progress != 100 {
		t.Fatalf("out-of-range progress not clamped: %d", items[1].Progress)
	}

	// Any write upgrades the file to the current envelope.
	if err := s.Projects().Insert(ctx, core.Project{ID: "p3", Name: "New", Manager: "M", Status: core.StatusNotStarted}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "projects.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if data[0] != '{' {
		t.Fatalf("file not upgraded to envelope: %s", data[:1])
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	s := openTestStore(t)
	items, err := s.Goals().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty collection, got %d", len(items))
	}
}

func TestNewerSchemaVersionIsRejected(t *testing.T) {
	dir := t.TempDir()
	future := `{"version":99,"items":[]}`
	if err := os.WriteFile(filepath.Join(dir, "income.json"), []byte(future), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Income().List(context.Background()); err == nil {
		t.Fatalf("expected version error")
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Income().Insert(ctx, core.Income{ID: "i1", Amount: core.Money{Cents: 100}, Source: "s", Date: time.Now()}); err != nil {
		t.Fatalf("insert income: %v", err)
	}
	if err := s.Goals().Insert(ctx, core.SavingsGoal{ID: "g1", Name: "Car", TargetAmount: core.Money{Cents: 1}}); err != nil {
		t.Fatalf("insert goal: %v", err)
	}

	if items, _ := s.Income().List(ctx); len(items) != 1 {
		t.Fatalf("income len = %d", len(items))
	}
	if items, _ := s.Expenses().List(ctx); len(items) != 0 {
		t.Fatalf("expenses leaked entries")
	}
}
