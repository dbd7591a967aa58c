package persist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/fieldboost/internal/state"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "scenarios.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDBSaveLoad(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	s := state.Default()
	s.Particle.Charge = -2

	saved, err := db.Save(ctx, "negative", s)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected non-empty id")
	}

	for _, key := range []string{saved.ID, "negative"} {
		sc, err := db.Load(ctx, key)
		if err != nil {
			t.Fatalf("load %q failed: %v", key, err)
		}
		got, warnings, err := sc.State(state.State{})
		if err != nil || len(warnings) != 0 {
			t.Fatalf("decode: %v %v", err, warnings)
		}
		if got != s {
			t.Errorf("loaded state %+v, want %+v", got, s)
		}
	}
}

func TestDBSave_ReplacesByName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	clock := time.Unix(1000, 0)
	db.now = func() time.Time { return clock }

	first, err := db.Save(ctx, "demo", state.Default())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	clock = clock.Add(time.Minute)
	s := state.Default()
	s.Particle.Mass = 4
	second, err := db.Save(ctx, "demo", s)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("id changed from %s to %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) || !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("timestamps: first %+v second %+v", first, second)
	}

	runs, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 scenario, got %d", len(runs))
	}
}

func TestDBList_Order(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	list, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected 0 scenarios, got %d", len(list))
	}

	clock := time.Unix(1000, 0)
	db.now = func() time.Time { return clock }
	for _, name := range []string{"a", "b", "c"} {
		clock = clock.Add(time.Second)
		if _, err := db.Save(ctx, name, state.Default()); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	list, err = db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 3 || list[0].Name != "c" || list[2].Name != "a" {
		t.Errorf("unexpected order: %+v", list)
	}
}

func TestDBErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Save(ctx, "", state.Default()); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := db.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := db.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := db.Save(ctx, "gone", state.Default()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.Delete(ctx, "gone"); err != nil {
		t.Errorf("delete: %v", err)
	}
	if _, err := db.Load(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
