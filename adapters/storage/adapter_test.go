package storage

import (
	"context"
	"testing"
	"time"

	"chaincost/core/network"
	"chaincost/core/scenario"
	"chaincost/internal/errors"
)

func sampleScenario(name string) *StoredScenario {
	return &StoredScenario{
		ScenarioID: name,
		Seed:       42,
		Configuration: scenario.Configuration{
			"LRU-1": {Supplier: "SUP-1", Assembly: "ASM-1", DistributionCenter: "DC-1",
				SupplierLegMode: network.ModeGround, DCLegMode: network.ModeGround},
		},
		Parameters: scenario.DefaultParameters(),
	}
}

// storeFactory builds a fresh store per test so both backends share the suite
type storeFactory func(t *testing.T) Store

func runStoreSuite(t *testing.T, factory storeFactory) {
	ctx := context.Background()

	t.Run("save assigns id and timestamp", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		s := sampleScenario("baseline")
		if err := store.Save(ctx, s); err != nil {
			t.Fatal(err)
		}
		if s.ID == "" {
			t.Fatal("Save must assign an ID")
		}
		if s.CreatedAt.IsZero() {
			t.Fatal("Save must stamp CreatedAt")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		s := sampleScenario("baseline")
		if err := store.Save(ctx, s); err != nil {
			t.Fatal(err)
		}

		got, err := store.Get(ctx, s.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.ScenarioID != "baseline" || got.Seed != 42 {
			t.Fatalf("round trip lost fields: %+v", got)
		}
		if got.Configuration["LRU-1"].Supplier != "SUP-1" {
			t.Fatalf("configuration lost: %+v", got.Configuration)
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Get(ctx, "nope")
		if !errors.IsType(err, errors.TypeNotFound) {
			t.Fatalf("expected a not-found error, got %v", err)
		}
	})

	t.Run("list is oldest first", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		first := sampleScenario("first")
		first.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		second := sampleScenario("second")
		second.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		// Save newest first; List must still order by timestamp.
		if err := store.Save(ctx, second); err != nil {
			t.Fatal(err)
		}
		if err := store.Save(ctx, first); err != nil {
			t.Fatal(err)
		}

		all, err := store.List(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 scenarios, got %d", len(all))
		}
		if all[0].ScenarioID != "first" || all[1].ScenarioID != "second" {
			t.Fatalf("list out of order: %s, %s", all[0].ScenarioID, all[1].ScenarioID)
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		s := sampleScenario("gone")
		if err := store.Save(ctx, s); err != nil {
			t.Fatal(err)
		}
		if err := store.Delete(ctx, s.ID); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Get(ctx, s.ID); !errors.IsType(err, errors.TypeNotFound) {
			t.Fatalf("deleted scenario still readable: %v", err)
		}
		if err := store.Delete(ctx, s.ID); !errors.IsType(err, errors.TypeNotFound) {
			t.Fatalf("double delete: expected not-found, got %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store { return NewMemoryStore() })
}

func TestFileStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		s, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		return s
	})
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := sampleScenario("baseline")
	if err := store.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's struct after save must not leak into the store.
	s.ScenarioID = "mutated"
	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ScenarioID != "baseline" {
		t.Fatal("store shares memory with the caller")
	}
}

func TestNewBackendSelection(t *testing.T) {
	s, err := New(BackendMemory, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("expected a memory store, got %T", s)
	}

	s, err = New(BackendFile, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("expected a file store, got %T", s)
	}

	if _, err := New(Backend("redis"), ""); err == nil {
		t.Fatal("unknown backend must be rejected")
	}
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("file store without a directory must be rejected")
	}
}
