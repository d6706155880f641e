package store

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/j3kstrum/runelite-bingo/internal/bingo"
	"github.com/j3kstrum/runelite-bingo/internal/config"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
)

func snapshots(t *testing.T, n int) []bingo.Snapshot {
	t.Helper()
	rng := rand.New(rand.NewSource(11))
	out := make([]bingo.Snapshot, n)
	for i := range out {
		b, err := bingo.Random(rng, tasks.Env{})
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		if i == 1 {
			b.Cancel()
		}
		out[i] = b.Snapshot()
	}
	return out
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	db, err := OpenSQLite(filepath.Join(dir, "boards.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return map[string]Store{
		"file":   NewFile(filepath.Join(dir, "nested", "boards.json")),
		"sqlite": db,
	}
}

func TestEmptyStoreLoadsNothing(t *testing.T) {
	for name, s := range backends(t) {
		got, err := s.Load(context.Background())
		if err != nil || len(got) != 0 {
			t.Errorf("%s: got %d boards, err %v", name, len(got), err)
		}
	}
}

func TestSaveLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	want := snapshots(t, 3)
	for name, s := range backends(t) {
		if err := s.Save(ctx, want); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: round trip mismatch", name)
		}

		// saving a shorter list replaces the set
		if err := s.Save(ctx, want[2:]); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err = s.Load(ctx)
		if err != nil || len(got) != 1 || got[0].ID != want[2].ID {
			t.Fatalf("%s: after shrink got %d boards, err %v", name, len(got), err)
		}
		if _, err := bingo.Load(got[0], tasks.Env{}); err != nil {
			t.Fatalf("%s: stored snapshot no longer loads: %v", name, err)
		}
	}
}

func TestFileRejectsCorruptDocument(t *testing.T) {
	p := filepath.Join(t.TempDir(), "boards.json")
	if err := os.WriteFile(p, []byte(`{"version":1,"boards":[`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(p).Load(context.Background()); err == nil {
		t.Fatal("corrupt file loaded")
	}
	if err := os.WriteFile(p, []byte(`{"version":9,"boards":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(p).Load(context.Background()); err == nil {
		t.Fatal("future version loaded")
	}
}

func TestUnconfigured(t *testing.T) {
	if _, err := NewFile("").Load(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("want ErrNotConfigured, got %v", err)
	}
	if _, err := OpenSQLite(" "); err == nil {
		t.Fatal("empty sqlite path accepted")
	}
}

func TestOpenFollowsConfig(t *testing.T) {
	root := t.TempDir()
	for _, kind := range []string{config.StoreFile, config.StoreSQLite} {
		s, err := Open(config.Config{ConfigRoot: root, Profile: "test", Store: kind})
		if err != nil {
			t.Fatalf("%s: open: %v", kind, err)
		}
		if err := s.Save(context.Background(), snapshots(t, 1)); err != nil {
			t.Fatalf("%s: save: %v", kind, err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("%s: close: %v", kind, err)
		}
	}
	for _, name := range []string{"boards.json", "boards.db"} {
		if _, err := os.Stat(filepath.Join(root, "RuneliteBingo", "test", name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
	if _, err := Open(config.Config{ConfigRoot: root, Store: "redis"}); err == nil {
		t.Fatal("unknown back end accepted")
	}
}
