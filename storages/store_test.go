package storages

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/stepviz/modes"
	"github.com/reusee/stepviz/snapshots"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := openTest(t)

	if err := store.Save(ctx, "rbtree", "a", snapshots.Snapshot{
		Elements: []int{2, 1, 3},
	}); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(ctx, "rbtree", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Elements, []int{2, 1, 3}) {
		t.Fatalf("got %v", got)
	}

	// replace
	if err := store.Save(ctx, "rbtree", "a", snapshots.Snapshot{}); err != nil {
		t.Fatal(err)
	}
	got, err = store.Load(ctx, "rbtree", "a")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Fatalf("got %v", got)
	}

	// keyed by program
	_, err = store.Load(ctx, "linkedlist", "a")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestListDelete(t *testing.T) {
	ctx := context.Background()
	store := openTest(t)
	for _, name := range []string{"b", "a", "c"} {
		if err := store.Save(ctx, "linkedlist", name, snapshots.Snapshot{
			Elements: []int{1, 2},
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Save(ctx, "rbtree", "x", snapshots.Snapshot{}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx, "linkedlist")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %v", entries)
	}
	for i, name := range []string{"a", "b", "c"} {
		if entries[i].Name != name || entries[i].Elements != 2 {
			t.Fatalf("got %+v", entries[i])
		}
	}

	if err := store.Delete(ctx, "linkedlist", "b"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "linkedlist", "b"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("got %v", err)
	}
	entries, err = store.List(ctx, "linkedlist")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %v", entries)
	}
}

func TestModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.db")
	dscope.New(modes.ForTest(t), new(Module)).Fork(
		func() SnapshotDB {
			return SnapshotDB(path)
		},
	).Call(func(
		open OpenStore,
	) {
		store, err := open(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		defer store.Close()
		if err := store.Save(context.Background(), "p", "n", snapshots.Snapshot{}); err != nil {
			t.Fatal(err)
		}
	})
}
