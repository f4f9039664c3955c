package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// ShapeStoreContractTest is a reusable test suite that verifies if an adapter complies
// with ports.ShapeStore and ports.Selection. The store must start empty.
func ShapeStoreContractTest(t *testing.T, store ports.ShapeStore, sel ports.Selection) {
	t.Helper()

	var first, second *domain.Shape

	// 1. Build assigns ids and does not add
	t.Run("Build", func(t *testing.T) {
		var err error
		first, err = store.Build(domain.Shape{Kind: domain.KindRect, Width: 10, Height: 10})
		if err != nil {
			t.Fatalf("unexpected error building shape: %v", err)
		}
		if first.ID == "" {
			t.Fatal("expected factory to assign an id")
		}
		if len(store.All()) != 0 {
			t.Errorf("Build must not add to the store, got %d shapes", len(store.All()))
		}

		second, err = store.Build(domain.Shape{ID: "fixed", Kind: domain.KindCircle, Radius: 4})
		if err != nil {
			t.Fatalf("unexpected error building shape: %v", err)
		}
		if second.ID != "fixed" {
			t.Errorf("expected explicit id to be kept, got %q", second.ID)
		}

		if _, err := store.Build(domain.Shape{Kind: "hexagon"}); err == nil {
			t.Error("expected error for unknown kind")
		}
	})

	// 2. Add + Find + All keep insertion order
	t.Run("Add_Find_All", func(t *testing.T) {
		if err := store.Add(first); err != nil {
			t.Fatalf("unexpected error adding: %v", err)
		}
		if err := store.Add(second); err != nil {
			t.Fatalf("unexpected error adding: %v", err)
		}

		got, ok := store.Find(first.ID)
		if !ok || got.ID != first.ID {
			t.Fatalf("expected to find %s", first.ID)
		}

		all := store.All()
		if len(all) != 2 || all[0].ID != first.ID || all[1].ID != second.ID {
			t.Errorf("unexpected order: %v", ids(all))
		}
	})

	// 3. Handles are live
	t.Run("LiveHandles", func(t *testing.T) {
		h, _ := store.Find(first.ID)
		h.Left = 42
		again, _ := store.Find(first.ID)
		if again.Left != 42 {
			t.Errorf("expected mutation through handle to be visible, got %v", again.Left)
		}
	})

	// 4. Selection drops unknown ids
	t.Run("Selection", func(t *testing.T) {
		sel.SetSelection([]string{second.ID, "ghost", first.ID})
		got := sel.Selected()
		if len(got) != 2 || got[0] != second.ID || got[1] != first.ID {
			t.Errorf("unexpected selection: %v", got)
		}
		sel.SetSelection(nil)
		if len(sel.Selected()) != 0 {
			t.Errorf("expected empty selection, got %v", sel.Selected())
		}
	})

	// 5. Remove
	t.Run("Remove", func(t *testing.T) {
		sel.SetSelection([]string{first.ID})
		if err := store.Remove(first.ID); err != nil {
			t.Fatalf("unexpected error removing: %v", err)
		}
		if _, ok := store.Find(first.ID); ok {
			t.Error("expected shape to be gone")
		}
		if len(sel.Selected()) != 0 {
			t.Errorf("removed shape still selected: %v", sel.Selected())
		}
		if err := store.Remove(first.ID); !errors.Is(err, domain.ErrShapeNotFound) {
			t.Errorf("expected ErrShapeNotFound, got %v", err)
		}
	})
}

func ids(shapes []*domain.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID
	}
	return out
}
