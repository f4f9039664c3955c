package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSceneStoreContract runs a suite of tests to verify that a SceneStore implementation
// adheres to the defined interface contract.
func RunSceneStoreContract(t *testing.T, store SceneStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	newScene := func(id string) *domain.Scene {
		return &domain.Scene{
			ID: id,
			Shapes: []domain.Shape{
				{ID: "s1", Kind: domain.KindRect, Left: 10, Top: 20, Width: 30, Height: 40, ScaleX: 1, ScaleY: 1, Controls: true,
					Style: domain.Style{Fill: "#ff0000", StrokeWidth: 2}},
				{ID: "s2", Kind: domain.KindCircle, Radius: 5, ScaleX: 2, ScaleY: 2, Angle: 15, Locked: true},
			},
			Selection:  []string{"s1"},
			Background: &domain.BoundingBox{Width: 400, Height: 300},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a scene
		scene := newScene(docID)

		// 2. Save
		err := store.Save(ctx, docID, scene)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, scene.Shapes, loaded.Shapes)
		assert.Equal(t, scene.Selection, loaded.Selection)
		require.NotNil(t, loaded.Background)
		assert.Equal(t, 400.0, loaded.Background.Width)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		scene := newScene(docID)
		require.NoError(t, store.Save(ctx, docID, scene))

		// Mutating the saved value must not leak into the store.
		scene.Shapes[0].Left = 999

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, 10.0, loaded.Shapes[0].Left)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, docID, newScene(docID))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, docID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 documents
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, newScene(id1))
		_ = store.Save(ctx, id2, newScene(id2))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		docs, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, docs, id1)
		assert.Contains(t, docs, id2)
	})
}
