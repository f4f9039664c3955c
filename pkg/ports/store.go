package ports

import (
	"context"

	"github.com/aretw0/easel/pkg/domain"
)

// SceneStore defines the interface for persisting scene snapshots.
// It lets a document survive a process restart or move between replicas.
type SceneStore interface {
	// Save persists the scene for a given document ID.
	Save(ctx context.Context, docID string, scene *domain.Scene) error

	// Load retrieves the scene for a given document ID.
	// Returns domain.ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, docID string) (*domain.Scene, error)

	// Delete removes the scene for a given document ID.
	Delete(ctx context.Context, docID string) error

	// List returns the IDs of all stored documents.
	List(ctx context.Context) ([]string, error)
}
