package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/easel/pkg/domain"
)

// Store implements ports.SceneStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Scene
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Scene),
	}
}

// Save persists the scene in memory.
func (s *Store) Save(ctx context.Context, docID string, scene *domain.Scene) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := scene.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[docID] = copied
	return nil
}

// Load retrieves the scene from memory.
func (s *Store) Load(ctx context.Context, docID string) (*domain.Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scene, ok := s.data[docID]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}

	// Copy on read so the caller can't mutate store state by pointer
	return scene.Clone(), nil
}

// Delete removes the scene.
func (s *Store) Delete(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, docID)
	return nil
}

// List returns stored document IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]string, 0, len(s.data))
	for id := range s.data {
		docs = append(docs, id)
	}
	sort.Strings(docs)
	return docs, nil
}
