package ports

import "github.com/aretw0/easel/pkg/domain"

// ShapeStore is the canonical owner of scene entities.
// Handles returned by All and Find are live: mutating them mutates the scene.
type ShapeStore interface {
	// All returns every shape in z-order.
	All() []*domain.Shape

	// Find returns the shape with the given id, or false.
	Find(id string) (*domain.Shape, bool)

	// Add appends a shape built by Build.
	Add(s *domain.Shape) error

	// Remove deletes the shape with the given id.
	// Returns domain.ErrShapeNotFound if it does not exist.
	Remove(id string) error

	// Build is the shape factory. It validates the description, assigns an id
	// when spec.ID is empty and returns a handle that is not yet in the store.
	Build(spec domain.Shape) (*domain.Shape, error)
}

// Selection is the host's selection collaborator.
type Selection interface {
	// Selected returns the selected ids in selection order.
	Selected() []string

	// SetSelection replaces the selection. Unknown ids are dropped.
	SetSelection(ids []string)

	// Group returns the frame of the transient multi-select group, if one is
	// active. Selected shapes then report positions relative to its center.
	Group() (domain.GroupFrame, bool)
}

// Background exposes the optional bounds rectangle of the canvas.
type Background interface {
	Background() (domain.BoundingBox, bool)
}
