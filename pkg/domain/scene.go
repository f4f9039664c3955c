package domain

import "time"

// Scene is a serializable snapshot of one document.
type Scene struct {
	ID         string       `json:"id" yaml:"id"`
	Shapes     []Shape      `json:"shapes" yaml:"shapes"`
	Selection  []string     `json:"selection" yaml:"selection"`
	Background *BoundingBox `json:"background,omitempty" yaml:"background,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy of the scene.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	out := *s
	out.Shapes = append([]Shape(nil), s.Shapes...)
	out.Selection = append([]string(nil), s.Selection...)
	if s.Background != nil {
		bg := *s.Background
		out.Background = &bg
	}
	return &out
}

// Shape returns the shape with the given id.
func (s *Scene) Shape(id string) (Shape, bool) {
	for _, sh := range s.Shapes {
		if sh.ID == id {
			return sh, true
		}
	}
	return Shape{}, false
}
