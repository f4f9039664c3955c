package memory

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/google/uuid"
)

// ErrDuplicateShape is returned by Add when the id is already in the scene.
var ErrDuplicateShape = errors.New("duplicate shape id")

// Scene is an in-memory host for one document. It implements
// ports.ShapeStore, ports.Selection and ports.Background.
//
// Scene is not safe for concurrent use; like the engine driving it, it
// expects a single caller at a time.
type Scene struct {
	shapes     []*domain.Shape
	index      map[string]*domain.Shape
	selected   []string
	group      *domain.GroupFrame
	background *domain.BoundingBox
	newID      func() string
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithBackground sets the bounds rectangle.
func WithBackground(width, height float64) SceneOption {
	return func(s *Scene) {
		s.background = &domain.BoundingBox{Width: width, Height: height}
	}
}

// WithIDGenerator replaces the UUID generator used by Build.
func WithIDGenerator(fn func() string) SceneOption {
	return func(s *Scene) {
		s.newID = fn
	}
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		index: make(map[string]*domain.Shape),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build validates spec and returns a new, unattached shape.
// It assigns an id when none is given, reads zero scales as 1 and derives
// transform affordances from the lock state.
func (s *Scene) Build(spec domain.Shape) (*domain.Shape, error) {
	if !spec.Kind.Known() {
		return nil, fmt.Errorf("%w: unknown shape kind %q", domain.ErrInvalidPayload, spec.Kind)
	}
	if spec.Width < 0 || spec.Height < 0 || spec.Radius < 0 || spec.RX < 0 || spec.RY < 0 {
		return nil, fmt.Errorf("%w: negative dimension on %s", domain.ErrInvalidPayload, spec.Kind)
	}

	out := spec
	if out.ID == "" {
		out.ID = s.newID()
	}
	if out.ScaleX == 0 {
		out.ScaleX = 1
	}
	if out.ScaleY == 0 {
		out.ScaleY = 1
	}
	out.Controls = !out.Locked
	return &out, nil
}

// Add appends sh on top of the z-order.
func (s *Scene) Add(sh *domain.Shape) error {
	if _, exists := s.index[sh.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateShape, sh.ID)
	}
	s.shapes = append(s.shapes, sh)
	s.index[sh.ID] = sh
	return nil
}

// Remove deletes the shape and drops it from the selection.
func (s *Scene) Remove(id string) error {
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrShapeNotFound, id)
	}
	delete(s.index, id)
	for i, sh := range s.shapes {
		if sh.ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			break
		}
	}
	return nil
}

// All returns live handles in z-order.
func (s *Scene) All() []*domain.Shape {
	out := make([]*domain.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Find returns the live handle for id.
func (s *Scene) Find(id string) (*domain.Shape, bool) {
	sh, ok := s.index[id]
	return sh, ok
}

// Selected returns the selected ids.
func (s *Scene) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// SetSelection replaces the selection, dropping unknown and repeated ids.
// Any active group frame is dissolved first, so former members keep their
// scene position.
func (s *Scene) SetSelection(ids []string) {
	s.dissolveGroup()
	s.selected = s.selected[:0]
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.index[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		s.selected = append(s.selected, id)
	}
}

// dissolveGroup converts the group-relative origins of the selected shapes
// back to scene coordinates and drops the frame.
func (s *Scene) dissolveGroup() {
	if s.group == nil {
		return
	}
	for _, id := range s.selected {
		if sh, ok := s.index[id]; ok {
			sh.Left += s.group.CenterX
			sh.Top += s.group.CenterY
		}
	}
	s.group = nil
}

// SetGroup activates a multi-select group frame. Selected shapes are then
// expected to hold origins relative to the frame center.
func (s *Scene) SetGroup(frame domain.GroupFrame) {
	s.group = &frame
}

// Group returns the active group frame.
func (s *Scene) Group() (domain.GroupFrame, bool) {
	if s.group == nil || len(s.selected) == 0 {
		return domain.GroupFrame{}, false
	}
	return *s.group, true
}

// SetBackground replaces the bounds rectangle; nil removes it.
func (s *Scene) SetBackground(bg *domain.BoundingBox) {
	if bg == nil {
		s.background = nil
		return
	}
	b := *bg
	s.background = &b
}

// Background returns the bounds rectangle.
func (s *Scene) Background() (domain.BoundingBox, bool) {
	if s.background == nil {
		return domain.BoundingBox{}, false
	}
	return *s.background, true
}

// Snapshot captures the scene as a plain value. Group members are reported
// in scene coordinates.
func (s *Scene) Snapshot(id string) *domain.Scene {
	out := &domain.Scene{
		ID:        id,
		Shapes:    make([]domain.Shape, len(s.shapes)),
		Selection: s.Selected(),
		UpdatedAt: time.Now(),
	}
	frame, grouped := s.Group()
	members := make(map[string]bool, len(s.selected))
	if grouped {
		for _, id := range s.selected {
			members[id] = true
		}
	}
	for i, sh := range s.shapes {
		out.Shapes[i] = *sh
		if members[sh.ID] {
			out.Shapes[i].Left += frame.CenterX
			out.Shapes[i].Top += frame.CenterY
		}
	}
	if s.background != nil {
		bg := *s.background
		out.Background = &bg
	}
	return out
}

// Restore replaces the content of the scene with a snapshot.
func (s *Scene) Restore(snap *domain.Scene) error {
	s.shapes = nil
	s.index = make(map[string]*domain.Shape, len(snap.Shapes))
	s.selected = nil
	s.group = nil
	for _, v := range snap.Shapes {
		sh := v
		if err := s.Add(&sh); err != nil {
			return err
		}
	}
	s.SetBackground(snap.Background)
	s.SetSelection(snap.Selection)
	return nil
}
