package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/registry"
)

// DefaultDuplicateOffset is the translation applied to clones when the
// DUPLICATE_SHAPES payload carries no offset.
const DefaultDuplicateOffset = 20.0

// Executor is the structural command executor. It resolves every command
// against the current store, mutates it and synthesizes the inverse.
// It is single-threaded: callers serialize access.
type Executor struct {
	store      ports.ShapeStore
	selection  ports.Selection
	background ports.Background
	registry   *registry.Registry
	logger     *slog.Logger
	dupDX      float64
	dupDY      float64
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithBackground sets the bounds rectangle used for clamping and canvas alignment.
func WithBackground(bg ports.Background) ExecutorOption {
	return func(e *Executor) {
		e.background = bg
	}
}

// WithDuplicateOffset sets the default clone offset.
func WithDuplicateOffset(dx, dy float64) ExecutorOption {
	return func(e *Executor) {
		e.dupDX, e.dupDY = dx, dy
	}
}

// NewExecutor creates an executor with one handler per command type.
func NewExecutor(store ports.ShapeStore, selection ports.Selection, opts ...ExecutorOption) *Executor {
	e := &Executor{
		store:     store,
		selection: selection,
		registry:  registry.NewRegistry(),
		logger:    logging.NewNop(),
		dupDX:     DefaultDuplicateOffset,
		dupDY:     DefaultDuplicateOffset,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.registry.Register(domain.CmdAddShape, e.addShape)
	e.registry.Register(domain.CmdAddShapes, e.addShapes)
	e.registry.Register(domain.CmdDeleteShapes, e.deleteShapes)
	e.registry.Register(domain.CmdDuplicateShapes, e.duplicateShapes)
	e.registry.Register(domain.CmdSetSelection, e.setSelection)
	e.registry.Register(domain.CmdMoveShapesDelta, e.moveShapesDelta)
	e.registry.Register(domain.CmdSetPositions, e.setPositions)
	e.registry.Register(domain.CmdResetRotation, e.resetRotation)
	e.registry.Register(domain.CmdSetAnglesPositions, e.setAnglesPositions)
	e.registry.Register(domain.CmdLockShapes, e.lockShapes)
	e.registry.Register(domain.CmdUnlockShapes, e.unlockShapes)
	e.registry.Register(domain.CmdAlignSelected, e.alignSelected)
	e.registry.Register(domain.CmdSetTransforms, e.setTransforms)
	e.registry.Register(domain.CmdSetStyle, e.setStyle)
	e.registry.Register(domain.CmdSetStyles, e.setStyles)
	return e
}

// Execute applies cmd and returns its inverse.
// (nil, nil) means the command resolved to nothing and the scene is unchanged.
func (e *Executor) Execute(cmd domain.Command) (*domain.Command, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return e.registry.Execute(cmd)
}

// Types returns the command types this executor handles.
func (e *Executor) Types() []domain.CommandType {
	return e.registry.Types()
}

func inverse(t domain.CommandType, payload any) (*domain.Command, error) {
	cmd := domain.NewCommand(t, payload)
	return &cmd, nil
}

func decode(cmd domain.Command, out any) error {
	if err := cmd.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", cmd.Type, err)
	}
	return nil
}

// targetIDs returns ids when the payload carried them, otherwise the selection.
func (e *Executor) targetIDs(ids []string) []string {
	if ids != nil {
		return ids
	}
	return e.selection.Selected()
}

// resolve maps ids to live shapes, skipping unknown and repeated ids.
func (e *Executor) resolve(cmdType domain.CommandType, ids []string) []*domain.Shape {
	out := make([]*domain.Shape, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		s, ok := e.store.Find(id)
		if !ok {
			e.logger.Debug("skipping unknown shape", "cmd_type", cmdType, "shape_id", id)
			continue
		}
		out = append(out, s)
	}
	return out
}

// selectedCopy returns the current selection as a non-nil slice, so the
// inverse always restores it explicitly.
func (e *Executor) selectedCopy() []string {
	return append([]string{}, e.selection.Selected()...)
}

// frameOf returns the group frame s is relative to, if any.
func (e *Executor) frameOf(s *domain.Shape) *domain.GroupFrame {
	frame, ok := e.selection.Group()
	if !ok {
		return nil
	}
	for _, id := range e.selection.Selected() {
		if id == s.ID {
			return &frame
		}
	}
	return nil
}

// absolute returns a copy of s with scene-space origin.
func (e *Executor) absolute(s *domain.Shape) domain.Shape {
	out := *s
	if frame := e.frameOf(s); frame != nil {
		out.Left += frame.CenterX
		out.Top += frame.CenterY
	}
	return out
}

func (e *Executor) absoluteBox(s *domain.Shape) domain.BoundingBox {
	return geometry.AbsoluteBox(*s, e.frameOf(s))
}

// bounds returns the background rectangle, or nil when none is configured.
func (e *Executor) bounds() *domain.BoundingBox {
	if e.background == nil {
		return nil
	}
	bg, ok := e.background.Background()
	if !ok {
		return nil
	}
	return &bg
}

func ids(shapes []*domain.Shape) []string {
	out := make([]string, len(shapes))
	for i, s := range shapes {
		out[i] = s.ID
	}
	return out
}
