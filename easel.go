package easel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/internal/runtime"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
	"github.com/aretw0/easel/pkg/ports"
)

// Editor is the high-level entry point for the Easel library.
// It wires a scene host, the structural executor and a history engine for
// one document.
//
// Editor is not safe for concurrent use; see pkg/session for a locking wrapper.
type Editor struct {
	ID string

	scene      *memory.Scene
	store      ports.ShapeStore
	selection  ports.Selection
	background ports.Background

	executor *runtime.Executor
	history  *history.Engine

	initial     *domain.Scene
	hooks       domain.HistoryHooks
	logger      *slog.Logger
	historyOpts []history.Option
	execOpts    []runtime.ExecutorOption
	sceneOpts   []memory.SceneOption
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithHooks registers history observability hooks.
func WithHooks(hooks domain.HistoryHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithHost replaces the built-in in-memory scene with host collaborators.
// bg may be nil.
func WithHost(store ports.ShapeStore, selection ports.Selection, bg ports.Background) Option {
	return func(e *Editor) {
		e.store, e.selection, e.background = store, selection, bg
	}
}

// WithBackground sets the canvas bounds of the built-in scene.
func WithBackground(width, height float64) Option {
	return func(e *Editor) {
		e.sceneOpts = append(e.sceneOpts, memory.WithBackground(width, height))
	}
}

// WithIDGenerator replaces the shape id generator of the built-in scene.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) {
		e.sceneOpts = append(e.sceneOpts, memory.WithIDGenerator(fn))
	}
}

// WithScene seeds the built-in scene from a snapshot.
func WithScene(scene *domain.Scene) Option {
	return func(e *Editor) {
		e.initial = scene
	}
}

// WithCoalesceWindow sets the default coalescing window.
func WithCoalesceWindow(d time.Duration) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithDefaultWindow(d))
	}
}

// WithMaxDepth bounds the undo stack.
func WithMaxDepth(n int) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithMaxDepth(n))
	}
}

// WithClock injects the clock used for coalescing.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithClock(now))
	}
}

// WithDuplicateOffset sets the default DUPLICATE_SHAPES offset.
func WithDuplicateOffset(dx, dy float64) Option {
	return func(e *Editor) {
		e.execOpts = append(e.execOpts, runtime.WithDuplicateOffset(dx, dy))
	}
}

// New initializes an Editor for document id.
// Without WithHost it runs on an in-memory scene.
func New(id string, opts ...Option) (*Editor, error) {
	ed := &Editor{ID: id}
	for _, opt := range opts {
		opt(ed)
	}

	if ed.logger == nil {
		ed.logger = logging.NewNop()
	}
	if id != "" {
		ed.logger = ed.logger.With("doc", id)
	}

	if ed.store == nil {
		ed.scene = memory.NewScene(ed.sceneOpts...)
		if ed.initial != nil {
			if err := ed.scene.Restore(ed.initial); err != nil {
				return nil, fmt.Errorf("restore scene %s: %w", id, err)
			}
		}
		ed.store, ed.selection, ed.background = ed.scene, ed.scene, ed.scene
	} else if ed.initial != nil {
		return nil, fmt.Errorf("WithScene requires the built-in scene")
	}
	if ed.selection == nil {
		return nil, fmt.Errorf("a selection collaborator is required")
	}

	execOpts := []runtime.ExecutorOption{runtime.WithLogger(ed.logger)}
	if ed.background != nil {
		execOpts = append(execOpts, runtime.WithBackground(ed.background))
	}
	ed.executor = runtime.NewExecutor(ed.store, ed.selection, append(execOpts, ed.execOpts...)...)

	historyOpts := []history.Option{
		history.WithLogger(ed.logger),
		history.WithHooks(ed.hooks),
	}
	ed.history = history.New(ed.executor, append(historyOpts, ed.historyOpts...)...)

	return ed, nil
}

// Dispatch applies cmd and records its inverse. See history.Engine.Dispatch.
func (e *Editor) Dispatch(cmd domain.Command, opts ...history.DispatchOption) *domain.Command {
	return e.history.Dispatch(cmd, opts...)
}

// Undo reverts the last history-visible step.
func (e *Editor) Undo() *domain.Command { return e.history.Undo() }

// Redo re-applies the last undone step.
func (e *Editor) Redo() *domain.Command { return e.history.Redo() }

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// ClearHistory empties both stacks without touching the scene.
func (e *Editor) ClearHistory() { e.history.Clear() }

// HistorySnapshot returns the current stack depths.
func (e *Editor) HistorySnapshot() domain.HistorySnapshot { return e.history.Snapshot() }

// SubscribeHistory registers a history listener.
func (e *Editor) SubscribeHistory(fn domain.HistoryListener) (unsubscribe func()) {
	return e.history.Subscribe(fn)
}

// History returns the underlying history engine.
func (e *Editor) History() *history.Engine { return e.history }

// Shapes returns value copies of every shape in z-order.
func (e *Editor) Shapes() []domain.Shape {
	all := e.store.All()
	out := make([]domain.Shape, len(all))
	for i, s := range all {
		out[i] = *s
	}
	return out
}

// Selection returns the selected ids.
func (e *Editor) Selection() []string { return e.selection.Selected() }

// Scene returns a snapshot of the document.
func (e *Editor) Scene() *domain.Scene {
	if e.scene != nil {
		return e.scene.Snapshot(e.ID)
	}
	snap := &domain.Scene{
		ID:        e.ID,
		Shapes:    e.Shapes(),
		Selection: e.Selection(),
		UpdatedAt: time.Now(),
	}
	if e.background != nil {
		if bg, ok := e.background.Background(); ok {
			snap.Background = &bg
		}
	}
	return snap
}
