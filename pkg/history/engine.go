package history

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// Frame is one undo stack entry: the inverse plus coalescing metadata.
type Frame struct {
	Inverse     domain.Command
	CoalesceKey string
	CmdType     domain.CommandType
	CoalesceAt  time.Time
}

// ExecutorFault wraps a panic recovered from the executor.
type ExecutorFault struct {
	CmdType domain.CommandType
	Value   any
	Stack   []byte
}

func (f *ExecutorFault) Error() string {
	return fmt.Sprintf("executor fault on %s: %v", f.CmdType, f.Value)
}

type subscriber struct {
	id int
	fn domain.HistoryListener
}

// Engine is the command bus for one document.
type Engine struct {
	exec ports.Executor

	undo []Frame
	redo []domain.Command

	subs   []subscriber
	nextID int

	now      func() time.Time
	window   time.Duration
	maxDepth int
	hooks    domain.HistoryHooks
	logger   *slog.Logger
}

// New creates an engine that applies commands through exec.
func New(exec ports.Executor, opts ...Option) *Engine {
	e := &Engine{
		exec:   exec,
		now:    time.Now,
		window: DefaultCoalesceWindow,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispatch executes cmd and records its inverse. It returns the inverse, or
// nil when the command was rejected, failed or changed nothing. Nothing
// escapes Dispatch: faults are logged and reported through hooks.
func (e *Engine) Dispatch(cmd domain.Command, opts ...DispatchOption) *domain.Command {
	if strings.TrimSpace(string(cmd.Type)) == "" {
		e.logger.Warn("rejected command", "err", domain.ErrInvalidCommand)
		return nil
	}

	inv, err := e.execute(cmd)
	if err != nil {
		e.fault(cmd, err)
		return nil
	}
	if inv == nil || inv.Type == "" {
		e.logger.Debug("command was a no-op", "cmd_type", cmd.Type)
		if e.hooks.OnNoop != nil {
			e.hooks.OnNoop(cmd)
		}
		return nil
	}

	o := dispatchOptions{window: e.window}
	for _, opt := range opts {
		opt(&o)
	}

	now := e.now()
	coalesced := false
	if o.key != "" && len(e.undo) > 0 {
		top := &e.undo[len(e.undo)-1]
		if top.CoalesceKey == o.key && top.CmdType == cmd.Type && now.Sub(top.CoalesceAt) <= o.window {
			// The top frame keeps the inverse captured before the burst began.
			top.CoalesceAt = now
			coalesced = true
		}
	}
	if !coalesced {
		e.push(Frame{Inverse: *inv, CoalesceKey: o.key, CmdType: cmd.Type, CoalesceAt: now})
	}
	e.redo = nil

	e.logger.Debug("dispatched", "cmd_type", cmd.Type, "coalesced", coalesced, "undo_depth", len(e.undo))
	if e.hooks.OnDispatch != nil {
		e.hooks.OnDispatch(cmd, coalesced)
	}
	e.notify(domain.EventDispatch, cmd.Type)
	return inv
}

// Undo pops the top frame and executes its inverse. The resulting forward
// command goes to the redo stack. It returns the popped inverse, or nil when
// there is nothing to undo.
func (e *Engine) Undo() *domain.Command {
	if len(e.undo) == 0 {
		return nil
	}
	frame := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	forward, err := e.execute(frame.Inverse)
	switch {
	case err != nil:
		// The frame is dropped: replaying it again would fail the same way.
		e.fault(frame.Inverse, err)
	case forward != nil:
		e.redo = append(e.redo, *forward)
	}

	if e.hooks.OnUndo != nil {
		e.hooks.OnUndo(frame.Inverse)
	}
	e.notify(domain.EventUndo, frame.Inverse.Type)
	return &frame.Inverse
}

// Redo pops the redo stack and executes it. The resulting inverse goes back
// onto the undo stack. It returns the popped command, or nil when there is
// nothing to redo.
func (e *Engine) Redo() *domain.Command {
	if len(e.redo) == 0 {
		return nil
	}
	cmd := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]

	inv, err := e.execute(cmd)
	switch {
	case err != nil:
		e.fault(cmd, err)
	case inv != nil:
		e.push(Frame{Inverse: *inv, CmdType: cmd.Type, CoalesceAt: e.now()})
	}

	if e.hooks.OnRedo != nil {
		e.hooks.OnRedo(cmd)
	}
	e.notify(domain.EventRedo, cmd.Type)
	return &cmd
}

// CanUndo reports whether the undo stack is non-empty.
func (e *Engine) CanUndo() bool { return len(e.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (e *Engine) CanRedo() bool { return len(e.redo) > 0 }

// Clear empties both stacks. The scene is not touched.
func (e *Engine) Clear() {
	e.undo = nil
	e.redo = nil
	if e.hooks.OnClear != nil {
		e.hooks.OnClear()
	}
	e.notify(domain.EventClear, "")
}

// Snapshot returns the current stack depths.
func (e *Engine) Snapshot() domain.HistorySnapshot {
	return domain.HistorySnapshot{
		UndoDepth: len(e.undo),
		RedoDepth: len(e.redo),
		CanUndo:   len(e.undo) > 0,
		CanRedo:   len(e.redo) > 0,
	}
}

// Frames returns a copy of the undo stack, oldest first.
func (e *Engine) Frames() []Frame {
	out := make([]Frame, len(e.undo))
	copy(out, e.undo)
	return out
}

// Subscribe registers a listener and delivers an init event to it right away.
// The returned function removes the listener; calling it twice is harmless.
func (e *Engine) Subscribe(fn domain.HistoryListener) (unsubscribe func()) {
	e.nextID++
	sub := subscriber{id: e.nextID, fn: fn}
	e.subs = append(e.subs, sub)
	e.deliver(sub, e.event(domain.EventInit, ""))

	return func() {
		for i, s := range e.subs {
			if s.id == sub.id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// execute runs the executor inside a recover boundary.
func (e *Engine) execute(cmd domain.Command) (inv *domain.Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv = nil
			err = &ExecutorFault{CmdType: cmd.Type, Value: r, Stack: debug.Stack()}
		}
	}()
	return e.exec.Execute(cmd)
}

func (e *Engine) fault(cmd domain.Command, err error) {
	e.logger.Error("command failed", "cmd_type", cmd.Type, "err", err)
	if e.hooks.OnFault != nil {
		e.hooks.OnFault(cmd, err)
	}
}

func (e *Engine) push(f Frame) {
	e.undo = append(e.undo, f)
	if e.maxDepth > 0 && len(e.undo) > e.maxDepth {
		drop := len(e.undo) - e.maxDepth
		e.undo = append(e.undo[:0], e.undo[drop:]...)
	}
}

func (e *Engine) event(kind domain.HistoryEventKind, cmdType domain.CommandType) domain.HistoryEvent {
	return domain.HistoryEvent{Event: kind, HistorySnapshot: e.Snapshot(), CmdType: cmdType}
}

func (e *Engine) notify(kind domain.HistoryEventKind, cmdType domain.CommandType) {
	ev := e.event(kind, cmdType)
	// Listeners may unsubscribe while being notified.
	subs := append([]subscriber(nil), e.subs...)
	for _, s := range subs {
		e.deliver(s, ev)
	}
}

func (e *Engine) deliver(s subscriber, ev domain.HistoryEvent) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("history listener panicked", "event", ev.Event, "err", r)
		}
	}()
	s.fn(ev)
}
