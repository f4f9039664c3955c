package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
	"github.com/aretw0/easel/pkg/ports"
)

var (
	// ErrInvalidScript is returned for malformed scripts.
	ErrInvalidScript = errors.New("invalid script")
	// ErrExpectationFailed is returned when at least one expectation did not hold.
	ErrExpectationFailed = errors.New("expectation failed")
)

// StepResult describes one executed step.
type StepResult struct {
	Index   int                    `json:"index"`
	Name    string                 `json:"name,omitempty"`
	Kind    string                 `json:"kind"`
	CmdType domain.CommandType     `json:"cmd_type,omitempty"`
	Applied bool                   `json:"applied"`
	History domain.HistorySnapshot `json:"history"`
	Error   string                 `json:"error,omitempty"`
}

// Result is the outcome of a script run.
type Result struct {
	Document string        `json:"document"`
	Steps    []StepResult  `json:"steps"`
	Failures int           `json:"failures"`
	Scene    *domain.Scene `json:"scene"`
}

// Runner executes scripts.
type Runner struct {
	Reporter      Reporter
	Logger        *slog.Logger
	Store         ports.SceneStore
	EditorOptions []easel.Option
	FailFast      bool
}

// NewRunner creates a Runner. Without a reporter, steps are not reported.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Reporter: nopReporter{},
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// simClock is the deterministic clock scripts advance explicitly.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

// Run executes the script on a fresh editor. It stops early when ctx is
// cancelled. A failed expectation is reported and, at the end, turned into
// ErrExpectationFailed; the Result is returned either way.
func (r *Runner) Run(ctx context.Context, script *Script) (*Result, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	clock := &simClock{now: time.Unix(0, 0).UTC()}
	opts := []easel.Option{
		easel.WithLogger(r.Logger),
		easel.WithClock(clock.Now),
	}
	if script.Background != nil {
		opts = append(opts, easel.WithBackground(script.Background.Width, script.Background.Height))
	}
	if script.CoalesceWindowMs > 0 {
		opts = append(opts, easel.WithCoalesceWindow(time.Duration(script.CoalesceWindowMs)*time.Millisecond))
	}
	ed, err := easel.New(script.Document, append(opts, r.EditorOptions...)...)
	if err != nil {
		return nil, err
	}

	res := &Result{Document: script.Document}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sr := r.execute(ed, clock, step)
		sr.Index = i + 1
		sr.Name = step.Name
		if sr.Error != "" {
			res.Failures++
			r.Logger.Warn("step failed", "step", sr.Index, "kind", sr.Kind, "err", sr.Error)
		}
		res.Steps = append(res.Steps, sr)

		if err := r.Reporter.Step(ctx, sr); err != nil {
			return res, fmt.Errorf("report error: %w", err)
		}
		if sr.Error != "" && r.FailFast {
			break
		}
	}

	res.Scene = ed.Scene()
	if r.Store != nil {
		if err := r.Store.Save(ctx, script.Document, res.Scene); err != nil {
			return res, fmt.Errorf("failed to save scene: %w", err)
		}
	}
	if err := r.Reporter.Summary(ctx, res); err != nil {
		return res, fmt.Errorf("report error: %w", err)
	}
	if res.Failures > 0 {
		return res, fmt.Errorf("%w: %d of %d steps", ErrExpectationFailed, res.Failures, len(res.Steps))
	}
	return res, nil
}

func (r *Runner) execute(ed *easel.Editor, clock *simClock, step Step) StepResult {
	sr := StepResult{Kind: step.Kind()}

	switch sr.Kind {
	case KindCommand:
		sr.CmdType = step.Command.Type
		var opts []history.DispatchOption
		if step.CoalesceKey != "" {
			opts = append(opts, history.WithCoalesceKey(step.CoalesceKey))
		}
		sr.Applied = ed.Dispatch(*step.Command, opts...) != nil
	case KindUndo:
		if inv := ed.Undo(); inv != nil {
			sr.Applied, sr.CmdType = true, inv.Type
		}
	case KindRedo:
		if cmd := ed.Redo(); cmd != nil {
			sr.Applied, sr.CmdType = true, cmd.Type
		}
	case KindClear:
		ed.ClearHistory()
		sr.Applied = true
	case KindAdvance:
		clock.now = clock.now.Add(time.Duration(step.AdvanceMs) * time.Millisecond)
		sr.Applied = true
	case KindExpect:
		if err := check(ed, step.Expect); err != nil {
			sr.Error = err.Error()
		}
	}

	sr.History = ed.HistorySnapshot()
	return sr
}

func check(ed *easel.Editor, exp *Expectation) error {
	snap := ed.HistorySnapshot()
	var errs []error
	if exp.UndoDepth != nil && *exp.UndoDepth != snap.UndoDepth {
		errs = append(errs, fmt.Errorf("undo_depth = %d, want %d", snap.UndoDepth, *exp.UndoDepth))
	}
	if exp.RedoDepth != nil && *exp.RedoDepth != snap.RedoDepth {
		errs = append(errs, fmt.Errorf("redo_depth = %d, want %d", snap.RedoDepth, *exp.RedoDepth))
	}
	if exp.Shapes != nil {
		if n := len(ed.Shapes()); n != *exp.Shapes {
			errs = append(errs, fmt.Errorf("shapes = %d, want %d", n, *exp.Shapes))
		}
	}
	if exp.Selection != nil {
		if got := ed.Selection(); !slices.Equal(got, exp.Selection) {
			errs = append(errs, fmt.Errorf("selection = %v, want %v", got, exp.Selection))
		}
	}
	return errors.Join(errs...)
}
