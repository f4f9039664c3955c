package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter presents script progress.
// This allows switching between Text (CLI/TUI) and JSON (structured) modes.
type Reporter interface {
	// Step is called after each step.
	Step(ctx context.Context, res StepResult) error
	// Summary is called once after the last step.
	Summary(ctx context.Context, res *Result) error
}

// ContentRenderer transforms markdown before it is written.
// This allows TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

type nopReporter struct{}

func (nopReporter) Step(context.Context, StepResult) error { return nil }
func (nopReporter) Summary(context.Context, *Result) error { return nil }

// TextReporter writes one line per step and a markdown summary.
type TextReporter struct {
	Writer   io.Writer
	Renderer ContentRenderer
}

// TextReporterOption defines configuration for TextReporter.
type TextReporterOption func(*TextReporter)

// WithTextRenderer configures the summary renderer.
func WithTextRenderer(renderer ContentRenderer) TextReporterOption {
	return func(t *TextReporter) {
		t.Renderer = renderer
	}
}

// NewTextReporter creates a text reporter. A nil writer means Stdout.
func NewTextReporter(w io.Writer, opts ...TextReporterOption) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	t := &TextReporter{Writer: w}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TextReporter) Step(ctx context.Context, res StepResult) error {
	status := "ok"
	switch {
	case res.Error != "":
		status = "FAIL"
	case !res.Applied:
		status = "noop"
	}

	label := res.Kind
	if res.CmdType != "" {
		label += " " + string(res.CmdType)
	}
	if res.Name != "" {
		label += " (" + res.Name + ")"
	}

	_, err := fmt.Fprintf(t.Writer, "%3d %-4s %s  [undo=%d redo=%d]\n",
		res.Index, status, label, res.History.UndoDepth, res.History.RedoDepth)
	if err == nil && res.Error != "" {
		_, err = fmt.Fprintf(t.Writer, "         %s\n", strings.ReplaceAll(res.Error, "\n", "\n         "))
	}
	return err
}

func (t *TextReporter) Summary(ctx context.Context, res *Result) error {
	content := SummaryMarkdown(res)
	if t.Renderer != nil {
		rendered, err := t.Renderer(content)
		if err == nil {
			content = rendered
		}
	}
	_, err := io.WriteString(t.Writer, content)
	return err
}

// SummaryMarkdown renders the final scene of a run as a markdown table.
func SummaryMarkdown(res *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n## %s\n\n", res.Document)
	if res.Scene == nil || len(res.Scene.Shapes) == 0 {
		b.WriteString("_empty scene_\n")
	} else {
		selected := make(map[string]bool, len(res.Scene.Selection))
		for _, id := range res.Scene.Selection {
			selected[id] = true
		}
		b.WriteString("| id | kind | left | top | angle | locked | selected |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, s := range res.Scene.Shapes {
			fmt.Fprintf(&b, "| %s | %s | %.2f | %.2f | %.1f | %t | %t |\n",
				s.ID, s.Kind, s.Left, s.Top, s.Angle, s.Locked, selected[s.ID])
		}
	}
	fmt.Fprintf(&b, "\n%d steps, %d failed\n", len(res.Steps), res.Failures)
	return b.String()
}

// JSONReporter emits one JSON object per line.
type JSONReporter struct {
	Encoder *json.Encoder
}

// NewJSONReporter creates a JSON-lines reporter. A nil writer means Stdout.
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{Encoder: json.NewEncoder(w)}
}

func (j *JSONReporter) Step(ctx context.Context, res StepResult) error {
	return j.Encoder.Encode(struct {
		Type string `json:"type"`
		StepResult
	}{"step", res})
}

func (j *JSONReporter) Summary(ctx context.Context, res *Result) error {
	return j.Encoder.Encode(struct {
		Type string `json:"type"`
		*Result
	}{"summary", res})
}
