package runner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/easel/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Script is a sequence of steps run against one document.
type Script struct {
	Document   string              `yaml:"document,omitempty" json:"document,omitempty"`
	Background *domain.BoundingBox `yaml:"background,omitempty" json:"background,omitempty"`
	// CoalesceWindowMs overrides the default coalescing window.
	CoalesceWindowMs int    `yaml:"coalesce_window_ms,omitempty" json:"coalesce_window_ms,omitempty"`
	Steps            []Step `yaml:"steps" json:"steps"`
}

// Step is exactly one of: a command, undo, redo, clear, a clock advance or an
// expectation.
type Step struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Command     *domain.Command `yaml:"command,omitempty" json:"command,omitempty"`
	CoalesceKey string          `yaml:"coalesce_key,omitempty" json:"coalesce_key,omitempty"`

	Undo  bool `yaml:"undo,omitempty" json:"undo,omitempty"`
	Redo  bool `yaml:"redo,omitempty" json:"redo,omitempty"`
	Clear bool `yaml:"clear,omitempty" json:"clear,omitempty"`

	AdvanceMs int `yaml:"advance_ms,omitempty" json:"advance_ms,omitempty"`

	Expect *Expectation `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expectation checks the editor after the previous steps. Nil fields are not checked.
type Expectation struct {
	UndoDepth *int     `yaml:"undo_depth,omitempty" json:"undo_depth,omitempty"`
	RedoDepth *int     `yaml:"redo_depth,omitempty" json:"redo_depth,omitempty"`
	Shapes    *int     `yaml:"shapes,omitempty" json:"shapes,omitempty"`
	Selection []string `yaml:"selection,omitempty" json:"selection,omitempty"`
}

// Step kinds, as reported in StepResult.Kind.
const (
	KindCommand = "command"
	KindUndo    = "undo"
	KindRedo    = "redo"
	KindClear   = "clear"
	KindAdvance = "advance"
	KindExpect  = "expect"
)

// Kind returns the kind of the step, or "" when it sets zero or several actions.
func (s Step) Kind() string {
	kind, n := "", 0
	set := func(ok bool, k string) {
		if ok {
			kind = k
			n++
		}
	}
	set(s.Command != nil, KindCommand)
	set(s.Undo, KindUndo)
	set(s.Redo, KindRedo)
	set(s.Clear, KindClear)
	set(s.AdvanceMs > 0, KindAdvance)
	set(s.Expect != nil, KindExpect)
	if n != 1 {
		return ""
	}
	return kind
}

// Validate checks that every step has exactly one action.
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if step.Kind() == "" {
			return fmt.Errorf("%w: step %d must set exactly one action", ErrInvalidScript, i+1)
		}
		if step.CoalesceKey != "" && step.Command == nil {
			return fmt.Errorf("%w: step %d: coalesce_key requires a command", ErrInvalidScript, i+1)
		}
	}
	return nil
}

// ParseScript decodes a YAML or JSON script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads and parses a script file. The document defaults to the
// file name without extension.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Document == "" {
		base := filepath.Base(path)
		s.Document = base[:len(base)-len(filepath.Ext(base))]
	}
	return s, nil
}
