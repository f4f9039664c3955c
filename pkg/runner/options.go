package runner

import (
	"log/slog"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithReporter configures how steps are reported.
func WithReporter(rep Reporter) Option {
	return func(r *Runner) {
		r.Reporter = rep
	}
}

// WithStore persists the final scene under the script's document id.
func WithStore(store ports.SceneStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithEditorOptions adds options to the editor the script runs on.
func WithEditorOptions(opts ...easel.Option) Option {
	return func(r *Runner) {
		r.EditorOptions = append(r.EditorOptions, opts...)
	}
}

// WithFailFast stops at the first failed expectation.
func WithFailFast(failFast bool) Option {
	return func(r *Runner) {
		r.FailFast = failFast
	}
}
