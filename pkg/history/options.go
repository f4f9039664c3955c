package history

import (
	"log/slog"
	"time"

	"github.com/aretw0/easel/pkg/domain"
)

// DefaultCoalesceWindow is how long a coalescing burst stays open after its
// last dispatch.
const DefaultCoalesceWindow = 800 * time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock replaces time.Now. Coalescing compares timestamps from this clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMaxDepth bounds the undo stack. The oldest frames are dropped first.
// Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		e.maxDepth = n
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.HistoryHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithDefaultWindow changes the coalescing window used when a dispatch does
// not set one.
func WithDefaultWindow(d time.Duration) Option {
	return func(e *Engine) {
		e.window = d
	}
}

type dispatchOptions struct {
	key    string
	window time.Duration
}

// DispatchOption configures a single Dispatch call.
type DispatchOption func(*dispatchOptions)

// WithCoalesceKey opts the dispatch into coalescing. Consecutive dispatches
// with the same key and command type inside the window share one frame.
func WithCoalesceKey(key string) DispatchOption {
	return func(o *dispatchOptions) {
		o.key = key
	}
}

// WithCoalesceWindow overrides the coalescing window for this dispatch.
func WithCoalesceWindow(d time.Duration) DispatchOption {
	return func(o *dispatchOptions) {
		o.window = d
	}
}
