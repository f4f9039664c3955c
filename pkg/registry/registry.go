package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/easel/pkg/domain"
)

// Handler applies one command type to the scene.
// It returns the inverse command, or nil when nothing was mutated.
type Handler func(cmd domain.Command) (*domain.Command, error)

// Registry maps command types to their handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[domain.CommandType]Handler
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[domain.CommandType]Handler),
	}
}

// Register adds a handler to the registry.
// If a handler for the same type exists, it is overwritten.
func (r *Registry) Register(t domain.CommandType, fn Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = fn
}

// Lookup returns the handler for t.
func (r *Registry) Lookup(t domain.CommandType) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.handlers[t]
	return fn, ok
}

// Execute looks up the handler for cmd.Type and runs it.
// Returns domain.ErrUnknownCommand if no handler is registered.
func (r *Registry) Execute(cmd domain.Command) (*domain.Command, error) {
	fn, ok := r.Lookup(cmd.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, cmd.Type)
	}
	return fn(cmd)
}

// Types returns the registered command types, sorted.
func (r *Registry) Types() []domain.CommandType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.CommandType, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
