package dsl

import (
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/history"
)

// Dispatcher is the part of easel.Editor a Builder needs.
type Dispatcher interface {
	Dispatch(cmd domain.Command, opts ...history.DispatchOption) *domain.Command
}

// Builder collects commands in order.
type Builder struct {
	commands []domain.Command
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// Then appends cmd.
func (b *Builder) Then(cmd domain.Command) *Builder {
	b.commands = append(b.commands, cmd)
	return b
}

// Build returns a copy of the collected commands.
func (b *Builder) Build() []domain.Command {
	out := make([]domain.Command, len(b.commands))
	copy(out, b.commands)
	return out
}

// Apply dispatches every command in order and returns how many produced a
// history step.
func (b *Builder) Apply(d Dispatcher) int {
	applied := 0
	for _, cmd := range b.commands {
		if d.Dispatch(cmd) != nil {
			applied++
		}
	}
	return applied
}
