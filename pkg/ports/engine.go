package ports

import "github.com/aretw0/easel/pkg/domain"

// Executor applies a command to the scene and returns its inverse.
// A nil inverse with a nil error means the command was a no-op: nothing was
// mutated and nothing must be recorded in history.
type Executor interface {
	Execute(cmd domain.Command) (*domain.Command, error)
}
