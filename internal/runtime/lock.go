package runtime

import "github.com/aretw0/easel/pkg/domain"

// lockShapes counts only unlocked -> locked transitions, so the inverse never
// unlocks a shape that was locked before.
func (e *Executor) lockShapes(cmd domain.Command) (*domain.Command, error) {
	var p domain.LockShapesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	targets := e.resolve(cmd.Type, e.targetIDs(p.IDs))
	affected := make([]string, 0, len(targets))
	for _, s := range targets {
		if !s.Locked {
			affected = append(affected, s.ID)
		}
	}
	if len(affected) == 0 {
		return nil, nil
	}
	for _, s := range targets {
		s.Lock()
	}

	return inverse(domain.CmdUnlockShapes, domain.UnlockShapesPayload{IDs: affected})
}

// unlockShapes falls back to the selection and then to every locked shape
// when no ids are given.
func (e *Executor) unlockShapes(cmd domain.Command) (*domain.Command, error) {
	var p domain.UnlockShapesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	var targets []*domain.Shape
	switch {
	case p.IDs != nil:
		targets = e.resolve(cmd.Type, p.IDs)
	case len(e.selection.Selected()) > 0:
		targets = e.resolve(cmd.Type, e.selection.Selected())
	default:
		for _, s := range e.store.All() {
			if s.Locked {
				targets = append(targets, s)
			}
		}
	}

	affected := make([]string, 0, len(targets))
	for _, s := range targets {
		if s.Locked {
			affected = append(affected, s.ID)
		}
	}
	if len(affected) == 0 {
		return nil, nil
	}
	for _, s := range targets {
		s.Unlock()
	}

	return inverse(domain.CmdLockShapes, domain.LockShapesPayload{IDs: affected})
}
