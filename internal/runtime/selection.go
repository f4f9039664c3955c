package runtime

import "github.com/aretw0/easel/pkg/domain"

// setSelection always returns an inverse: selection changes are history-visible.
func (e *Executor) setSelection(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetSelectionPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := e.selectedCopy()
	e.selection.SetSelection(p.IDs)

	return inverse(domain.CmdSetSelection, domain.SetSelectionPayload{IDs: prev})
}
