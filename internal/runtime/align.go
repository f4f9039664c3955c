package runtime

import (
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
)

// alignSelected aligns two or more shapes on the mode axis. Locked shapes
// take part in the reference but are never moved.
func (e *Executor) alignSelected(cmd domain.Command) (*domain.Command, error) {
	var p domain.AlignSelectedPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}
	if !p.Mode.Known() {
		return nil, fmt.Errorf("%w: align mode %q", domain.ErrInvalidPayload, p.Mode)
	}
	if p.Reference == "" {
		p.Reference = domain.ReferenceSelection
	}

	shapes := e.resolve(cmd.Type, e.targetIDs(p.IDs))
	if len(shapes) < 2 {
		return nil, nil
	}

	// 1. Absolute boxes, before anything moves
	boxes := make([]domain.BoundingBox, len(shapes))
	for i, s := range shapes {
		boxes[i] = e.absoluteBox(s)
	}

	// 2. Reference
	bounds := e.bounds()
	ref, err := geometry.AlignReference(p.Mode, p.Reference, boxes, bounds)
	if err != nil {
		return nil, err
	}

	// 3. Clamped per-shape deltas; only non-zero moves are recorded
	prev := make([]domain.PositionEntry, 0, len(shapes))
	for i, s := range shapes {
		if s.Locked {
			continue
		}
		dx, dy := geometry.AlignDelta(p.Mode, boxes[i], ref)
		dx, dy = geometry.ClampDelta(boxes[i], dx, dy, bounds)
		if dx == 0 && dy == 0 {
			continue
		}
		prev = append(prev, domain.PositionEntry{ID: s.ID, Left: s.Left, Top: s.Top})
		if p.Mode.Horizontal() {
			s.Left += dx
		} else {
			s.Top += dy
		}
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetPositions, domain.SetPositionsPayload{Positions: prev})
}
