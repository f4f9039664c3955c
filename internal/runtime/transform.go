package runtime

import (
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
)

func (e *Executor) moveShapesDelta(cmd domain.Command) (*domain.Command, error) {
	var p domain.MoveShapesDeltaPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	var eligible []*domain.Shape
	for _, s := range e.resolve(cmd.Type, e.targetIDs(p.IDs)) {
		if s.Locked {
			continue
		}
		eligible = append(eligible, s)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	var bounds *domain.BoundingBox
	if p.Clamp == nil || *p.Clamp {
		bounds = e.bounds()
	}

	prev := make([]domain.PositionEntry, 0, len(eligible))
	for _, s := range eligible {
		dx, dy := geometry.ClampDelta(e.absoluteBox(s), p.DX, p.DY, bounds)
		if dx == 0 && dy == 0 {
			continue
		}
		prev = append(prev, domain.PositionEntry{ID: s.ID, Left: s.Left, Top: s.Top})
		s.Left += dx
		s.Top += dy
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetPositions, domain.SetPositionsPayload{Positions: prev})
}

// setPositions is the undo/redo primitive for moves. It ignores the lock
// state so an undo always lands.
func (e *Executor) setPositions(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetPositionsPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := make([]domain.PositionEntry, 0, len(p.Positions))
	for _, pos := range p.Positions {
		s, ok := e.store.Find(pos.ID)
		if !ok {
			e.logger.Debug("skipping unknown shape", "cmd_type", cmd.Type, "shape_id", pos.ID)
			continue
		}
		prev = append(prev, domain.PositionEntry{ID: s.ID, Left: s.Left, Top: s.Top})
		s.Left, s.Top = pos.Left, pos.Top
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetPositions, domain.SetPositionsPayload{Positions: prev})
}

// resetRotation zeroes the angle of rotatable, unlocked shapes while keeping
// their visual center in place.
func (e *Executor) resetRotation(cmd domain.Command) (*domain.Command, error) {
	var p domain.ResetRotationPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	var eligible []*domain.Shape
	for _, s := range e.resolve(cmd.Type, e.targetIDs(p.IDs)) {
		if s.Locked || !s.Kind.Rotatable() || s.Angle == 0 {
			continue
		}
		eligible = append(eligible, s)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	prev := make([]domain.AnglePositionEntry, 0, len(eligible))
	for _, s := range eligible {
		prev = append(prev, domain.AnglePositionEntry{ID: s.ID, Angle: s.Angle, Left: s.Left, Top: s.Top})
		center := geometry.Center(*s)
		s.Angle = 0
		s.Left, s.Top = geometry.OriginForCenter(*s, center)
	}

	return inverse(domain.CmdSetAnglesPositions, domain.SetAnglesPositionsPayload{Entries: prev})
}

func (e *Executor) setAnglesPositions(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetAnglesPositionsPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := make([]domain.AnglePositionEntry, 0, len(p.Entries))
	for _, entry := range p.Entries {
		s, ok := e.store.Find(entry.ID)
		if !ok {
			e.logger.Debug("skipping unknown shape", "cmd_type", cmd.Type, "shape_id", entry.ID)
			continue
		}
		prev = append(prev, domain.AnglePositionEntry{ID: s.ID, Angle: s.Angle, Left: s.Left, Top: s.Top})
		s.Angle = entry.Angle
		s.Left, s.Top = entry.Left, entry.Top
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetAnglesPositions, domain.SetAnglesPositionsPayload{Entries: prev})
}

// setTransforms commits a transform gesture in one step.
func (e *Executor) setTransforms(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetTransformsPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := make([]domain.TransformEntry, 0, len(p.Transforms))
	for _, tr := range p.Transforms {
		s, ok := e.store.Find(tr.ID)
		if !ok {
			e.logger.Debug("skipping unknown shape", "cmd_type", cmd.Type, "shape_id", tr.ID)
			continue
		}
		if tr.Empty() {
			continue
		}
		prev = append(prev, transformOf(s))
		setIf(&s.Left, tr.Left)
		setIf(&s.Top, tr.Top)
		setIf(&s.ScaleX, tr.ScaleX)
		setIf(&s.ScaleY, tr.ScaleY)
		setIf(&s.Angle, tr.Angle)
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetTransforms, domain.SetTransformsPayload{Transforms: prev})
}

// transformOf captures every transform field of s.
func transformOf(s *domain.Shape) domain.TransformEntry {
	left, top, sx, sy, angle := s.Left, s.Top, s.ScaleX, s.ScaleY, s.Angle
	return domain.TransformEntry{ID: s.ID, Left: &left, Top: &top, ScaleX: &sx, ScaleY: &sy, Angle: &angle}
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
