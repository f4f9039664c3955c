package runtime

import (
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
	"seehuhn.de/go/geom/vec"
)

func (e *Executor) addShape(cmd domain.Command) (*domain.Command, error) {
	var p domain.AddShapePayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	s, err := e.store.Build(p.Shape)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", p.Shape.Kind, err)
	}

	prev := e.selectedCopy()
	if err := e.store.Add(s); err != nil {
		return nil, fmt.Errorf("add %s: %w", s.ID, err)
	}
	e.selection.SetSelection([]string{s.ID})

	return inverse(domain.CmdDeleteShapes, domain.DeleteShapesPayload{
		IDs:       []string{s.ID},
		Selection: prev,
	})
}

// addShapes rebuilds shapes from snapshots through the store factory.
// Snapshots that fail to build are skipped.
func (e *Executor) addShapes(cmd domain.Command) (*domain.Command, error) {
	var p domain.AddShapesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := e.selectedCopy()
	added := make([]string, 0, len(p.Shapes))
	for _, snap := range p.Shapes {
		s, err := e.store.Build(snap)
		if err != nil {
			e.logger.Warn("skipping shape snapshot", "cmd_type", cmd.Type, "shape_id", snap.ID, "err", err)
			continue
		}
		if err := e.store.Add(s); err != nil {
			e.logger.Warn("skipping shape snapshot", "cmd_type", cmd.Type, "shape_id", s.ID, "err", err)
			continue
		}
		added = append(added, s.ID)
	}
	if len(added) == 0 {
		return nil, nil
	}

	if p.Selection != nil {
		e.selection.SetSelection(p.Selection)
	}

	return inverse(domain.CmdDeleteShapes, domain.DeleteShapesPayload{
		IDs:       added,
		Selection: prev,
	})
}

func (e *Executor) deleteShapes(cmd domain.Command) (*domain.Command, error) {
	var p domain.DeleteShapesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	targets := e.resolve(cmd.Type, p.IDs)
	if len(targets) == 0 {
		return nil, nil
	}

	// Snapshots are taken before anything is removed so group-relative
	// origins can still be resolved.
	prev := e.selectedCopy()
	snaps := make([]domain.Shape, 0, len(targets))
	for _, s := range targets {
		snaps = append(snaps, e.absolute(s))
	}

	removed := make(map[string]bool, len(targets))
	restored := make([]domain.Shape, 0, len(snaps))
	for _, snap := range snaps {
		if err := e.store.Remove(snap.ID); err != nil {
			e.logger.Warn("skipping shape", "cmd_type", cmd.Type, "shape_id", snap.ID, "err", err)
			continue
		}
		removed[snap.ID] = true
		restored = append(restored, snap)
	}
	if len(restored) == 0 {
		return nil, nil
	}

	if p.Selection != nil {
		e.selection.SetSelection(p.Selection)
	} else {
		remaining := make([]string, 0, len(prev))
		for _, id := range prev {
			if !removed[id] {
				remaining = append(remaining, id)
			}
		}
		e.selection.SetSelection(remaining)
	}

	return inverse(domain.CmdAddShapes, domain.AddShapesPayload{
		Shapes:    restored,
		Selection: prev,
	})
}

func (e *Executor) duplicateShapes(cmd domain.Command) (*domain.Command, error) {
	var p domain.DuplicateShapesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	sources := e.resolve(cmd.Type, e.targetIDs(p.IDs))
	if len(sources) == 0 {
		return nil, nil
	}

	offset := vec.Vec2{X: e.dupDX, Y: e.dupDY}
	if p.DX != nil {
		offset.X = *p.DX
	}
	if p.DY != nil {
		offset.Y = *p.DY
	}

	prev := e.selectedCopy()
	clones := make([]string, 0, len(sources))
	for _, src := range sources {
		clone, err := e.cloneShape(e.absolute(src), offset)
		if err != nil {
			e.logger.Warn("skipping duplicate", "cmd_type", cmd.Type, "shape_id", src.ID, "err", err)
			continue
		}
		if err := e.store.Add(clone); err != nil {
			e.logger.Warn("skipping duplicate", "cmd_type", cmd.Type, "shape_id", src.ID, "err", err)
			continue
		}
		clones = append(clones, clone.ID)
	}
	if len(clones) == 0 {
		return nil, nil
	}

	e.selection.SetSelection(clones)

	return inverse(domain.CmdDeleteShapes, domain.DeleteShapesPayload{
		IDs:       clones,
		Selection: prev,
	})
}

// cloneShape reproduces src with its center moved by offset. If the factory
// rejects the full copy, it retries with an unscaled, unrotated shape of the
// same visual size.
func (e *Executor) cloneShape(src domain.Shape, offset vec.Vec2) (*domain.Shape, error) {
	center := geometry.Center(src).Add(offset)

	spec := src
	spec.ID = ""
	spec.Left, spec.Top = geometry.OriginForCenter(spec, center)
	clone, err := e.store.Build(spec)
	if err == nil {
		return clone, nil
	}
	e.logger.Debug("clone failed, using plain reconstruction", "shape_id", src.ID, "err", err)

	sx, sy := geometry.Scale(src)
	w, h := src.LocalSize()
	plain := domain.Shape{
		Kind:     src.Kind,
		Width:    src.Width * sx,
		Height:   src.Height * sy,
		Radius:   src.Radius * sx,
		RX:       src.RX * sx,
		RY:       src.RY * sy,
		ScaleX:   1,
		ScaleY:   1,
		Controls: true,
		Style:    src.Style,
	}
	plain.Left = center.X - w*sx/2
	plain.Top = center.Y - h*sy/2
	return e.store.Build(plain)
}
