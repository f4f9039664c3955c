package runtime

import "github.com/aretw0/easel/pkg/domain"

// setStyle patches paint attributes. Unset patch fields are left untouched.
func (e *Executor) setStyle(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetStylePayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}
	if p.Stroke == nil && p.Fill == nil && p.StrokeWidth == nil {
		return nil, nil
	}

	targets := e.resolve(cmd.Type, e.targetIDs(p.IDs))
	if len(targets) == 0 {
		return nil, nil
	}

	prev := make([]domain.StyleEntry, 0, len(targets))
	for _, s := range targets {
		prev = append(prev, domain.StyleEntry{ID: s.ID, Style: s.Style})
		if p.Stroke != nil {
			s.Style.Stroke = *p.Stroke
		}
		if p.Fill != nil {
			s.Style.Fill = *p.Fill
		}
		if p.StrokeWidth != nil {
			s.Style.StrokeWidth = *p.StrokeWidth
		}
	}

	return inverse(domain.CmdSetStyles, domain.SetStylesPayload{Styles: prev})
}

func (e *Executor) setStyles(cmd domain.Command) (*domain.Command, error) {
	var p domain.SetStylesPayload
	if err := decode(cmd, &p); err != nil {
		return nil, err
	}

	prev := make([]domain.StyleEntry, 0, len(p.Styles))
	for _, entry := range p.Styles {
		s, ok := e.store.Find(entry.ID)
		if !ok {
			e.logger.Debug("skipping unknown shape", "cmd_type", cmd.Type, "shape_id", entry.ID)
			continue
		}
		prev = append(prev, domain.StyleEntry{ID: s.ID, Style: s.Style})
		s.Style = entry.Style
	}
	if len(prev) == 0 {
		return nil, nil
	}

	return inverse(domain.CmdSetStyles, domain.SetStylesPayload{Styles: prev})
}
