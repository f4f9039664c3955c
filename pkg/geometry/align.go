package geometry

import (
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
)

// AlignReference returns the coordinate the boxes are aligned to.
//
// With the canvas reference and a background, the value is 0, the full extent
// or half the extent of the background on the mode axis. Otherwise it is
// derived from the boxes: the extreme edge for left/right/top/bottom, and for
// centerX (middleY) the center of the box with the smallest left (top). Ties
// keep the first box.
func AlignReference(mode domain.AlignMode, ref domain.AlignReference, boxes []domain.BoundingBox, canvas *domain.BoundingBox) (float64, error) {
	if !mode.Known() {
		return 0, fmt.Errorf("%w: align mode %q", domain.ErrInvalidPayload, mode)
	}
	if ref == domain.ReferenceCanvas && canvas != nil {
		return canvasReference(mode, *canvas), nil
	}
	if len(boxes) == 0 {
		return 0, fmt.Errorf("%w: no boxes to align", domain.ErrInvalidPayload)
	}
	return selectionReference(mode, boxes), nil
}

func canvasReference(mode domain.AlignMode, c domain.BoundingBox) float64 {
	switch mode {
	case domain.AlignCenterX:
		return c.Width / 2
	case domain.AlignRight:
		return c.Width
	case domain.AlignMiddleY:
		return c.Height / 2
	case domain.AlignBottom:
		return c.Height
	default:
		return 0
	}
}

func selectionReference(mode domain.AlignMode, boxes []domain.BoundingBox) float64 {
	first := boxes[0]
	switch mode {
	case domain.AlignLeft:
		v := first.Left
		for _, b := range boxes[1:] {
			if b.Left < v {
				v = b.Left
			}
		}
		return v
	case domain.AlignRight:
		v := first.Right()
		for _, b := range boxes[1:] {
			if b.Right() > v {
				v = b.Right()
			}
		}
		return v
	case domain.AlignTop:
		v := first.Top
		for _, b := range boxes[1:] {
			if b.Top < v {
				v = b.Top
			}
		}
		return v
	case domain.AlignBottom:
		v := first.Bottom()
		for _, b := range boxes[1:] {
			if b.Bottom() > v {
				v = b.Bottom()
			}
		}
		return v
	case domain.AlignCenterX:
		lead := first
		for _, b := range boxes[1:] {
			if b.Left < lead.Left {
				lead = b
			}
		}
		return lead.CenterX()
	default: // middleY
		lead := first
		for _, b := range boxes[1:] {
			if b.Top < lead.Top {
				lead = b
			}
		}
		return lead.CenterY()
	}
}

// AlignDelta returns the translation that aligns box to reference.
// Only the mode axis is ever non-zero.
func AlignDelta(mode domain.AlignMode, box domain.BoundingBox, reference float64) (dx, dy float64) {
	switch mode {
	case domain.AlignLeft:
		return reference - box.Left, 0
	case domain.AlignCenterX:
		return reference - box.CenterX(), 0
	case domain.AlignRight:
		return reference - box.Right(), 0
	case domain.AlignTop:
		return 0, reference - box.Top
	case domain.AlignMiddleY:
		return 0, reference - box.CenterY()
	case domain.AlignBottom:
		return 0, reference - box.Bottom()
	}
	return 0, 0
}
