package geometry

import "github.com/aretw0/easel/pkg/domain"

// ClampDelta limits (dx, dy) so that box, once translated, stays inside
// [0, bounds.Width] x [0, bounds.Height]. Each axis is clamped independently.
// When the box is larger than the bounds, the left/top edge wins.
// A zero component is never clamped, so an axis that is not being moved stays
// put. Without bounds the delta passes through.
func ClampDelta(box domain.BoundingBox, dx, dy float64, bounds *domain.BoundingBox) (float64, float64) {
	if bounds == nil {
		return dx, dy
	}
	return clampAxis(box.Left, box.Width, dx, bounds.Width),
		clampAxis(box.Top, box.Height, dy, bounds.Height)
}

func clampAxis(start, size, d, limit float64) float64 {
	if d == 0 {
		return 0
	}
	if start+size+d > limit {
		d = limit - (start + size)
	}
	if start+d < 0 {
		d = -start
	}
	return d
}
