package geometry

import (
	"math"

	"github.com/aretw0/easel/pkg/domain"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Transform returns the local-to-scene matrix of s:
// scale first, then rotate about the origin, then translate to (Left, Top).
// A zero scale factor is read as 1.
func Transform(s domain.Shape) matrix.Matrix {
	sx, sy := Scale(s)
	return matrix.Scale(sx, sy).RotateDeg(s.Angle).Translate(s.Left, s.Top)
}

// Scale returns the scale factors of s with zero values normalized to 1.
func Scale(s domain.Shape) (sx, sy float64) {
	sx, sy = s.ScaleX, s.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Apply maps p through m.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Corners returns the four corners of s in scene coordinates, clockwise from
// the local origin.
func Corners(s domain.Shape) [4]vec.Vec2 {
	w, h := s.LocalSize()
	m := Transform(s)
	return [4]vec.Vec2{
		Apply(m, vec.Vec2{X: 0, Y: 0}),
		Apply(m, vec.Vec2{X: w, Y: 0}),
		Apply(m, vec.Vec2{X: w, Y: h}),
		Apply(m, vec.Vec2{X: 0, Y: h}),
	}
}

// Bounds returns the axis-aligned rectangle enclosing the transformed shape.
func Bounds(s domain.Shape) rect.Rect {
	c := Corners(s)
	r := rect.Rect{LLx: c[0].X, LLy: c[0].Y, URx: c[0].X, URy: c[0].Y}
	for _, p := range c[1:] {
		r.LLx = math.Min(r.LLx, p.X)
		r.LLy = math.Min(r.LLy, p.Y)
		r.URx = math.Max(r.URx, p.X)
		r.URy = math.Max(r.URy, p.Y)
	}
	return r
}

// Box converts a rectangle into a BoundingBox. LL is the top-left corner on a
// y-down canvas.
func Box(r rect.Rect) domain.BoundingBox {
	return domain.BoundingBox{
		Left:   r.LLx,
		Top:    r.LLy,
		Width:  r.URx - r.LLx,
		Height: r.URy - r.LLy,
	}
}

// AbsoluteBox returns the scene-space bounding box of s. When s is a member
// of an active multi-select group its stored origin is relative to the group
// center, which is added back here.
func AbsoluteBox(s domain.Shape, group *domain.GroupFrame) domain.BoundingBox {
	b := Box(Bounds(s))
	if group != nil {
		b.Left += group.CenterX
		b.Top += group.CenterY
	}
	return b
}

// Center returns the visual center of s in the same frame as its origin.
func Center(s domain.Shape) vec.Vec2 {
	w, h := s.LocalSize()
	return Apply(Transform(s), vec.Vec2{X: w / 2, Y: h / 2})
}

// OriginForCenter returns the origin that places the center of s at c,
// keeping its current scale and angle.
func OriginForCenter(s domain.Shape, c vec.Vec2) (left, top float64) {
	s.Left, s.Top = 0, 0
	offset := Center(s)
	return c.X - offset.X, c.Y - offset.Y
}
