package dsl

import "github.com/aretw0/easel/pkg/domain"

// ShapeBuilder provides a fluent API for describing a shape.
type ShapeBuilder struct {
	shape domain.Shape
}

func newShape(kind domain.ShapeKind, left, top float64) *ShapeBuilder {
	return &ShapeBuilder{shape: domain.Shape{
		Kind:   kind,
		Left:   left,
		Top:    top,
		ScaleX: 1,
		ScaleY: 1,
	}}
}

// Rect starts a rectangle with its top-left corner at (left, top).
func Rect(left, top, width, height float64) *ShapeBuilder {
	b := newShape(domain.KindRect, left, top)
	b.shape.Width, b.shape.Height = width, height
	return b
}

// Triangle starts an isosceles triangle inscribed in the given box.
func Triangle(left, top, width, height float64) *ShapeBuilder {
	b := newShape(domain.KindTriangle, left, top)
	b.shape.Width, b.shape.Height = width, height
	return b
}

// Line starts a line spanning the given box.
func Line(left, top, width, height float64) *ShapeBuilder {
	b := newShape(domain.KindLine, left, top)
	b.shape.Width, b.shape.Height = width, height
	return b
}

// Text starts a text box.
func Text(left, top, width, height float64) *ShapeBuilder {
	b := newShape(domain.KindText, left, top)
	b.shape.Width, b.shape.Height = width, height
	return b
}

// Ellipse starts an ellipse whose bounding box starts at (left, top).
func Ellipse(left, top, rx, ry float64) *ShapeBuilder {
	b := newShape(domain.KindEllipse, left, top)
	b.shape.RX, b.shape.RY = rx, ry
	return b
}

// Circle starts a circle whose bounding box starts at (left, top).
func Circle(left, top, radius float64) *ShapeBuilder {
	b := newShape(domain.KindCircle, left, top)
	b.shape.Radius = radius
	return b
}

// Point starts a point marker of the given size.
func Point(left, top, size float64) *ShapeBuilder {
	b := newShape(domain.KindPoint, left, top)
	b.shape.Width, b.shape.Height = size, size
	return b
}

// ID fixes the shape id instead of letting the store assign one.
func (b *ShapeBuilder) ID(id string) *ShapeBuilder {
	b.shape.ID = id
	return b
}

// Fill sets the fill colour.
func (b *ShapeBuilder) Fill(color string) *ShapeBuilder {
	b.shape.Style.Fill = color
	return b
}

// Stroke sets the stroke colour and width.
func (b *ShapeBuilder) Stroke(color string, width float64) *ShapeBuilder {
	b.shape.Style.Stroke = color
	b.shape.Style.StrokeWidth = width
	return b
}

// Rotate sets the angle in degrees.
func (b *ShapeBuilder) Rotate(angle float64) *ShapeBuilder {
	b.shape.Angle = angle
	return b
}

// Scale sets the scale factors.
func (b *ShapeBuilder) Scale(sx, sy float64) *ShapeBuilder {
	b.shape.ScaleX, b.shape.ScaleY = sx, sy
	return b
}

// Locked creates the shape locked.
func (b *ShapeBuilder) Locked() *ShapeBuilder {
	b.shape.Locked = true
	return b
}

// Shape returns the described shape.
func (b *ShapeBuilder) Shape() domain.Shape {
	return b.shape
}

// Add returns an ADD_SHAPE command for the shape.
func (b *ShapeBuilder) Add() domain.Command {
	return domain.NewCommand(domain.CmdAddShape, domain.AddShapePayload{Shape: b.shape})
}
