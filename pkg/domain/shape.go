package domain

// ShapeKind is the type tag of a shape.
type ShapeKind string

const (
	KindRect     ShapeKind = "rect"
	KindTriangle ShapeKind = "triangle"
	KindEllipse  ShapeKind = "ellipse"
	KindCircle   ShapeKind = "circle"
	KindLine     ShapeKind = "line"
	KindText     ShapeKind = "text"
	KindPoint    ShapeKind = "point"
)

// Known reports whether k is a supported shape kind.
func (k ShapeKind) Known() bool {
	switch k {
	case KindRect, KindTriangle, KindEllipse, KindCircle, KindLine, KindText, KindPoint:
		return true
	}
	return false
}

// Rotatable reports whether rotating the kind has a visible effect.
// Circles and point markers are rotation invariant and are skipped by RESET_ROTATION.
func (k ShapeKind) Rotatable() bool {
	switch k {
	case KindCircle, KindPoint:
		return false
	}
	return k.Known()
}

// Style holds the paint attributes copied from a shape's primary drawable.
type Style struct {
	Stroke      string  `json:"stroke,omitempty" yaml:"stroke,omitempty" mapstructure:"stroke"`
	Fill        string  `json:"fill,omitempty" yaml:"fill,omitempty" mapstructure:"fill"`
	StrokeWidth float64 `json:"strokeWidth,omitempty" yaml:"strokeWidth,omitempty" mapstructure:"strokeWidth"`
}

// Shape is a scene entity. The store hands out *Shape handles; history frames
// and payloads only ever hold Shape values and ids.
//
// (Left, Top) is the local origin of the shape, i.e. its unrotated top-left
// corner. A local point p maps to the scene as
// Translate(Left, Top) · Rotate(Angle) · Scale(ScaleX, ScaleY) · p.
type Shape struct {
	ID   string    `json:"id" yaml:"id" mapstructure:"id"`
	Kind ShapeKind `json:"kind" yaml:"kind" mapstructure:"kind"`

	Left float64 `json:"left" yaml:"left" mapstructure:"left"`
	Top  float64 `json:"top" yaml:"top" mapstructure:"top"`

	// Width/Height apply to rect, triangle, line, text and point.
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty" mapstructure:"width"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty" mapstructure:"height"`
	// Radius applies to circle.
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty" mapstructure:"radius"`
	// RX/RY apply to ellipse.
	RX float64 `json:"rx,omitempty" yaml:"rx,omitempty" mapstructure:"rx"`
	RY float64 `json:"ry,omitempty" yaml:"ry,omitempty" mapstructure:"ry"`

	ScaleX float64 `json:"scaleX" yaml:"scaleX" mapstructure:"scaleX"`
	ScaleY float64 `json:"scaleY" yaml:"scaleY" mapstructure:"scaleY"`
	// Angle is in degrees, clockwise on a y-down canvas.
	Angle float64 `json:"angle" yaml:"angle" mapstructure:"angle"`

	Locked bool `json:"locked" yaml:"locked" mapstructure:"locked"`
	// Controls tells the host whether transform handles are offered.
	Controls bool `json:"controls" yaml:"controls" mapstructure:"controls"`

	Style Style `json:"style" yaml:"style" mapstructure:"style"`
}

// LocalSize returns the unscaled size of the shape in its own coordinates.
func (s Shape) LocalSize() (w, h float64) {
	switch s.Kind {
	case KindCircle:
		return 2 * s.Radius, 2 * s.Radius
	case KindEllipse:
		return 2 * s.RX, 2 * s.RY
	default:
		return s.Width, s.Height
	}
}

// Position returns the stored origin.
func (s Shape) Position() (left, top float64) {
	return s.Left, s.Top
}

// Lock marks the shape locked and removes its transform affordances.
// It reports whether the state changed.
func (s *Shape) Lock() bool {
	if s.Locked {
		return false
	}
	s.Locked = true
	s.Controls = false
	return true
}

// Unlock clears the locked flag and restores transform affordances.
// It reports whether the state changed.
func (s *Shape) Unlock() bool {
	if !s.Locked {
		return false
	}
	s.Locked = false
	s.Controls = true
	return true
}

// BoundingBox is an axis-aligned box in scene coordinates.
type BoundingBox struct {
	Left   float64 `json:"left" yaml:"left" mapstructure:"left"`
	Top    float64 `json:"top" yaml:"top" mapstructure:"top"`
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// Right returns the x coordinate of the right edge.
func (b BoundingBox) Right() float64 { return b.Left + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b BoundingBox) Bottom() float64 { return b.Top + b.Height }

// CenterX returns the horizontal center.
func (b BoundingBox) CenterX() float64 { return b.Left + b.Width/2 }

// CenterY returns the vertical center.
func (b BoundingBox) CenterY() float64 { return b.Top + b.Height/2 }

// GroupFrame describes a transient multi-select group.
// Members of the group report Left/Top relative to the group center.
type GroupFrame struct {
	CenterX float64 `json:"centerX" mapstructure:"centerX"`
	CenterY float64 `json:"centerY" mapstructure:"centerY"`
}
