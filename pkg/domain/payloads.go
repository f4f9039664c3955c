package domain

// Typed payloads for each command type. They are encoded into Command.Payload
// with NewCommand and decoded by the handlers with Command.Decode.
//
// Selection fields use nil to mean "leave the selection alone"; an empty,
// non-nil slice clears it.

// AddShapePayload constructs one shape and selects it.
type AddShapePayload struct {
	Shape Shape `json:"shape" mapstructure:"shape"`
}

// AddShapesPayload re-adds shapes from full snapshots.
type AddShapesPayload struct {
	Shapes    []Shape  `json:"shapes" mapstructure:"shapes"`
	Selection []string `json:"selection,omitempty" mapstructure:"selection"`
}

// DeleteShapesPayload removes shapes by id.
type DeleteShapesPayload struct {
	IDs       []string `json:"ids" mapstructure:"ids"`
	Selection []string `json:"selection,omitempty" mapstructure:"selection"`
}

// DuplicateShapesPayload clones shapes. A nil offset uses the executor default.
type DuplicateShapesPayload struct {
	IDs []string `json:"ids,omitempty" mapstructure:"ids"`
	DX  *float64 `json:"dx,omitempty" mapstructure:"dx"`
	DY  *float64 `json:"dy,omitempty" mapstructure:"dy"`
}

// SetSelectionPayload replaces the selection.
type SetSelectionPayload struct {
	IDs []string `json:"ids" mapstructure:"ids"`
}

// MoveShapesDeltaPayload translates shapes. Clamp defaults to true.
type MoveShapesDeltaPayload struct {
	IDs   []string `json:"ids,omitempty" mapstructure:"ids"`
	DX    float64  `json:"dx" mapstructure:"dx"`
	DY    float64  `json:"dy" mapstructure:"dy"`
	Clamp *bool    `json:"clamp,omitempty" mapstructure:"clamp"`
}

// PositionEntry is an absolute shape origin.
type PositionEntry struct {
	ID   string  `json:"id" mapstructure:"id"`
	Left float64 `json:"left" mapstructure:"left"`
	Top  float64 `json:"top" mapstructure:"top"`
}

// SetPositionsPayload sets absolute origins.
type SetPositionsPayload struct {
	Positions []PositionEntry `json:"positions" mapstructure:"positions"`
}

// ResetRotationPayload zeroes the angle of the targets.
type ResetRotationPayload struct {
	IDs []string `json:"ids,omitempty" mapstructure:"ids"`
}

// AnglePositionEntry restores an angle together with the matching origin.
type AnglePositionEntry struct {
	ID    string  `json:"id" mapstructure:"id"`
	Angle float64 `json:"angle" mapstructure:"angle"`
	Left  float64 `json:"left" mapstructure:"left"`
	Top   float64 `json:"top" mapstructure:"top"`
}

// SetAnglesPositionsPayload sets angles and origins.
type SetAnglesPositionsPayload struct {
	Entries []AnglePositionEntry `json:"entries" mapstructure:"entries"`
}

// LockShapesPayload locks the targets.
type LockShapesPayload struct {
	IDs []string `json:"ids,omitempty" mapstructure:"ids"`
}

// UnlockShapesPayload unlocks the targets. Without ids it falls back to the
// selection, then to every locked shape in the store.
type UnlockShapesPayload struct {
	IDs []string `json:"ids,omitempty" mapstructure:"ids"`
}

// AlignMode selects the edge or center that is aligned.
type AlignMode string

const (
	AlignLeft    AlignMode = "left"
	AlignCenterX AlignMode = "centerX"
	AlignRight   AlignMode = "right"
	AlignTop     AlignMode = "top"
	AlignMiddleY AlignMode = "middleY"
	AlignBottom  AlignMode = "bottom"
)

// Horizontal reports whether the mode moves shapes along X.
func (m AlignMode) Horizontal() bool {
	return m == AlignLeft || m == AlignCenterX || m == AlignRight
}

// Known reports whether m is a supported mode.
func (m AlignMode) Known() bool {
	switch m {
	case AlignLeft, AlignCenterX, AlignRight, AlignTop, AlignMiddleY, AlignBottom:
		return true
	}
	return false
}

// AlignReference selects what the shapes are aligned to.
type AlignReference string

const (
	ReferenceSelection AlignReference = "selection"
	ReferenceCanvas    AlignReference = "canvas"
)

// AlignSelectedPayload aligns the selection (or ids) on one axis.
type AlignSelectedPayload struct {
	Mode      AlignMode      `json:"mode" mapstructure:"mode"`
	Reference AlignReference `json:"reference,omitempty" mapstructure:"reference"`
	IDs       []string       `json:"ids,omitempty" mapstructure:"ids"`
}

// TransformEntry is a transform commit for one shape. Nil fields are left
// untouched.
type TransformEntry struct {
	ID     string   `json:"id" mapstructure:"id"`
	Left   *float64 `json:"left,omitempty" mapstructure:"left"`
	Top    *float64 `json:"top,omitempty" mapstructure:"top"`
	ScaleX *float64 `json:"scaleX,omitempty" mapstructure:"scaleX"`
	ScaleY *float64 `json:"scaleY,omitempty" mapstructure:"scaleY"`
	Angle  *float64 `json:"angle,omitempty" mapstructure:"angle"`
}

// Empty reports whether the entry sets no field.
func (t TransformEntry) Empty() bool {
	return t.Left == nil && t.Top == nil && t.ScaleX == nil && t.ScaleY == nil && t.Angle == nil
}

// SetTransformsPayload commits transforms in bulk.
type SetTransformsPayload struct {
	Transforms []TransformEntry `json:"transforms" mapstructure:"transforms"`
}

// SetStylePayload patches paint attributes. Nil fields are left untouched.
type SetStylePayload struct {
	IDs         []string `json:"ids,omitempty" mapstructure:"ids"`
	Stroke      *string  `json:"stroke,omitempty" mapstructure:"stroke"`
	Fill        *string  `json:"fill,omitempty" mapstructure:"fill"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty" mapstructure:"strokeWidth"`
}

// StyleEntry is the full style of one shape.
type StyleEntry struct {
	ID    string `json:"id" mapstructure:"id"`
	Style Style  `json:"style" mapstructure:"style"`
}

// SetStylesPayload sets absolute styles.
type SetStylesPayload struct {
	Styles []StyleEntry `json:"styles" mapstructure:"styles"`
}
