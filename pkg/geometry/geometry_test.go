package geometry_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

const tol = 1e-9

func rect(left, top, w, h float64) domain.Shape {
	return domain.Shape{ID: "r", Kind: domain.KindRect, Left: left, Top: top, Width: w, Height: h, ScaleX: 1, ScaleY: 1}
}

func assertBox(t *testing.T, want, got domain.BoundingBox) {
	t.Helper()
	assert.InDelta(t, want.Left, got.Left, tol, "left")
	assert.InDelta(t, want.Top, got.Top, tol, "top")
	assert.InDelta(t, want.Width, got.Width, tol, "width")
	assert.InDelta(t, want.Height, got.Height, tol, "height")
}

func TestAbsoluteBox(t *testing.T) {
	t.Run("Axis aligned", func(t *testing.T) {
		assertBox(t, domain.BoundingBox{Left: 10, Top: 20, Width: 100, Height: 50},
			geometry.AbsoluteBox(rect(10, 20, 100, 50), nil))
	})

	t.Run("Scaled circle", func(t *testing.T) {
		c := domain.Shape{Kind: domain.KindCircle, Left: 5, Top: 5, Radius: 10, ScaleX: 2, ScaleY: 0.5}
		assertBox(t, domain.BoundingBox{Left: 5, Top: 5, Width: 40, Height: 10}, geometry.AbsoluteBox(c, nil))
	})

	t.Run("Rotated quarter turn", func(t *testing.T) {
		s := rect(0, 0, 100, 50)
		s.Angle = 90
		assertBox(t, domain.BoundingBox{Left: -50, Top: 0, Width: 50, Height: 100}, geometry.AbsoluteBox(s, nil))
	})

	t.Run("Group relative", func(t *testing.T) {
		s := rect(-30, -10, 20, 20)
		group := &domain.GroupFrame{CenterX: 100, CenterY: 200}
		assertBox(t, domain.BoundingBox{Left: 70, Top: 190, Width: 20, Height: 20}, geometry.AbsoluteBox(s, group))
	})

	t.Run("Zero scale reads as one", func(t *testing.T) {
		s := domain.Shape{Kind: domain.KindEllipse, RX: 10, RY: 5}
		assertBox(t, domain.BoundingBox{Width: 20, Height: 10}, geometry.AbsoluteBox(s, nil))
	})
}

func TestCenterAndOrigin(t *testing.T) {
	s := rect(0, 0, 100, 50)
	s.Angle = 90

	c := geometry.Center(s)
	assert.InDelta(t, -25, c.X, tol)
	assert.InDelta(t, 50, c.Y, tol)

	// Unrotating around the same center
	s.Angle = 0
	left, top := geometry.OriginForCenter(s, c)
	assert.InDelta(t, -75, left, tol)
	assert.InDelta(t, 25, top, tol)

	s.Left, s.Top = left, top
	back := geometry.Center(s)
	assert.InDelta(t, c.X, back.X, tol)
	assert.InDelta(t, c.Y, back.Y, tol)
}

func TestApply(t *testing.T) {
	m := geometry.Transform(domain.Shape{Left: 3, Top: 4, ScaleX: 2, ScaleY: 3})
	p := geometry.Apply(m, vec.Vec2{X: 1, Y: 1})
	assert.InDelta(t, 5, p.X, tol)
	assert.InDelta(t, 7, p.Y, tol)
}

func TestClampDelta(t *testing.T) {
	bounds := &domain.BoundingBox{Width: 400, Height: 300}
	box := domain.BoundingBox{Left: 350, Top: 10, Width: 40, Height: 20}

	tests := []struct {
		name           string
		dx, dy         float64
		bounds         *domain.BoundingBox
		wantDX, wantDY float64
	}{
		{"Inside", 5, 5, bounds, 5, 5},
		{"Right edge", 50, 0, bounds, 10, 0},
		{"Top edge", 0, -50, bounds, 0, -10},
		{"Both axes", 100, 1000, bounds, 10, 270},
		{"No bounds", 1000, -1000, nil, 1000, -1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := geometry.ClampDelta(box, tt.dx, tt.dy, tt.bounds)
			assert.InDelta(t, tt.wantDX, dx, tol)
			assert.InDelta(t, tt.wantDY, dy, tol)
		})
	}

	t.Run("Oversized box keeps left edge", func(t *testing.T) {
		big := domain.BoundingBox{Left: 10, Top: 0, Width: 500, Height: 10}
		dx, _ := geometry.ClampDelta(big, 5, 0, bounds)
		assert.InDelta(t, -10, dx, tol)
	})

	t.Run("Idle axis untouched", func(t *testing.T) {
		outside := domain.BoundingBox{Left: 10, Top: -40, Width: 10, Height: 10}
		dx, dy := geometry.ClampDelta(outside, 5, 0, bounds)
		assert.InDelta(t, 5, dx, tol)
		assert.Zero(t, dy)
	})
}

func TestAlignReference(t *testing.T) {
	boxes := []domain.BoundingBox{
		{Left: 30, Top: 10, Width: 10, Height: 10},
		{Left: 10, Top: 50, Width: 40, Height: 20},
		{Left: 10, Top: 5, Width: 100, Height: 100},
	}
	canvas := &domain.BoundingBox{Width: 400, Height: 300}

	tests := []struct {
		mode domain.AlignMode
		ref  domain.AlignReference
		cv   *domain.BoundingBox
		want float64
	}{
		{domain.AlignLeft, domain.ReferenceSelection, nil, 10},
		{domain.AlignRight, domain.ReferenceSelection, nil, 110},
		{domain.AlignTop, domain.ReferenceSelection, nil, 5},
		{domain.AlignBottom, domain.ReferenceSelection, nil, 105},
		// First box with the smallest left wins the tie.
		{domain.AlignCenterX, domain.ReferenceSelection, nil, 30},
		{domain.AlignMiddleY, domain.ReferenceSelection, nil, 55},
		{domain.AlignLeft, domain.ReferenceCanvas, canvas, 0},
		{domain.AlignRight, domain.ReferenceCanvas, canvas, 400},
		{domain.AlignCenterX, domain.ReferenceCanvas, canvas, 200},
		{domain.AlignMiddleY, domain.ReferenceCanvas, canvas, 150},
		{domain.AlignBottom, domain.ReferenceCanvas, canvas, 300},
		// Canvas without a background falls back to the selection.
		{domain.AlignRight, domain.ReferenceCanvas, nil, 110},
	}
	for _, tt := range tests {
		t.Run(string(tt.ref)+"/"+string(tt.mode), func(t *testing.T) {
			got, err := geometry.AlignReference(tt.mode, tt.ref, boxes, tt.cv)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tol)
		})
	}

	_, err := geometry.AlignReference("diagonal", domain.ReferenceSelection, boxes, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}

func TestAlignDelta(t *testing.T) {
	box := domain.BoundingBox{Left: 10, Top: 20, Width: 40, Height: 60}

	dx, dy := geometry.AlignDelta(domain.AlignRight, box, 400)
	assert.Equal(t, 350.0, dx)
	assert.Zero(t, dy)

	dx, dy = geometry.AlignDelta(domain.AlignMiddleY, box, 100)
	assert.Zero(t, dx)
	assert.Equal(t, 50.0, dy)
}
