package runtime_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetRotation_KeepsCenter(t *testing.T) {
	f := newFixture(t)
	s := f.add(t, domain.Shape{ID: "t", Kind: domain.KindTriangle, Left: 200, Top: 100, Width: 100, Height: 50, Angle: 37, ScaleX: 2, ScaleY: 0.5})
	f.add(t, domain.Shape{ID: "c", Kind: domain.KindCircle, Left: 0, Top: 0, Radius: 5, Angle: 45})
	f.add(t, domain.Shape{ID: "l", Kind: domain.KindRect, Left: 0, Top: 0, Width: 5, Height: 5, Angle: 45, Locked: true})
	f.scene.SetSelection([]string{"t", "c", "l"})

	center := geometry.Center(*s)

	inv := f.run(t, domain.CmdResetRotation, domain.ResetRotationPayload{})
	require.NotNil(t, inv)

	assert.Zero(t, s.Angle)
	after := geometry.Center(*s)
	assert.InDelta(t, center.X, after.X, tolerance)
	assert.InDelta(t, center.Y, after.Y, tolerance)

	// Circle and locked shape are skipped silently
	c, _ := f.scene.Find("c")
	assert.Equal(t, 45.0, c.Angle)
	l, _ := f.scene.Find("l")
	assert.Equal(t, 45.0, l.Angle)

	var p domain.SetAnglesPositionsPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, []domain.AnglePositionEntry{{ID: "t", Angle: 37, Left: 200, Top: 100}}, p.Entries)
}

func TestDuplicate_PreservesTransform(t *testing.T) {
	f := newFixture(t)
	src := f.add(t, domain.Shape{ID: "e", Kind: domain.KindEllipse, Left: 40, Top: 60, RX: 20, RY: 10, Angle: 20, ScaleX: 1.5, ScaleY: 1.5,
		Style: domain.Style{Stroke: "#111111", Fill: "#eeeeee", StrokeWidth: 3}})
	f.scene.SetSelection([]string{"e"})

	inv := f.run(t, domain.CmdDuplicateShapes, domain.DuplicateShapesPayload{})
	require.NotNil(t, inv)
	require.Equal(t, []string{"gen-1"}, f.scene.Selected())

	clone, ok := f.scene.Find("gen-1")
	require.True(t, ok)
	assert.Equal(t, src.Style, clone.Style)
	assert.Equal(t, src.Angle, clone.Angle)
	assert.Equal(t, src.ScaleX, clone.ScaleX)
	assert.Equal(t, src.RX, clone.RX)
	assert.Equal(t, src.RY, clone.RY)

	srcCenter := geometry.Center(*src)
	cloneCenter := geometry.Center(*clone)
	assert.InDelta(t, srcCenter.X+20, cloneCenter.X, tolerance)
	assert.InDelta(t, srcCenter.Y+20, cloneCenter.Y, tolerance)

	// Explicit offset
	f.run(t, domain.CmdDuplicateShapes, domain.DuplicateShapesPayload{IDs: []string{"e"}, DX: ptr(5.0), DY: ptr(0.0)})
	second, ok := f.scene.Find("gen-2")
	require.True(t, ok)
	assert.InDelta(t, src.Left+5, second.Left, tolerance)
	assert.InDelta(t, src.Top, second.Top, tolerance)
}

func TestSetStyle_CoalescingFriendlyInverse(t *testing.T) {
	f := newFixture(t)
	f.add(t, domain.Shape{ID: "a", Kind: domain.KindRect, Width: 1, Height: 1, Style: domain.Style{Fill: "#000000", Stroke: "#ffffff"}})
	f.scene.SetSelection([]string{"a"})

	inv := f.run(t, domain.CmdSetStyle, domain.SetStylePayload{Fill: ptr("#ff0000")})
	require.NotNil(t, inv)

	a, _ := f.scene.Find("a")
	assert.Equal(t, "#ff0000", a.Style.Fill)
	assert.Equal(t, "#ffffff", a.Style.Stroke, "unset patch fields are untouched")

	assert.Equal(t, domain.CmdSetStyles, inv.Type)
	var p domain.SetStylesPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, "#000000", p.Styles[0].Style.Fill)
}
