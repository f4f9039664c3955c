package runtime_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aretw0/easel/internal/runtime"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func seeded(t *testing.T) *fixture {
	f := newFixture(t, memory.WithBackground(400, 300))
	f.add(t, domain.Shape{ID: "a", Kind: domain.KindRect, Left: 10, Top: 10, Width: 40, Height: 20,
		Style: domain.Style{Fill: "#ff0000", Stroke: "#000000", StrokeWidth: 1}})
	f.add(t, domain.Shape{ID: "b", Kind: domain.KindRect, Left: 100, Top: 50, Width: 30, Height: 30, Angle: 30, ScaleX: 1.5, ScaleY: 1.5})
	f.add(t, domain.Shape{ID: "c", Kind: domain.KindCircle, Left: 200, Top: 100, Radius: 10, Locked: true})
	f.scene.SetSelection([]string{"a", "b"})
	return f
}

func TestExecutor_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		cmdType domain.CommandType
		payload any
	}{
		{"AddShape", domain.CmdAddShape, domain.AddShapePayload{Shape: domain.Shape{Kind: domain.KindEllipse, RX: 5, RY: 3}}},
		{"AddShapes", domain.CmdAddShapes, domain.AddShapesPayload{Shapes: []domain.Shape{rect("z", 1, 2, 3, 4)}, Selection: []string{"z"}}},
		{"DeleteShapes", domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: []string{"a", "c"}}},
		{"DuplicateShapes", domain.CmdDuplicateShapes, domain.DuplicateShapesPayload{IDs: []string{"a", "b"}}},
		{"SetSelection", domain.CmdSetSelection, domain.SetSelectionPayload{IDs: []string{"c"}}},
		{"MoveShapesDelta", domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"a", "b", "c"}, DX: 15, DY: -5}},
		{"SetPositions", domain.CmdSetPositions, domain.SetPositionsPayload{Positions: []domain.PositionEntry{{ID: "a", Left: 0, Top: 0}}}},
		{"ResetRotation", domain.CmdResetRotation, domain.ResetRotationPayload{IDs: []string{"b"}}},
		{"SetAnglesPositions", domain.CmdSetAnglesPositions, domain.SetAnglesPositionsPayload{Entries: []domain.AnglePositionEntry{{ID: "a", Angle: 45, Left: 5, Top: 5}}}},
		{"LockShapes", domain.CmdLockShapes, domain.LockShapesPayload{}},
		{"UnlockShapes", domain.CmdUnlockShapes, domain.UnlockShapesPayload{IDs: []string{"c"}}},
		{"AlignSelected", domain.CmdAlignSelected, domain.AlignSelectedPayload{Mode: domain.AlignLeft}},
		{"SetTransforms", domain.CmdSetTransforms, domain.SetTransformsPayload{Transforms: []domain.TransformEntry{{ID: "b", Left: ptr(1.0), Top: ptr(2.0), ScaleX: ptr(3.0), ScaleY: ptr(4.0), Angle: ptr(5.0)}}}},
		{"SetStyle", domain.CmdSetStyle, domain.SetStylePayload{Fill: ptr("#00ff00"), StrokeWidth: ptr(4.0)}},
		{"SetStyles", domain.CmdSetStyles, domain.SetStylesPayload{Styles: []domain.StyleEntry{{ID: "c", Style: domain.Style{Stroke: "#123456"}}}}},
	}

	covered := map[domain.CommandType]bool{}
	for _, tt := range tests {
		covered[tt.cmdType] = true
		t.Run(tt.name, func(t *testing.T) {
			f := seeded(t)
			before := f.scene.Snapshot("doc")

			// 1. Forward
			inv := f.run(t, tt.cmdType, tt.payload)
			require.NotNil(t, inv, "expected an inverse")
			after := f.scene.Snapshot("doc")
			changed := !reflect.DeepEqual(before.Shapes, after.Shapes) || !reflect.DeepEqual(before.Selection, after.Selection)
			assert.True(t, changed, "forward must change something")

			// 2. Inverse restores every touched field
			redo, err := f.exec.Execute(*inv)
			require.NoError(t, err)
			require.NotNil(t, redo)
			assertSameScene(t, before, f.scene.Snapshot("doc"))
		})
	}

	for _, ct := range domain.CommandTypes() {
		assert.True(t, covered[ct], "no round-trip case for %s", ct)
	}
}

func TestExecutor_Envelope(t *testing.T) {
	f := seeded(t)

	_, err := f.exec.Execute(domain.Command{})
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)

	_, err = f.exec.Execute(domain.Command{Type: "EXPLODE"})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	_, err = f.exec.Execute(domain.Command{Type: domain.CmdMoveShapesDelta, Payload: domain.Payload{"dx": "far"}})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	assert.ElementsMatch(t, domain.CommandTypes(), f.exec.Types())
}

func TestExecutor_NoOps(t *testing.T) {
	tests := []struct {
		name    string
		cmdType domain.CommandType
		payload any
	}{
		{"Delete empty ids", domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: []string{}}},
		{"Delete unknown ids", domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: []string{"ghost"}}},
		{"Move only locked", domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"c"}, DX: 5}},
		{"Reset rotation on circle", domain.CmdResetRotation, domain.ResetRotationPayload{IDs: []string{"c"}}},
		{"Reset rotation on unrotated", domain.CmdResetRotation, domain.ResetRotationPayload{IDs: []string{"a"}}},
		{"Lock already locked", domain.CmdLockShapes, domain.LockShapesPayload{IDs: []string{"c"}}},
		{"Unlock unlocked", domain.CmdUnlockShapes, domain.UnlockShapesPayload{IDs: []string{"a"}}},
		{"Align single shape", domain.CmdAlignSelected, domain.AlignSelectedPayload{Mode: domain.AlignLeft, IDs: []string{"a"}}},
		{"Empty style patch", domain.CmdSetStyle, domain.SetStylePayload{}},
		{"Positions for unknown", domain.CmdSetPositions, domain.SetPositionsPayload{Positions: []domain.PositionEntry{{ID: "ghost"}}}},
		{"Duplicate nothing", domain.CmdDuplicateShapes, domain.DuplicateShapesPayload{IDs: []string{}}},
		{"Move by zero", domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"a"}}},
		{"Transform without fields", domain.CmdSetTransforms, domain.SetTransformsPayload{Transforms: []domain.TransformEntry{{ID: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seeded(t)
			before := f.scene.Snapshot("doc")

			inv := f.run(t, tt.cmdType, tt.payload)
			assert.Nil(t, inv)
			assertSameScene(t, before, f.scene.Snapshot("doc"))
		})
	}
}

func TestExecutor_AddShapeFailure(t *testing.T) {
	f := seeded(t)
	inv, err := f.exec.Execute(domain.NewCommand(domain.CmdAddShape, domain.AddShapePayload{Shape: domain.Shape{Kind: "hexagon"}}))
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Len(t, f.scene.All(), 3)
}

func TestExecutor_AddShapeSelects(t *testing.T) {
	f := seeded(t)
	inv := f.run(t, domain.CmdAddShape, domain.AddShapePayload{Shape: domain.Shape{Kind: domain.KindText, Width: 80, Height: 12}})
	require.NotNil(t, inv)

	assert.Equal(t, []string{"gen-1"}, f.scene.Selected())
	assert.Equal(t, domain.CmdDeleteShapes, inv.Type)

	var p domain.DeleteShapesPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, []string{"gen-1"}, p.IDs)
	assert.Equal(t, []string{"a", "b"}, p.Selection)
}

func TestExecutor_DeleteUpdatesSelection(t *testing.T) {
	f := seeded(t)
	inv := f.run(t, domain.CmdDeleteShapes, domain.DeleteShapesPayload{IDs: []string{"a"}})
	require.NotNil(t, inv)
	assert.Equal(t, []string{"b"}, f.scene.Selected())

	var p domain.AddShapesPayload
	require.NoError(t, inv.Decode(&p))
	require.Len(t, p.Shapes, 1)
	assert.Equal(t, "#ff0000", p.Shapes[0].Style.Fill)
}

func TestExecutor_LockExclusion(t *testing.T) {
	f := seeded(t)
	c, _ := f.scene.Find("c")
	cBefore := *c

	inv := f.run(t, domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"a", "b", "c"}, DX: 10, DY: 10})
	require.NotNil(t, inv)

	a, _ := f.scene.Find("a")
	assert.Equal(t, 20.0, a.Left)
	assert.Equal(t, 20.0, a.Top)
	assert.Equal(t, cBefore, *c, "locked shape must not move")

	var p domain.SetPositionsPayload
	require.NoError(t, inv.Decode(&p))
	require.Len(t, p.Positions, 2)
	assert.Equal(t, domain.PositionEntry{ID: "a", Left: 10, Top: 10}, p.Positions[0])
	assert.Equal(t, "b", p.Positions[1].ID)
}

func TestExecutor_MoveClamp(t *testing.T) {
	f := seeded(t)
	a, _ := f.scene.Find("a")

	f.run(t, domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"a"}, DX: -100, DY: 0})
	assert.Equal(t, 0.0, a.Left)
	assert.Equal(t, 10.0, a.Top)

	f.run(t, domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"a"}, DX: -100, Clamp: ptr(false)})
	assert.Equal(t, -100.0, a.Left)
}

func TestExecutor_MoveAgainstEdge(t *testing.T) {
	f := newFixture(t, memory.WithBackground(400, 300))
	edge := f.add(t, rect("edge", 0, 0, 40, 20))
	inner := f.add(t, rect("inner", 100, 100, 40, 20))

	// 1. Every target clamps to zero: no step
	assert.Nil(t, f.run(t, domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"edge"}, DX: -10, DY: -10}))
	assert.Equal(t, 0.0, edge.Left)

	// 2. Only shapes that moved are recorded
	inv := f.run(t, domain.CmdMoveShapesDelta, domain.MoveShapesDeltaPayload{IDs: []string{"edge", "inner"}, DX: -10})
	require.NotNil(t, inv)
	assert.Equal(t, 90.0, inner.Left)

	var p domain.SetPositionsPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, []domain.PositionEntry{{ID: "inner", Left: 100, Top: 100}}, p.Positions)
}

func TestExecutor_PartialTransform(t *testing.T) {
	f := seeded(t)
	b, _ := f.scene.Find("b")

	// Loose payload as decoded from a JSON request
	cmd := domain.Command{Type: domain.CmdSetTransforms, Payload: domain.Payload{
		"transforms": []any{map[string]any{"id": "b", "angle": 10.0}},
	}}
	inv, err := f.exec.Execute(cmd)
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, 10.0, b.Angle)
	assert.Equal(t, 100.0, b.Left)
	assert.Equal(t, 50.0, b.Top)
	assert.Equal(t, 1.5, b.ScaleX)
	assert.Equal(t, 1.5, b.ScaleY)

	_, err = f.exec.Execute(*inv)
	require.NoError(t, err)
	assert.Equal(t, 30.0, b.Angle)
}

func TestExecutor_UnlockDefaults(t *testing.T) {
	f := seeded(t)
	d := f.add(t, rect("d", 0, 0, 5, 5))
	d.Lock()

	// 1. Selection holds only unlocked shapes: nothing to do
	assert.Nil(t, f.run(t, domain.CmdUnlockShapes, domain.UnlockShapesPayload{}))

	// 2. Empty selection: every locked shape
	f.scene.SetSelection(nil)
	inv := f.run(t, domain.CmdUnlockShapes, domain.UnlockShapesPayload{})
	require.NotNil(t, inv)
	c, _ := f.scene.Find("c")
	assert.False(t, c.Locked)
	assert.True(t, c.Controls)
	assert.False(t, d.Locked)

	var p domain.LockShapesPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, []string{"c", "d"}, p.IDs)
}

func TestExecutor_LockCountsTransitions(t *testing.T) {
	f := seeded(t)
	inv := f.run(t, domain.CmdLockShapes, domain.LockShapesPayload{IDs: []string{"a", "c"}})
	require.NotNil(t, inv)

	var p domain.UnlockShapesPayload
	require.NoError(t, inv.Decode(&p))
	assert.Equal(t, []string{"a"}, p.IDs)

	// Undo must leave c locked
	_, err := f.exec.Execute(*inv)
	require.NoError(t, err)
	c, _ := f.scene.Find("c")
	assert.True(t, c.Locked)
}

type flakyStore struct {
	*memory.Scene
}

// Build rejects transformed clones so the executor has to fall back.
func (f flakyStore) Build(spec domain.Shape) (*domain.Shape, error) {
	if spec.ID == "" && (spec.Angle != 0 || spec.ScaleX != 1) {
		return nil, errors.New("native clone failed")
	}
	return f.Scene.Build(spec)
}

func TestExecutor_DuplicateFallback(t *testing.T) {
	scene := memory.NewScene(memory.WithIDGenerator(func() string { return "clone" }))
	src, err := scene.Build(domain.Shape{ID: "src", Kind: domain.KindRect, Left: 0, Top: 0, Width: 40, Height: 20, ScaleX: 2, Angle: 30,
		Style: domain.Style{Fill: "#abcdef"}})
	require.NoError(t, err)
	require.NoError(t, scene.Add(src))

	exec := runtime.NewExecutor(flakyStore{scene}, scene)
	inv, err := exec.Execute(domain.NewCommand(domain.CmdDuplicateShapes, domain.DuplicateShapesPayload{IDs: []string{"src"}}))
	require.NoError(t, err)
	require.NotNil(t, inv)

	clone, ok := scene.Find("clone")
	require.True(t, ok)
	assert.Equal(t, 0.0, clone.Angle)
	assert.Equal(t, 1.0, clone.ScaleX)
	assert.InDelta(t, 80, clone.Width, tolerance)
	assert.Equal(t, "#abcdef", clone.Style.Fill)
	assert.Equal(t, []string{"clone"}, scene.Selected())
}
