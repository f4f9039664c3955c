package runtime_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/aretw0/easel/internal/runtime"
	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-2

type fixture struct {
	scene *memory.Scene
	exec  *runtime.Executor
}

func newFixture(t *testing.T, opts ...memory.SceneOption) *fixture {
	t.Helper()
	n := 0
	opts = append(opts, memory.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}))
	scene := memory.NewScene(opts...)
	return &fixture{
		scene: scene,
		exec:  runtime.NewExecutor(scene, scene, runtime.WithBackground(scene)),
	}
}

func (f *fixture) add(t *testing.T, spec domain.Shape) *domain.Shape {
	t.Helper()
	s, err := f.scene.Build(spec)
	require.NoError(t, err)
	require.NoError(t, f.scene.Add(s))
	return s
}

func (f *fixture) run(t *testing.T, t2 domain.CommandType, payload any) *domain.Command {
	t.Helper()
	inv, err := f.exec.Execute(domain.NewCommand(t2, payload))
	require.NoError(t, err)
	return inv
}

func rect(id string, left, top, w, h float64) domain.Shape {
	return domain.Shape{ID: id, Kind: domain.KindRect, Left: left, Top: top, Width: w, Height: h}
}

// assertSameScene compares shapes by id (z-order may change across
// delete/re-add) with float tolerance, and the selection exactly.
func assertSameScene(t *testing.T, want, got *domain.Scene) {
	t.Helper()
	require.Len(t, got.Shapes, len(want.Shapes))

	byID := func(s *domain.Scene) []domain.Shape {
		out := append([]domain.Shape(nil), s.Shapes...)
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out
	}
	w, g := byID(want), byID(got)
	for i := range w {
		assertSameShape(t, w[i], g[i])
	}
	assert.Equal(t, want.Selection, got.Selection, "selection")
}

func assertSameShape(t *testing.T, want, got domain.Shape) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Kind, got.Kind, want.ID)
	assert.InDelta(t, want.Left, got.Left, tolerance, "%s left", want.ID)
	assert.InDelta(t, want.Top, got.Top, tolerance, "%s top", want.ID)
	assert.InDelta(t, want.ScaleX, got.ScaleX, tolerance, "%s scaleX", want.ID)
	assert.InDelta(t, want.ScaleY, got.ScaleY, tolerance, "%s scaleY", want.ID)
	assert.InDelta(t, want.Angle, got.Angle, tolerance, "%s angle", want.ID)
	assert.Equal(t, want.Locked, got.Locked, "%s locked", want.ID)
	assert.Equal(t, want.Controls, got.Controls, "%s controls", want.ID)
	assert.Equal(t, want.Style, got.Style, "%s style", want.ID)
}
