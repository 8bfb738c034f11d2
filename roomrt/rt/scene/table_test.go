package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAgainstBackWall(t *testing.T) {
	cfg := DefaultTableConfig()
	top := translationOf(cfg.TopMatrix(8))
	assertVec3Near(t, mgl32.Vec3{0, 1.25, -3.25}, top, 1e-5, "top at %v", top)
	assert.InDelta(t, 1.3, cfg.Height(), 1e-6)

	legs := cfg.LegMatrices(8)
	want := []mgl32.Vec3{
		{-1.9, 0.6, -3.9},
		{1.9, 0.6, -3.9},
		{-1.9, 0.6, -2.6},
		{1.9, 0.6, -2.6},
	}
	for i, m := range legs {
		got := translationOf(m)
		assertVec3Near(t, want[i], got, 1e-5, "leg %d at %v", i, got)
	}
}

func TestTableIsStatic(t *testing.T) {
	res, dev := newTestResources(t)
	table, err := NewTable(res, DefaultTableConfig(), 8)
	require.NoError(t, err)

	first := renderOnce(t, dev, table)
	second := renderOnce(t, dev, table)
	require.Len(t, first.Draws, 5)
	for i := range first.Draws {
		assert.Equal(t, first.Draws[i].Uniforms.Model, second.Draws[i].Uniforms.Model)
	}
	assert.Equal(t, "table_top", first.Draws[0].Label)
}
