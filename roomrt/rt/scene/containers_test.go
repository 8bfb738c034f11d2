package scene

import (
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceMatrixIsPure(t *testing.T) {
	f, err := NewContainerLayout(DefaultContainerConfig())
	require.NoError(t, err)

	for i := 0; i < f.Len(); i++ {
		for _, elapsed := range []float64{0, 0.016, 1.5, 3600} {
			a := f.InstanceMatrix(i, elapsed)
			f.InstanceMatrix(i, elapsed+7)
			b := f.InstanceMatrix(i, elapsed)
			assert.Equal(t, a, b)
		}
	}
}

func TestLayoutIsSeeded(t *testing.T) {
	cfg := DefaultContainerConfig()
	a, _ := NewContainerLayout(cfg)
	b, _ := NewContainerLayout(cfg)
	cfg.Seed = 99
	c, _ := NewContainerLayout(cfg)

	differs := false
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Placement(i), b.Placement(i))
		assert.Equal(t, a.SpinRate(i), b.SpinRate(i))
		differs = differs || a.Placement(i) != c.Placement(i)
	}
	assert.True(t, differs, "a different seed should move at least one container")
}

func TestPlacementsInsideBox(t *testing.T) {
	cfg := DefaultContainerConfig()
	cfg.Count = 200
	f, err := NewContainerLayout(cfg)
	require.NoError(t, err)

	for i := 0; i < f.Len(); i++ {
		p := f.Placement(i)
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, p[axis], cfg.Min[axis])
			assert.LessOrEqual(t, p[axis], cfg.Max[axis])
		}
		assert.GreaterOrEqual(t, f.SpinRate(i), float32(0))
		assert.LessOrEqual(t, f.SpinRate(i), cfg.MaxSpinRate)
	}
}

func TestInstanceRotatesWithElapsed(t *testing.T) {
	f, err := NewContainerLayout(DefaultContainerConfig())
	require.NoError(t, err)

	rate := f.SpinRate(0)
	p := f.Placement(0)
	want := core.Chain(core.Translate(p.X(), p.Y(), p.Z()), core.RotateY(2*rate), core.Scale(0.5, 0.5, 0.5))
	assertMat4Near(t, want, f.InstanceMatrix(0, 2), 1e-5)
	assert.Equal(t, p, translationOf(f.InstanceMatrix(0, 123)))
}

func TestContainerFieldUpdate(t *testing.T) {
	res, dev := newTestResources(t)
	f, err := NewContainerField(res, DefaultContainerConfig())
	require.NoError(t, err)

	require.NoError(t, f.Update(4))
	frame := renderOnce(t, dev, f)
	require.Len(t, frame.Draws, 12)
	for i, d := range frame.Draws {
		assert.Equal(t, f.InstanceMatrix(i, 4), d.Uniforms.Model)
	}

	require.NoError(t, f.Dispose())
	assert.ErrorIs(t, f.Update(5), core.ErrPostDispose)
}

func TestNegativeCount(t *testing.T) {
	cfg := DefaultContainerConfig()
	cfg.Count = -1
	_, err := NewContainerLayout(cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestEmptyField(t *testing.T) {
	res, dev := newTestResources(t)
	cfg := DefaultContainerConfig()
	cfg.Count = 0
	f, err := NewContainerField(res, cfg)
	require.NoError(t, err)
	assert.Empty(t, renderOnce(t, dev, f).Draws)
}
