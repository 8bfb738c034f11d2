package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLidStaysInRange(t *testing.T) {
	res, _ := newTestResources(t)
	laptop, err := NewLaptop(res, DefaultLaptopConfig())
	require.NoError(t, err)
	assert.Equal(t, float32(90), laptop.LidAngle())

	laptop.RotateLid(1e6)
	assert.Equal(t, float32(120), laptop.LidAngle())
	laptop.RotateLid(-1e6)
	assert.Equal(t, float32(0), laptop.LidAngle())

	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 1000; i++ {
		laptop.RotateLid(rng.Float32()*400 - 200)
		a := laptop.LidAngle()
		if a < 0 || a > 120 {
			t.Fatalf("lid angle %v out of range after %d steps", a, i)
		}
	}
}

func TestLidHandlesNonFiniteDeltas(t *testing.T) {
	res, _ := newTestResources(t)
	laptop, err := NewLaptop(res, DefaultLaptopConfig())
	require.NoError(t, err)

	nan := float32(math.NaN())
	laptop.RotateLid(nan)
	assert.Equal(t, float32(90), laptop.LidAngle())
	laptop.RotateLid(10)
	assert.Equal(t, float32(100), laptop.LidAngle())

	laptop.RotateLid(float32(math.Inf(1)))
	assert.Equal(t, float32(120), laptop.LidAngle())
	laptop.RotateLid(float32(math.Inf(-1)))
	assert.Equal(t, float32(0), laptop.LidAngle())

	cfg := DefaultLaptopConfig()
	cfg.LidAngle = nan
	laptop, err = NewLaptop(res, cfg)
	require.NoError(t, err)
	assert.Equal(t, float32(0), laptop.LidAngle())
}

func TestLidClampedAtConstruction(t *testing.T) {
	res, _ := newTestResources(t)
	cfg := DefaultLaptopConfig()
	cfg.LidAngle = 500
	laptop, err := NewLaptop(res, cfg)
	require.NoError(t, err)
	assert.Equal(t, float32(120), laptop.LidAngle())

	cfg.MinLidAngle = 130
	_, err = NewLaptop(res, cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestLidMatrix(t *testing.T) {
	cfg := DefaultLaptopConfig()

	// Closed: the lid lies flat on top of the base.
	closed := translationOf(cfg.LidMatrix(0))
	assertVec3Near(t, mgl32.Vec3{0, 1.375, -3.25}, closed, 1e-5, "closed lid at %v", closed)

	// Upright: the lid stands on the back edge.
	open := translationOf(cfg.LidMatrix(90))
	assertVec3Near(t, mgl32.Vec3{0, 1.65, -3.575}, open, 1e-5, "open lid at %v", open)

	base := translationOf(cfg.BaseMatrix())
	assertVec3Near(t, mgl32.Vec3{0, 1.325, -3.25}, base, 1e-5)
}

func TestLaptopRendersCurrentLid(t *testing.T) {
	res, dev := newTestResources(t)
	laptop, err := NewLaptop(res, DefaultLaptopConfig())
	require.NoError(t, err)

	laptop.RotateLid(-45)
	frame := renderOnce(t, dev, laptop)
	assert.Equal(t, []string{"laptop_base", "laptop_lid"}, frame.DrawLabels())
	lid, _ := frame.Find("laptop_lid")
	assert.Equal(t, DefaultLaptopConfig().LidMatrix(45), lid.Uniforms.Model)

	require.NoError(t, laptop.Dispose())
	assert.ErrorIs(t, laptop.Dispose(), core.ErrPostDispose)
}
