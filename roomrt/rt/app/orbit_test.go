package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitStart(t *testing.T) {
	orbits := DefaultOrbits()
	assert.Equal(t, mgl32.Vec3{0, 3.4, 5}, orbits[0].Position(0))
	assert.Equal(t, mgl32.Vec3{0, 7.4, 3}, orbits[1].Position(0))
}

func TestOrbitIsPeriodic(t *testing.T) {
	o := DefaultOrbits()[1]
	period := 360 / float64(o.DegreesPerSecond)
	for _, t0 := range []float64{0.3, 1, 7.25} {
		a := o.Position(t0)
		b := o.Position(t0 + period)
		assertVec3Near(t, b, a, 1e-4, "t=%v: %v vs %v", t0, a, b)
		assert.Equal(t, o.Height, a.Y())
	}
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
