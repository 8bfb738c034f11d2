package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeWindsOutward(t *testing.T) {
	cube := Cube()
	require.Len(t, cube.Vertices, 24)
	require.Len(t, cube.Indices, 36)

	for i := 0; i < len(cube.Indices); i += 3 {
		a := mgl32.Vec3(cube.Vertices[cube.Indices[i]].Position)
		b := mgl32.Vec3(cube.Vertices[cube.Indices[i+1]].Position)
		c := mgl32.Vec3(cube.Vertices[cube.Indices[i+2]].Position)
		n := mgl32.Vec3(cube.Vertices[cube.Indices[i]].Normal)

		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(n), float32(0), "triangle %d winds inward", i/3)
	}
	for _, v := range cube.Vertices {
		for _, c := range v.Position {
			assert.InDelta(t, 0.5, abs(c), 1e-6)
		}
	}
}

func TestTiledQuadScalesUVs(t *testing.T) {
	q := TiledQuad(4, 4)
	assert.Equal(t, [2]float32{4, 4}, q.Vertices[3].UV)
	assert.Equal(t, Quad().Indices, q.Indices)
	assert.Equal(t, [2]float32{1, 1}, Quad().Vertices[3].UV)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
