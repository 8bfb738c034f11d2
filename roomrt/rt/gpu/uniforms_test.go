package gpu

import (
	"testing"
	"unsafe"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestUniformLayoutMatchesShader(t *testing.T) {
	assert.Equal(t, uintptr(96), unsafe.Sizeof(LightBlock{}))
	assert.Equal(t, uintptr(608), unsafe.Sizeof(Uniforms{}))
	assert.Equal(t, uintptr(320), unsafe.Offsetof(Uniforms{}.Lights))
}

func TestNewUniformsIgnoresExtraAndNilLights(t *testing.T) {
	cam := core.NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	extra := core.NewPointLight()
	extra.Position = mgl32.Vec3{9, 9, 9}
	lights := []*core.Light{nil, core.NewPointLight(), core.NewPointLight(), extra}

	u := NewUniforms(mgl32.Ident4(), core.DefaultMaterial(), cam, lights)

	assert.Equal(t, LightBlock{}, u.Lights[0])
	assert.Equal(t, float32(1), u.Lights[1].Position[3])
	for _, l := range u.Lights {
		assert.NotEqual(t, float32(9), l.Position[0])
	}
	assert.Equal(t, [4]float32{0, 0, 5, 1}, u.ViewPos)
}
