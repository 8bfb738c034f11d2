package gpu_test

import (
	"errors"
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu/gputest"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dev    *gputest.Recorder
	mesh   gpu.Mesh
	cache  *gpu.ProgramCache
	camera *core.Camera
	lights []*core.Light
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dev := gputest.New()
	mesh, err := dev.CreateMesh("cube", core.Cube())
	require.NoError(t, err)
	return &fixture{
		dev:    dev,
		mesh:   mesh,
		cache:  gpu.NewProgramCache(dev),
		camera: core.NewCamera(mgl32.Vec3{4, 6, 15}, mgl32.Vec3{0, 5, 0}),
		lights: []*core.Light{core.NewPointLight(), core.NewPointLight(), core.NewSpotLight(15, 25)},
	}
}

func (f *fixture) desc(t *testing.T, name string, textures int) gpu.RenderObjectDesc {
	prog, err := f.cache.ForTextureCount(textures)
	require.NoError(t, err)
	var tex []gpu.Texture
	for i := 0; i < textures; i++ {
		tx, err := f.dev.CreateTexture("t", gputest.Solid(1, 1), gpu.DefaultSamplerOptions())
		require.NoError(t, err)
		tex = append(tex, tx)
	}
	return gpu.RenderObjectDesc{
		Name:     name,
		Mesh:     f.mesh,
		Program:  prog,
		Material: core.DefaultMaterial(),
		Model:    mgl32.Ident4(),
		Lights:   f.lights,
		Camera:   f.camera,
		Textures: tex,
	}
}

func TestNewRenderObjectValidation(t *testing.T) {
	f := newFixture(t)

	d := f.desc(t, "no mesh", 0)
	d.Mesh = nil
	_, err := gpu.NewRenderObject(f.dev, d)
	assert.ErrorIs(t, err, core.ErrResourceCreation)

	d = f.desc(t, "no program", 0)
	d.Program = nil
	_, err = gpu.NewRenderObject(f.dev, d)
	assert.ErrorIs(t, err, core.ErrResourceCreation)

	d = f.desc(t, "mismatch", 1)
	d.Program, _ = f.cache.Get(shaders.DiffuseSpecularMapped)
	_, err = gpu.NewRenderObject(f.dev, d)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	d = f.desc(t, "too many", 2)
	d.Textures = append(d.Textures, d.Textures[0])
	_, err = gpu.NewRenderObject(f.dev, d)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)

	f.dev.FailBinding = errors.New("out of memory")
	_, err = gpu.NewRenderObject(f.dev, f.desc(t, "binding", 0))
	assert.ErrorIs(t, err, core.ErrResourceCreation)
}

func TestRenderObjectRenderUploadsCurrentState(t *testing.T) {
	f := newFixture(t)
	obj, err := gpu.NewRenderObject(f.dev, f.desc(t, "poster", 2))
	require.NoError(t, err)

	model := core.Translate(1, 2, 3)
	require.NoError(t, obj.SetModelMatrix(model))
	assert.Equal(t, model, obj.Model())
	assert.Equal(t, 0, f.dev.Bindings[0].Writes, "SetModelMatrix must not upload")

	f.lights[1].Enabled = false
	f.lights[0].Position = mgl32.Vec3{0, 3.4, 5}

	pass, err := f.dev.BeginFrame([4]float64{})
	require.NoError(t, err)
	require.NoError(t, obj.Render(pass))
	require.NoError(t, f.dev.EndFrame(pass))

	draw, ok := f.dev.LastFrame().Find("poster")
	require.True(t, ok)
	assert.Equal(t, shaders.DiffuseSpecularMapped, draw.Variant)
	assert.Equal(t, "cube", draw.Mesh)
	assert.Equal(t, model, draw.Uniforms.Model)
	assert.Equal(t, [4]float32{0, 3.4, 5, 1}, draw.Uniforms.Lights[0].Position)
	assert.Equal(t, float32(0), draw.Uniforms.Lights[1].Position[3])
	assert.Equal(t, float32(1), draw.Uniforms.Lights[2].Direction[3])
	assert.Equal(t, f.camera.View(), draw.Uniforms.View)
	assert.Equal(t, float32(32), draw.Uniforms.MaterialSpecular[3])
}

func TestRenderObjectAfterDispose(t *testing.T) {
	f := newFixture(t)
	obj, err := gpu.NewRenderObject(f.dev, f.desc(t, "floor", 1))
	require.NoError(t, err)

	require.NoError(t, obj.Dispose())
	assert.Equal(t, 1, f.dev.Bindings[0].Released)
	assert.Equal(t, 0, f.dev.Textures[0].Released, "textures belong to the registry")

	pass, err := f.dev.BeginFrame([4]float64{})
	require.NoError(t, err)
	assert.ErrorIs(t, obj.Render(pass), core.ErrPostDispose)
	assert.ErrorIs(t, obj.SetModelMatrix(mgl32.Ident4()), core.ErrPostDispose)
	assert.ErrorIs(t, obj.Dispose(), core.ErrPostDispose)
	assert.Empty(t, f.dev.LastFrame().Draws)
}
