package scene

import (
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTextures = []string{
	"chequerboard", "container", "cloud", "noticeboard",
	"poster1", "poster2", "poster3", "poster3_specular",
	"wood", "keyboard", "screen",
}

func newTestResources(t *testing.T) (*Resources, *gputest.Recorder) {
	t.Helper()
	dev := gputest.New()
	res := &Resources{
		Device:   dev,
		Programs: gpu.NewProgramCache(dev),
		Meshes:   gpu.NewRegistry[gpu.Mesh]("mesh"),
		Textures: gpu.NewRegistry[gpu.Texture]("texture"),
		Camera:   core.NewCamera(mgl32.Vec3{4, 6, 15}, mgl32.Vec3{0, 5, 0}),
		Lights:   []*core.Light{core.NewPointLight(), core.NewPointLight(), core.NewSpotLight(15, 25)},
	}
	for name, data := range map[string]core.MeshData{
		MeshCube:      core.Cube(),
		MeshQuad:      core.Quad(),
		MeshTiledQuad: core.TiledQuad(4, 4),
	} {
		m, err := dev.CreateMesh(name, data)
		require.NoError(t, err)
		_, err = res.Meshes.Add(name, m)
		require.NoError(t, err)
	}
	for _, name := range testTextures {
		tex, err := dev.CreateTexture(name, gputest.Solid(2, 2), gpu.DefaultSamplerOptions())
		require.NoError(t, err)
		_, err = res.Textures.Add(name, tex)
		require.NoError(t, err)
	}
	return res, dev
}

func renderOnce(t *testing.T, dev *gputest.Recorder, c Composite) *gputest.Frame {
	t.Helper()
	pass, err := dev.BeginFrame([4]float64{0, 0, 0, 1})
	require.NoError(t, err)
	require.NoError(t, c.Render(pass))
	require.NoError(t, dev.EndFrame(pass))
	return dev.LastFrame()
}

func translationOf(m mgl32.Mat4) mgl32.Vec3 {
	return core.Translation(m)
}

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}

func assertMat4Near(t *testing.T, want, got mgl32.Mat4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDeltaSlice(t, want[:], got[:], delta, msgAndArgs...)
}
