package scene

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/go-gl/mathgl/mgl32"
)

// LightMarker is a small unlit cube that follows a light.
type LightMarker struct {
	name  string
	light *core.Light
	size  float32
	obj   *gpu.RenderObject
	parts parts
}

func NewLightMarker(res *Resources, name string, light *core.Light, size float32) (*LightMarker, error) {
	if light == nil {
		return nil, fmt.Errorf("marker %q: no light: %w", name, core.ErrInvalidConfiguration)
	}
	m := &LightMarker{name: name, light: light, size: size}
	mat := core.NewMaterial(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{}, 1)
	obj, err := res.partVariant(name, MeshCube, shaders.LightMarker, mat, m.Matrix())
	if err != nil {
		return nil, err
	}
	m.obj = obj
	m.parts.objects = append(m.parts.objects, obj)
	return m, nil
}

func (m *LightMarker) Name() string { return m.name }

func (m *LightMarker) Matrix() mgl32.Mat4 {
	p := m.light.Position
	return core.Chain(core.Translate(p.X(), p.Y(), p.Z()), core.Scale(m.size, m.size, m.size))
}

// Render skips disabled lights.
func (m *LightMarker) Render(pass gpu.Pass) error {
	if m.parts.disposed {
		return fmt.Errorf("marker %q: render: %w", m.name, core.ErrPostDispose)
	}
	if !m.light.Enabled {
		return nil
	}
	if err := m.obj.SetModelMatrix(m.Matrix()); err != nil {
		return err
	}
	return m.parts.render(m.name, pass)
}

func (m *LightMarker) Dispose() error {
	return m.parts.dispose(m.name)
}
