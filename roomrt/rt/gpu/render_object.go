package gpu

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/go-gl/mathgl/mgl32"
)

type RenderObjectDesc struct {
	Name     string
	Mesh     Mesh
	Program  Program
	Material core.Material
	Model    mgl32.Mat4
	// Lights and Camera are read at every Render, never copied.
	Lights   []*core.Light
	Camera   *core.Camera
	Textures []Texture
}

// RenderObject is one drawable: borrowed mesh, program and textures plus the
// binding it owns.
type RenderObject struct {
	name     string
	mesh     Mesh
	program  Program
	material core.Material
	model    mgl32.Mat4
	lights   []*core.Light
	camera   *core.Camera
	binding  Binding
	disposed bool
}

func NewRenderObject(device Device, desc RenderObjectDesc) (*RenderObject, error) {
	if desc.Mesh == nil {
		return nil, fmt.Errorf("render object %q: no mesh: %w", desc.Name, core.ErrResourceCreation)
	}
	if desc.Program == nil {
		return nil, fmt.Errorf("render object %q: no program: %w", desc.Name, core.ErrResourceCreation)
	}
	if desc.Camera == nil {
		return nil, fmt.Errorf("render object %q: no camera: %w", desc.Name, core.ErrInvalidConfiguration)
	}
	if len(desc.Textures) > shaders.MaxTextures {
		return nil, fmt.Errorf("render object %q: %d textures, at most %d: %w",
			desc.Name, len(desc.Textures), shaders.MaxTextures, core.ErrInvalidConfiguration)
	}
	if want := desc.Program.Variant().TextureCount(); want != len(desc.Textures) {
		return nil, fmt.Errorf("render object %q: %s samples %d textures, got %d: %w",
			desc.Name, desc.Program.Variant(), want, len(desc.Textures), core.ErrInvalidConfiguration)
	}
	for i, t := range desc.Textures {
		if t == nil {
			return nil, fmt.Errorf("render object %q: texture %d is nil: %w", desc.Name, i, core.ErrResourceCreation)
		}
	}

	binding, err := device.CreateBinding(desc.Name, desc.Program, desc.Textures)
	if err != nil {
		return nil, fmt.Errorf("render object %q: %v: %w", desc.Name, err, core.ErrResourceCreation)
	}

	return &RenderObject{
		name:     desc.Name,
		mesh:     desc.Mesh,
		program:  desc.Program,
		material: desc.Material,
		model:    desc.Model,
		lights:   desc.Lights,
		camera:   desc.Camera,
		binding:  binding,
	}, nil
}

func (o *RenderObject) Name() string { return o.name }

func (o *RenderObject) Model() mgl32.Mat4 { return o.model }

// SetModelMatrix only records m; the upload happens in Render.
func (o *RenderObject) SetModelMatrix(m mgl32.Mat4) error {
	if o.disposed {
		return fmt.Errorf("render object %q: set model: %w", o.name, core.ErrPostDispose)
	}
	o.model = m
	return nil
}

func (o *RenderObject) Render(pass Pass) error {
	if o.disposed {
		return fmt.Errorf("render object %q: render: %w", o.name, core.ErrPostDispose)
	}
	u := NewUniforms(o.model, o.material, o.camera, o.lights)
	if err := o.binding.Write(&u); err != nil {
		return fmt.Errorf("render object %q: upload uniforms: %w", o.name, err)
	}
	if err := pass.Draw(o.program, o.binding, o.mesh); err != nil {
		return fmt.Errorf("render object %q: draw: %w", o.name, err)
	}
	return nil
}

// Dispose releases the binding only. Mesh, program and textures belong to
// their registries.
func (o *RenderObject) Dispose() error {
	if o.disposed {
		return fmt.Errorf("render object %q: dispose: %w", o.name, core.ErrPostDispose)
	}
	o.disposed = true
	o.binding.Release()
	o.binding = nil
	return nil
}
