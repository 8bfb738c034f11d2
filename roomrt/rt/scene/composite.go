package scene

import (
	"errors"
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/go-gl/mathgl/mgl32"
)

// Shared mesh names in Resources.Meshes.
const (
	MeshCube      = "cube"
	MeshQuad      = "quad"
	MeshTiledQuad = "quad_tiled"
)

// Composite is a scene object made of render objects drawn in a fixed order.
type Composite interface {
	Name() string
	Render(pass gpu.Pass) error
	Dispose() error
}

// Resources is what every composite builder borrows. Nothing in it is owned
// by a composite.
type Resources struct {
	Device   gpu.Device
	Programs *gpu.ProgramCache
	Meshes   *gpu.Registry[gpu.Mesh]
	Textures *gpu.Registry[gpu.Texture]
	Camera   *core.Camera
	Lights   []*core.Light
}

// part builds a lit render object whose shader variant follows the number of
// texture names given.
func (r *Resources) part(name, mesh string, mat core.Material, model mgl32.Mat4, textures ...string) (*gpu.RenderObject, error) {
	variant, err := shaders.ForTextureCount(len(textures))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return r.partVariant(name, mesh, variant, mat, model, textures...)
}

func (r *Resources) partVariant(name, mesh string, variant shaders.Variant, mat core.Material, model mgl32.Mat4, textures ...string) (*gpu.RenderObject, error) {
	m, err := r.Meshes.Get(mesh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	prog, err := r.Programs.Get(variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tex, err := r.Textures.GetAll(textures...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return gpu.NewRenderObject(r.Device, gpu.RenderObjectDesc{
		Name:     name,
		Mesh:     m,
		Program:  prog,
		Material: mat,
		Model:    model,
		Lights:   r.Lights,
		Camera:   r.Camera,
		Textures: tex,
	})
}

// parts is an ordered list of render objects with shared render and
// dispose handling.
type parts struct {
	objects  []*gpu.RenderObject
	disposed bool
}

func (p *parts) add(obj *gpu.RenderObject, err error) error {
	if err != nil {
		return err
	}
	p.objects = append(p.objects, obj)
	return nil
}

func (p *parts) render(owner string, pass gpu.Pass) error {
	if p.disposed {
		return fmt.Errorf("%s: render: %w", owner, core.ErrPostDispose)
	}
	for _, o := range p.objects {
		if err := o.Render(pass); err != nil {
			return fmt.Errorf("%s: %w", owner, err)
		}
	}
	return nil
}

// dispose releases every part once, in construction order.
func (p *parts) dispose(owner string) error {
	if p.disposed {
		return fmt.Errorf("%s: dispose: %w", owner, core.ErrPostDispose)
	}
	p.disposed = true
	var errs []error
	for _, o := range p.objects {
		if err := o.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// abandon releases parts created by a builder that failed halfway.
func (p *parts) abandon() {
	_ = p.dispose("")
}

func (p *parts) Len() int {
	return len(p.objects)
}
