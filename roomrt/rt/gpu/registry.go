package gpu

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

type entry[T Resource] struct {
	id       AssetId
	name     string
	resource T
}

// Registry owns named GPU resources and releases them together. Render
// objects only borrow what they Get from it.
type Registry[T Resource] struct {
	kind     string
	entries  []entry[T]
	byName   map[string]int
	released bool
}

func NewRegistry[T Resource](kind string) *Registry[T] {
	return &Registry[T]{
		kind:   kind,
		byName: make(map[string]int),
	}
}

// Add takes ownership of res. Re-adding a name replaces and releases the
// previous resource.
func (r *Registry[T]) Add(name string, res T) (AssetId, error) {
	if r.released {
		return "", fmt.Errorf("%s registry: add %q: %w", r.kind, name, core.ErrPostDispose)
	}
	id := makeAssetId()
	if i, ok := r.byName[name]; ok {
		r.entries[i].resource.Release()
		r.entries[i].resource = res
		r.entries[i].id = id
		return id, nil
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry[T]{id: id, name: name, resource: res})
	return id, nil
}

func (r *Registry[T]) Get(name string) (T, error) {
	var zero T
	if r.released {
		return zero, fmt.Errorf("%s registry: get %q: %w", r.kind, name, core.ErrPostDispose)
	}
	i, ok := r.byName[name]
	if !ok {
		return zero, fmt.Errorf("%s %q not registered: %w", r.kind, name, core.ErrResourceCreation)
	}
	return r.entries[i].resource, nil
}

// GetAll resolves names in order, failing on the first missing one.
func (r *Registry[T]) GetAll(names ...string) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, n := range names {
		res, err := r.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *Registry[T]) Id(name string) (AssetId, bool) {
	i, ok := r.byName[name]
	if !ok {
		return "", false
	}
	return r.entries[i].id, true
}

func (r *Registry[T]) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

func (r *Registry[T]) Len() int {
	return len(r.entries)
}

// ReleaseAll releases in reverse insertion order. Only the first call does
// anything.
func (r *Registry[T]) ReleaseAll() {
	if r.released {
		return
	}
	r.released = true
	for i := len(r.entries) - 1; i >= 0; i-- {
		r.entries[i].resource.Release()
	}
	r.entries = nil
	r.byName = map[string]int{}
}

// ProgramCache compiles each shader variant at most once.
type ProgramCache struct {
	device   Device
	programs *Registry[Program]
}

func NewProgramCache(device Device) *ProgramCache {
	return &ProgramCache{
		device:   device,
		programs: NewRegistry[Program]("program"),
	}
}

func (c *ProgramCache) Get(variant shaders.Variant) (Program, error) {
	name := variant.String()
	if c.programs.released {
		return nil, fmt.Errorf("program %s: %w", name, core.ErrPostDispose)
	}
	if _, ok := c.programs.byName[name]; ok {
		return c.programs.Get(name)
	}
	p, err := c.device.CreateProgram(variant)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	if _, err := c.programs.Add(name, p); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// ForTextureCount picks the Phong variant sampling n textures.
func (c *ProgramCache) ForTextureCount(n int) (Program, error) {
	v, err := shaders.ForTextureCount(n)
	if err != nil {
		return nil, err
	}
	return c.Get(v)
}

func (c *ProgramCache) Len() int {
	return c.programs.Len()
}

func (c *ProgramCache) ReleaseAll() {
	c.programs.ReleaseAll()
}
