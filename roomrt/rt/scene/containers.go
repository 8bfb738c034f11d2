package scene

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type ContainerConfig struct {
	Count    int    `yaml:"count"`
	Seed     uint64 `yaml:"seed"`
	PoolSize int    `yaml:"pool_size"`
	// Placements are drawn uniformly inside the box [Min, Max].
	Min mgl32.Vec3 `yaml:"min"`
	Max mgl32.Vec3 `yaml:"max"`
	// MaxSpinRate in degrees per second.
	MaxSpinRate float32 `yaml:"max_spin_rate"`
	Size        float32 `yaml:"size"`
	Texture     string  `yaml:"texture"`
}

func DefaultContainerConfig() ContainerConfig {
	return ContainerConfig{
		Count:       12,
		Seed:        1,
		PoolSize:    core.DefaultPoolSize,
		Min:         mgl32.Vec3{-3.5, 0.25, -1.5},
		Max:         mgl32.Vec3{3.5, 0.25, 3.5},
		MaxSpinRate: 90,
		Size:        0.5,
		Texture:     "container",
	}
}

type containerInstance struct {
	placement mgl32.Vec3
	spinRate  float32
}

// ContainerField is a set of boxes at fixed random spots, each spinning
// about Y at its own rate.
type ContainerField struct {
	config    ContainerConfig
	instances []containerInstance
	parts     parts
}

// NewContainerLayout draws placements and spin rates without touching the
// GPU.
func NewContainerLayout(config ContainerConfig) (*ContainerField, error) {
	if config.Count < 0 {
		return nil, fmt.Errorf("container count %d: %w", config.Count, core.ErrInvalidConfiguration)
	}
	pool := core.NewRandomPool(config.Seed, config.PoolSize)
	span := config.Max.Sub(config.Min)

	f := &ContainerField{config: config, instances: make([]containerInstance, config.Count)}
	for i := range f.instances {
		f.instances[i] = containerInstance{
			placement: mgl32.Vec3{
				config.Min.X() + span.X()*pool.At(i+core.OffsetPositionX),
				config.Min.Y() + span.Y()*pool.At(i+core.OffsetPositionY),
				config.Min.Z() + span.Z()*pool.At(i+core.OffsetPositionZ),
			},
			spinRate: config.MaxSpinRate * pool.At(i+core.OffsetSpinRate),
		}
	}
	return f, nil
}

func NewContainerField(res *Resources, config ContainerConfig) (*ContainerField, error) {
	f, err := NewContainerLayout(config)
	if err != nil {
		return nil, fmt.Errorf("containers: %w", err)
	}
	mat := core.DefaultMaterial()
	for i := range f.instances {
		name := fmt.Sprintf("container_%d", i)
		if err := f.parts.add(res.part(name, MeshCube, mat, f.InstanceMatrix(i, 0), config.Texture)); err != nil {
			f.parts.abandon()
			return nil, fmt.Errorf("containers: %w", err)
		}
	}
	return f, nil
}

func (f *ContainerField) Name() string { return "containers" }

func (f *ContainerField) Len() int { return len(f.instances) }

func (f *ContainerField) Placement(i int) mgl32.Vec3 { return f.instances[i].placement }

func (f *ContainerField) SpinRate(i int) float32 { return f.instances[i].spinRate }

// InstanceMatrix depends only on i and the absolute elapsed seconds.
func (f *ContainerField) InstanceMatrix(i int, elapsed float64) mgl32.Mat4 {
	in := f.instances[i]
	p := in.placement
	angle := float32(elapsed * float64(in.spinRate))
	return core.Chain(
		core.Translate(p.X(), p.Y(), p.Z()),
		core.RotateY(angle),
		core.Scale(f.config.Size, f.config.Size, f.config.Size),
	)
}

func (f *ContainerField) Update(elapsed float64) error {
	for i, obj := range f.parts.objects {
		if err := obj.SetModelMatrix(f.InstanceMatrix(i, elapsed)); err != nil {
			return fmt.Errorf("containers: %w", err)
		}
	}
	return nil
}

func (f *ContainerField) Render(pass gpu.Pass) error {
	return f.parts.render("containers", pass)
}

func (f *ContainerField) Dispose() error {
	return f.parts.dispose("containers")
}
