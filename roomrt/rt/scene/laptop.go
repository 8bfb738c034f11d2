package scene

import (
	"fmt"
	"math"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type LaptopConfig struct {
	Base            mgl32.Vec3 `yaml:"base"`
	LidThickness    float32    `yaml:"lid_thickness"`
	TableTop        float32    `yaml:"-"`
	TableZ          float32    `yaml:"-"`
	LidAngle        float32    `yaml:"lid_angle"`
	MinLidAngle     float32    `yaml:"min_lid_angle"`
	MaxLidAngle     float32    `yaml:"max_lid_angle"`
	KeyboardTexture string     `yaml:"keyboard_texture"`
	ScreenTexture   string     `yaml:"screen_texture"`
}

func DefaultLaptopConfig() LaptopConfig {
	return LaptopConfig{
		Base:            mgl32.Vec3{1.0, 0.05, 0.6},
		LidThickness:    0.05,
		TableTop:        1.3,
		TableZ:          -3.25,
		LidAngle:        90,
		MinLidAngle:     0,
		MaxLidAngle:     120,
		KeyboardTexture: "keyboard",
		ScreenTexture:   "screen",
	}
}

func (c LaptopConfig) BaseMatrix() mgl32.Mat4 {
	return core.Chain(
		core.Translate(0, c.TableTop+c.Base.Y()/2, c.TableZ),
		core.Scale(c.Base.X(), c.Base.Y(), c.Base.Z()),
	)
}

// LidMatrix hinges the lid on the back edge of the base. The rotation is
// negated so a larger angle opens the lid upwards.
func (c LaptopConfig) LidMatrix(angle float32) mgl32.Mat4 {
	return core.Chain(
		core.Translate(0, c.TableTop+c.Base.Y(), c.TableZ-c.Base.Z()/2),
		core.RotateX(-angle),
		core.Translate(0, c.LidThickness/2, c.Base.Z()/2),
		core.Scale(c.Base.X(), c.LidThickness, c.Base.Z()),
	)
}

// clamp maps NaN to the closed position; mgl32.Clamp would pass it through.
func (c LaptopConfig) clamp(angle float32) float32 {
	if math.IsNaN(float64(angle)) {
		return c.MinLidAngle
	}
	return mgl32.Clamp(angle, c.MinLidAngle, c.MaxLidAngle)
}

type Laptop struct {
	config   LaptopConfig
	lidAngle float32
	base     *gpu.RenderObject
	lid      *gpu.RenderObject
	parts    parts
}

func NewLaptop(res *Resources, config LaptopConfig) (*Laptop, error) {
	if config.MinLidAngle > config.MaxLidAngle {
		return nil, fmt.Errorf("laptop: lid range [%v, %v]: %w",
			config.MinLidAngle, config.MaxLidAngle, core.ErrInvalidConfiguration)
	}
	l := &Laptop{config: config, lidAngle: config.clamp(config.LidAngle)}
	mat := core.DefaultMaterial()

	var err error
	if l.base, err = res.part("laptop_base", MeshCube, mat, config.BaseMatrix(), config.KeyboardTexture); err != nil {
		return nil, fmt.Errorf("laptop: %w", err)
	}
	l.parts.objects = append(l.parts.objects, l.base)
	if l.lid, err = res.part("laptop_lid", MeshCube, mat, config.LidMatrix(l.lidAngle), config.ScreenTexture); err != nil {
		l.parts.abandon()
		return nil, fmt.Errorf("laptop: %w", err)
	}
	l.parts.objects = append(l.parts.objects, l.lid)
	return l, nil
}

func (l *Laptop) Name() string { return "laptop" }

func (l *Laptop) LidAngle() float32 { return l.lidAngle }

// RotateLid opens (positive) or closes the lid, clamped to the configured
// range. A NaN delta leaves the lid where it is.
func (l *Laptop) RotateLid(d float32) {
	if math.IsNaN(float64(d)) {
		return
	}
	l.lidAngle = l.config.clamp(l.lidAngle + d)
}

func (l *Laptop) Render(pass gpu.Pass) error {
	if l.parts.disposed {
		return fmt.Errorf("laptop: render: %w", core.ErrPostDispose)
	}
	if err := l.base.SetModelMatrix(l.config.BaseMatrix()); err != nil {
		return err
	}
	if err := l.lid.SetModelMatrix(l.config.LidMatrix(l.lidAngle)); err != nil {
		return err
	}
	return l.parts.render("laptop", pass)
}

func (l *Laptop) Dispose() error {
	return l.parts.dispose("laptop")
}
