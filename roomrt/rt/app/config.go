package app

import (
	"fmt"
	"os"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/scene"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	Position mgl32.Vec3 `yaml:"position"`
	Target   mgl32.Vec3 `yaml:"target"`
	FovY     float32    `yaml:"fov_y"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// TextureConfig names one entry of the texture registry. Wrap and Filter
// take the sampler modes understood by the device.
type TextureConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Wrap   string `yaml:"wrap"`
	Filter string `yaml:"filter"`
}

func (t TextureConfig) SamplerOptions() gpu.SamplerOptions {
	opts := gpu.DefaultSamplerOptions()
	if t.Wrap != "" {
		opts.Wrap = t.Wrap
	}
	if t.Filter != "" {
		opts.Filter = t.Filter
	}
	return opts
}

type ControlsConfig struct {
	SlideStep float32 `yaml:"slide_step"`
	AngleStep float32 `yaml:"angle_step"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Debug  bool         `yaml:"debug"`
	Camera CameraConfig `yaml:"camera"`

	ClearColor [4]float64     `yaml:"clear_color"`
	Orbits     [2]OrbitConfig `yaml:"orbits"`
	MarkerSize float32        `yaml:"marker_size"`
	Controls   ControlsConfig `yaml:"controls"`

	AssetDir        string          `yaml:"asset_dir"`
	MaxTextureSize  int             `yaml:"max_texture_size"`
	FallbackTexture string          `yaml:"fallback_texture"`
	Textures        []TextureConfig `yaml:"textures"`

	Room       scene.RoomConfig      `yaml:"room"`
	Table      scene.TableConfig     `yaml:"table"`
	Laptop     scene.LaptopConfig    `yaml:"laptop"`
	Lamp       scene.LampConfig      `yaml:"lamp"`
	Containers scene.ContainerConfig `yaml:"containers"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "Study Room", Width: 1280, Height: 720},
		Camera: CameraConfig{
			Position: mgl32.Vec3{4, 6, 15},
			Target:   mgl32.Vec3{0, 5, 0},
			FovY:     core.DefaultFovY,
			Near:     0.1,
			Far:      100,
		},
		ClearColor: [4]float64{0, 0, 0, 1},
		Orbits:     DefaultOrbits(),
		MarkerSize: 0.3,
		Controls:   ControlsConfig{SlideStep: 0.05, AngleStep: 5},

		AssetDir:        "assets",
		MaxTextureSize:  2048,
		FallbackTexture: "procedural:checker:ff00ff:000000:8:64",
		Textures: []TextureConfig{
			{Name: "chequerboard", Source: "textures/chequerboard.jpg"},
			{Name: "container", Source: "textures/container2.jpg"},
			{Name: "cloud", Source: "textures/cloud.jpg"},
			{Name: "noticeboard", Source: "textures/noticeboard.jpg"},
			{Name: "poster1", Source: "textures/wattBook.jpg"},
			{Name: "poster2", Source: "textures/poster2.jpg"},
			{Name: "poster3", Source: "textures/poster3.jpg"},
			{Name: "poster3_specular", Source: "textures/poster3_specular.jpg"},
			{Name: "wood", Source: "textures/wood.jpg"},
			{Name: "keyboard", Source: "textures/keyboard.jpg"},
			{Name: "screen", Source: "textures/screen.jpg"},
		},

		Room:       scene.DefaultRoomConfig(),
		Table:      scene.DefaultTableConfig(),
		Laptop:     scene.DefaultLaptopConfig(),
		Lamp:       scene.DefaultLampConfig(),
		Containers: scene.DefaultContainerConfig(),
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig. Keys missing
// from the file keep their defaults; lists are replaced whole.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %v: %w", path, err, core.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("camera fov %v: %w", c.Camera.FovY, core.ErrInvalidConfiguration)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%v, %v]: %w", c.Camera.Near, c.Camera.Far, core.ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(c.Textures))
	for i, t := range c.Textures {
		if t.Name == "" || t.Source == "" {
			return fmt.Errorf("texture %d needs a name and a source: %w", i, core.ErrInvalidConfiguration)
		}
		if seen[t.Name] {
			return fmt.Errorf("texture %q listed twice: %w", t.Name, core.ErrInvalidConfiguration)
		}
		seen[t.Name] = true
	}
	return nil
}

// Furniture returns the lamp and laptop configs standing on the configured
// table, so resizing the table or the room keeps them on its top.
func (c Config) Furniture() (scene.LampConfig, scene.LaptopConfig) {
	top, z := c.Table.Height(), c.Table.CentreZ(c.Room.Size)
	lamp, laptop := c.Lamp, c.Laptop
	lamp.TableTop, lamp.BaseZ = top, z
	laptop.TableTop, laptop.TableZ = top, z
	return lamp, laptop
}

// Dump renders the configuration as YAML, e.g. to seed a config file.
func (c Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
