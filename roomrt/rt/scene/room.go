package scene

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type WindowConfig struct {
	// Cutout false builds a solid left wall and ignores the rest.
	Cutout         bool    `yaml:"cutout"`
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	FrameThickness float32 `yaml:"frame_thickness"`
	// The sky quad sits SkyDistance outside the wall and overlaps the
	// cutout by SkyMargin in total.
	SkyDistance float32 `yaml:"sky_distance"`
	SkyMargin   float32 `yaml:"sky_margin"`
	SkyTexture  string  `yaml:"sky_texture"`
}

type NoticeboardConfig struct {
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Texture string  `yaml:"texture"`
}

type PosterConfig struct {
	OffsetX  float32 `yaml:"offset_x"`
	Width    float32 `yaml:"width"`
	Height   float32 `yaml:"height"`
	Diffuse  string  `yaml:"diffuse"`
	Specular string  `yaml:"specular"`
}

func (p PosterConfig) textures() []string {
	if p.Specular == "" {
		return []string{p.Diffuse}
	}
	return []string{p.Diffuse, p.Specular}
}

type RoomConfig struct {
	Size float32 `yaml:"size"`
	// BoardElevation is the height of the noticeboard and posters as a
	// fraction of Size.
	BoardElevation float32            `yaml:"board_elevation"`
	WallTiling     float32            `yaml:"wall_tiling"`
	FloorTexture   string             `yaml:"floor_texture"`
	WallTexture    string             `yaml:"wall_texture"`
	Window         WindowConfig       `yaml:"window"`
	Noticeboard    *NoticeboardConfig `yaml:"noticeboard"`
	Posters        []PosterConfig     `yaml:"posters"`
}

func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		Size:           8,
		BoardElevation: 0.6,
		WallTiling:     4,
		FloorTexture:   "chequerboard",
		WallTexture:    "container",
		Window: WindowConfig{
			Cutout:         true,
			Width:          6,
			Height:         6,
			FrameThickness: 0.2,
			SkyDistance:    0.5,
			SkyMargin:      0.5,
			SkyTexture:     "cloud",
		},
		Noticeboard: &NoticeboardConfig{Width: 6, Height: 3, Texture: "noticeboard"},
		Posters: []PosterConfig{
			{OffsetX: -2, Width: 1, Height: 1.5, Diffuse: "poster1"},
			{OffsetX: 0, Width: 1, Height: 1.5, Diffuse: "poster2"},
			{OffsetX: 2, Width: 1, Height: 1.5, Diffuse: "poster3", Specular: "poster3_specular"},
		},
	}
}

func (c RoomConfig) validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("room size %v: %w", c.Size, core.ErrInvalidConfiguration)
	}
	w := c.Window
	if w.Cutout && (w.Width <= 0 || w.Height <= 0 || w.Width >= c.Size || w.Height >= c.Size) {
		return fmt.Errorf("window %vx%v does not fit a wall of %v: %w", w.Width, w.Height, c.Size, core.ErrInvalidConfiguration)
	}
	for i, p := range c.Posters {
		if p.Diffuse == "" {
			return fmt.Errorf("poster %d has no diffuse texture: %w", i, core.ErrInvalidConfiguration)
		}
	}
	return nil
}

// RoomPart is one planned quad of the room: everything needed to build its
// render object.
type RoomPart struct {
	Name     string
	Mesh     string
	Material core.Material
	Model    mgl32.Mat4
	Textures []string
}

// leftWallPlane maps the unit XZ quad onto the plane x = x0 facing +X.
func leftWallPlane(x0, y, z, w, h float32) mgl32.Mat4 {
	return core.Chain(core.Translate(x0, y, z), core.RotateZ(-90), core.RotateY(90), core.Scale(w, 1, h))
}

// backWallPlane maps the unit XZ quad onto the plane z = z0 facing +Z.
func backWallPlane(x, y, z0, w, h float32) mgl32.Mat4 {
	return core.Chain(core.Translate(x, y, z0), core.RotateX(90), core.Scale(w, 1, h))
}

// Plan lays out every quad of the room in render order. It is a pure
// function of the configuration.
func (c RoomConfig) Plan() []RoomPart {
	s := c.Size
	grey := mgl32.Vec3{0.5, 0.5, 0.5}
	spec := mgl32.Vec3{0.3, 0.3, 0.3}
	wall := core.NewMaterial(grey, spec, 4)
	white := core.NewMaterial(mgl32.Vec3{1, 1, 1}, spec, 4)
	black := core.NewMaterial(mgl32.Vec3{}, spec, 4)

	plan := []RoomPart{
		{Name: "floor", Mesh: MeshQuad, Material: wall, Model: core.Scale(s, 1, s), Textures: []string{c.FloorTexture}},
		{Name: "back_wall", Mesh: MeshQuad, Material: wall, Model: backWallPlane(0, s/2, -s/2, s, s)},
		{
			Name:     "right_wall",
			Mesh:     MeshTiledQuad,
			Material: wall,
			Model:    core.Chain(core.Translate(s/2, s/2, 0), core.RotateZ(90), core.RotateY(90), core.Scale(s, 1, s)),
			Textures: []string{c.WallTexture},
		},
	}

	w := c.Window
	if !w.Cutout {
		plan = append(plan, RoomPart{Name: "left_wall", Mesh: MeshQuad, Material: wall, Model: leftWallPlane(-s/2, s/2, 0, s, s)})
	} else {
		sideW := (s - w.Width) / 2
		border := (s - w.Height) / 2
		centreY := border + w.Height/2
		top := border + w.Height
		f := w.FrameThickness
		x := -s / 2

		plan = append(plan,
			RoomPart{Name: "left_wall_top", Mesh: MeshQuad, Material: wall, Model: leftWallPlane(x, s-border/2, 0, s, border)},
			RoomPart{Name: "left_wall_bottom", Mesh: MeshQuad, Material: wall, Model: leftWallPlane(x, border/2, 0, s, border)},
			RoomPart{Name: "left_wall_near", Mesh: MeshQuad, Material: wall, Model: leftWallPlane(x, centreY, -w.Width/2-sideW/2, sideW, w.Height)},
			RoomPart{Name: "left_wall_far", Mesh: MeshQuad, Material: wall, Model: leftWallPlane(x, centreY, w.Width/2+sideW/2, sideW, w.Height)},
		)
		if f > 0 {
			fx := x + 0.01
			plan = append(plan,
				RoomPart{Name: "frame_top", Mesh: MeshQuad, Material: black, Model: leftWallPlane(fx, top+f/2, 0, w.Width+2*f, f)},
				RoomPart{Name: "frame_bottom", Mesh: MeshQuad, Material: black, Model: leftWallPlane(fx, border-f/2, 0, w.Width+2*f, f)},
				RoomPart{Name: "frame_near", Mesh: MeshQuad, Material: black, Model: leftWallPlane(fx, centreY, -w.Width/2-f/2, f, w.Height+2*f)},
				RoomPart{Name: "frame_far", Mesh: MeshQuad, Material: black, Model: leftWallPlane(fx, centreY, w.Width/2+f/2, f, w.Height+2*f)},
			)
		}
		sky := RoomPart{
			Name:     "sky",
			Mesh:     MeshQuad,
			Material: white,
			Model:    leftWallPlane(x-w.SkyDistance, centreY, 0, w.Width+w.SkyMargin, w.Height+w.SkyMargin),
		}
		if w.SkyTexture != "" {
			sky.Textures = []string{w.SkyTexture}
		}
		plan = append(plan, sky)
	}

	boardY := s * c.BoardElevation
	if nb := c.Noticeboard; nb != nil {
		part := RoomPart{Name: "noticeboard", Mesh: MeshQuad, Material: white, Model: backWallPlane(0, boardY, -s/2+0.05, nb.Width, nb.Height)}
		if nb.Texture != "" {
			part.Textures = []string{nb.Texture}
		}
		plan = append(plan, part)
	}
	for i, p := range c.Posters {
		plan = append(plan, RoomPart{
			Name:     fmt.Sprintf("poster_%d", i),
			Mesh:     MeshQuad,
			Material: white,
			Model:    backWallPlane(p.OffsetX, boardY, -s/2+0.06, p.Width, p.Height),
			Textures: p.textures(),
		})
	}
	return plan
}

// Room is the static shell: floor, walls, window and wall decorations.
type Room struct {
	config RoomConfig
	parts  parts
}

func NewRoom(res *Resources, config RoomConfig) (*Room, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("room: %w", err)
	}
	r := &Room{config: config}
	for _, p := range config.Plan() {
		if err := r.parts.add(res.part(p.Name, p.Mesh, p.Material, p.Model, p.Textures...)); err != nil {
			r.parts.abandon()
			return nil, fmt.Errorf("room: %w", err)
		}
	}
	return r, nil
}

func (r *Room) Name() string { return "room" }

func (r *Room) Size() float32 { return r.config.Size }

func (r *Room) PartCount() int { return r.parts.Len() }

func (r *Room) Render(pass gpu.Pass) error {
	return r.parts.render("room", pass)
}

func (r *Room) Dispose() error {
	return r.parts.dispose("room")
}
