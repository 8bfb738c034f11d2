package scene

import (
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

type TableConfig struct {
	TopWidth     float32 `yaml:"top_width"`
	TopDepth     float32 `yaml:"top_depth"`
	TopThickness float32 `yaml:"top_thickness"`
	LegThickness float32 `yaml:"leg_thickness"`
	LegHeight    float32 `yaml:"leg_height"`
	Texture      string  `yaml:"texture"`
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		TopWidth:     4,
		TopDepth:     1.5,
		TopThickness: 0.1,
		LegThickness: 0.2,
		LegHeight:    1.2,
		Texture:      "wood",
	}
}

// Height is where things placed on the table stand.
func (c TableConfig) Height() float32 {
	return c.LegHeight + c.TopThickness
}

// CentreZ pushes the table against the back wall.
func (c TableConfig) CentreZ(roomSize float32) float32 {
	return -roomSize/2 + c.TopDepth/2
}

func (c TableConfig) TopMatrix(roomSize float32) mgl32.Mat4 {
	return core.Chain(
		core.Translate(0, c.LegHeight+c.TopThickness/2, c.CentreZ(roomSize)),
		core.Scale(c.TopWidth, c.TopThickness, c.TopDepth),
	)
}

// LegMatrices returns the four legs, back left first, mirrored about the
// centre of the top.
func (c TableConfig) LegMatrices(roomSize float32) [4]mgl32.Mat4 {
	legX := c.TopWidth/2 - c.LegThickness/2
	legZ := c.TopDepth/2 - c.LegThickness/2
	z := c.CentreZ(roomSize)
	scale := core.Scale(c.LegThickness, c.LegHeight, c.LegThickness)

	var out [4]mgl32.Mat4
	for i, off := range [4][2]float32{{-legX, -legZ}, {legX, -legZ}, {-legX, legZ}, {legX, legZ}} {
		out[i] = core.Chain(core.Translate(off[0], c.LegHeight/2, z+off[1]), scale)
	}
	return out
}

// Table is static; its matrices are fixed at construction.
type Table struct {
	parts parts
}

func NewTable(res *Resources, config TableConfig, roomSize float32) (*Table, error) {
	t := &Table{}
	mat := core.NewMaterial(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0.3, 0.3, 0.3}, 32)

	if err := t.parts.add(res.part("table_top", MeshCube, mat, config.TopMatrix(roomSize), config.Texture)); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	for i, m := range config.LegMatrices(roomSize) {
		if err := t.parts.add(res.part(fmt.Sprintf("table_leg_%d", i), MeshCube, mat, m, config.Texture)); err != nil {
			t.parts.abandon()
			return nil, fmt.Errorf("table: %w", err)
		}
	}
	return t, nil
}

func (t *Table) Name() string { return "table" }

func (t *Table) Render(pass gpu.Pass) error {
	return t.parts.render("table", pass)
}

func (t *Table) Dispose() error {
	return t.parts.dispose("table")
}
