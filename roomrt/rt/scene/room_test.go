package scene

import (
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planByName(plan []RoomPart) map[string]RoomPart {
	out := make(map[string]RoomPart, len(plan))
	for _, p := range plan {
		out[p.Name] = p
	}
	return out
}

func TestDefaultRoomPlan(t *testing.T) {
	plan := DefaultRoomConfig().Plan()
	names := make([]string, len(plan))
	for i, p := range plan {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		"floor", "back_wall", "right_wall",
		"left_wall_top", "left_wall_bottom", "left_wall_near", "left_wall_far",
		"frame_top", "frame_bottom", "frame_near", "frame_far",
		"sky", "noticeboard", "poster_0", "poster_1", "poster_2",
	}, names)

	parts := planByName(plan)
	cases := map[string]mgl32.Vec3{
		"back_wall":        {0, 4, -4},
		"right_wall":       {4, 4, 0},
		"left_wall_top":    {-4, 7.5, 0},
		"left_wall_bottom": {-4, 0.5, 0},
		"left_wall_near":   {-4, 4, -3.5},
		"left_wall_far":    {-4, 4, 3.5},
		"frame_top":        {-3.99, 7.1, 0},
		"frame_bottom":     {-3.99, 0.9, 0},
		"frame_near":       {-3.99, 4, -3.1},
		"sky":              {-4.5, 4, 0},
		"noticeboard":      {0, 4.8, -3.95},
		"poster_2":         {2, 4.8, -3.94},
	}
	for name, want := range cases {
		got := translationOf(parts[name].Model)
		assertVec3Near(t, want, got, 1e-5, "%s at %v, want %v", name, got, want)
	}

	assert.Equal(t, []string{"poster3", "poster3_specular"}, parts["poster_2"].Textures)
	assert.Equal(t, MeshTiledQuad, parts["right_wall"].Mesh)
	assert.Empty(t, parts["back_wall"].Textures)
	assert.Equal(t, mgl32.Vec3{}, parts["frame_top"].Material.Diffuse)
}

func TestLeftWallFacesIntoRoom(t *testing.T) {
	m := DefaultRoomConfig().Plan()[3].Model
	n := core.NormalMatrix(m).Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	assertVec3Near(t, mgl32.Vec3{1, 0, 0}, n, 1e-5, "normal %v", n)
}

func TestRoomWithoutCutout(t *testing.T) {
	cfg := DefaultRoomConfig()
	cfg.Window.Cutout = false
	cfg.Noticeboard = nil
	cfg.Posters = nil

	parts := planByName(cfg.Plan())
	assert.Len(t, parts, 4)
	assert.Contains(t, parts, "left_wall")
	assert.NotContains(t, parts, "sky")
}

func TestRoomBuildsMatchingVariants(t *testing.T) {
	res, dev := newTestResources(t)
	room, err := NewRoom(res, DefaultRoomConfig())
	require.NoError(t, err)
	assert.Equal(t, 16, room.PartCount())

	frame := renderOnce(t, dev, room)
	byName := map[string]shaders.Variant{}
	for _, d := range frame.Draws {
		byName[d.Label] = d.Variant
	}
	assert.Equal(t, shaders.DiffuseMapped, byName["floor"])
	assert.Equal(t, shaders.Untextured, byName["back_wall"])
	assert.Equal(t, shaders.DiffuseMapped, byName["poster_0"])
	assert.Equal(t, shaders.DiffuseSpecularMapped, byName["poster_2"])

	// one program per variant in use
	assert.Len(t, dev.Programs, 3)
}

func TestRoomRejectsOversizedWindow(t *testing.T) {
	res, _ := newTestResources(t)
	cfg := DefaultRoomConfig()
	cfg.Window.Width = 9
	_, err := NewRoom(res, cfg)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}
