package assets

import (
	"image/color"
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProceduralChecker(t *testing.T) {
	img, err := Procedural("checker:000000:ffffff:2:4")
	require.NoError(t, err)

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, black, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(2, 0))
	assert.Equal(t, white, img.RGBAAt(0, 2))
	assert.Equal(t, black, img.RGBAAt(3, 3))
}

func TestProceduralStripes(t *testing.T) {
	img, err := Procedural("stripes:ff0000:0000ff:4:8")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 7).R)
	assert.Equal(t, uint8(255), img.RGBAAt(2, 0).B)
}

func TestProceduralRejects(t *testing.T) {
	for _, spec := range []string{
		"plasma:000000",
		"solid",
		"solid:12345",
		"solid:gg0000",
		"checker:000000:ffffff",
		"checker:000000:ffffff:0",
		"checker:000000:ffffff:8:4",
	} {
		_, err := Procedural(spec)
		assert.ErrorIs(t, err, core.ErrInvalidConfiguration, spec)
	}
}
