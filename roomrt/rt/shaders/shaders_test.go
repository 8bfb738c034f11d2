package shaders

import (
	"testing"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTextureCount(t *testing.T) {
	for n := 0; n <= MaxTextures; n++ {
		v, err := ForTextureCount(n)
		require.NoError(t, err)
		assert.Equal(t, n, v.TextureCount())
		assert.NotEmpty(t, v.Source())
	}

	_, err := ForTextureCount(3)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
	_, err = ForTextureCount(-1)
	assert.ErrorIs(t, err, core.ErrInvalidConfiguration)
}

func TestLightMarkerSamplesNothing(t *testing.T) {
	assert.Equal(t, 0, LightMarker.TextureCount())
	assert.Contains(t, LightMarker.Source(), "fs_main")
}
