package backend

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutFromTags(t *testing.T) {
	layout := createVertexBufferLayout(core.Vertex{})

	assert.Equal(t, uint64(32), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 1, Offset: 12, Format: wgpu.VertexFormatFloat32x3}, layout.Attributes[1])
	assert.Equal(t, wgpu.VertexAttribute{ShaderLocation: 2, Offset: 24, Format: wgpu.VertexFormatFloat32x2}, layout.Attributes[2])
}

func TestVertexLayoutRejectsNonStruct(t *testing.T) {
	assert.Panics(t, func() { createVertexBufferLayout(3) })
}

func TestSamplerModes(t *testing.T) {
	assert.Equal(t, wgpu.AddressModeRepeat, wgpuWrapMode("wrap"))
	assert.Equal(t, wgpu.AddressModeClampToEdge, wgpuWrapMode("clamp"))
	assert.Equal(t, wgpu.FilterModeNearest, wgpuFilterMode("nearest"))
	assert.Panics(t, func() { wgpuWrapMode("tile") })
}
