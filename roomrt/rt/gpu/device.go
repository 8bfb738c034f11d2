package gpu

import (
	"image"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"
)

// Resource is any GPU handle with an explicit owner that releases it.
type Resource interface {
	Release()
}

type Mesh interface {
	Resource
	IndexCount() uint32
}

type Program interface {
	Resource
	Variant() shaders.Variant
}

type Texture interface {
	Resource
	Size() (width, height uint32)
}

// Binding is the per render object uniform buffer plus bind group tying
// the uniforms to the object's textures.
type Binding interface {
	Resource
	Write(u *Uniforms) error
}

// Pass records draw calls for the frame in progress.
type Pass interface {
	Draw(program Program, binding Binding, mesh Mesh) error
}

// SamplerOptions use the same string modes as the asset tags: "wrap",
// "mirror" or "clamp", and "linear" or "nearest".
type SamplerOptions struct {
	Wrap   string
	Filter string
}

func DefaultSamplerOptions() SamplerOptions {
	return SamplerOptions{Wrap: "wrap", Filter: "linear"}
}

// Device is everything the scene needs from the GPU. Calls must come from
// the thread owning the window.
type Device interface {
	CreateMesh(label string, data core.MeshData) (Mesh, error)
	CreateProgram(variant shaders.Variant) (Program, error)
	CreateTexture(label string, img *image.RGBA, opts SamplerOptions) (Texture, error)
	CreateBinding(label string, program Program, textures []Texture) (Binding, error)

	// BeginFrame clears colour and depth and opens the frame's pass.
	BeginFrame(clear [4]float64) (Pass, error)
	// EndFrame submits and presents. A frame that fails before EndFrame is
	// never presented.
	EndFrame(pass Pass) error
	// AbortFrame discards the frame without presenting it.
	AbortFrame(pass Pass)

	Resize(width, height int)
	Release()
}
