package gpu

import (
	"github.com/gekko3d/studyroom/roomrt/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// LightBlock matches the WGSL Light struct (96 bytes).
type LightBlock struct {
	Position  [4]float32 // w: enabled
	Direction [4]float32 // w: spotlight
	Ambient   [4]float32
	Diffuse   [4]float32
	Specular  [4]float32
	Cutoff    [4]float32 // x: cos inner, y: cos outer
}

// Uniforms matches the WGSL Uniforms struct (608 bytes).
type Uniforms struct {
	Model            mgl32.Mat4
	NormalMatrix     mgl32.Mat4
	View             mgl32.Mat4
	Projection       mgl32.Mat4
	ViewPos          [4]float32
	MaterialAmbient  [4]float32
	MaterialDiffuse  [4]float32
	MaterialSpecular [4]float32 // w: shininess
	Lights           [core.MaxLights]LightBlock
}

// NewUniforms snapshots everything one draw reads. Lights past MaxLights are
// ignored; missing or nil slots are uploaded disabled.
func NewUniforms(model mgl32.Mat4, mat core.Material, cam *core.Camera, lights []*core.Light) Uniforms {
	u := Uniforms{
		Model:            model,
		NormalMatrix:     core.NormalMatrix(model),
		View:             cam.View(),
		Projection:       cam.Projection(),
		ViewPos:          vec4(cam.Position, 1),
		MaterialAmbient:  vec4(mat.Ambient, 1),
		MaterialDiffuse:  vec4(mat.Diffuse, 1),
		MaterialSpecular: vec4(mat.Specular, mat.Shininess),
	}
	for i := 0; i < len(lights) && i < core.MaxLights; i++ {
		l := lights[i]
		if l == nil {
			continue
		}
		u.Lights[i] = LightBlock{
			Position:  vec4(l.Position, flag(l.Enabled)),
			Direction: vec4(l.Direction, flag(l.Kind == core.LightKindSpot)),
			Ambient:   vec4(l.Ambient, 1),
			Diffuse:   vec4(l.Diffuse, 1),
			Specular:  vec4(l.Specular, 1),
			Cutoff:    [4]float32{l.InnerCutoff, l.OuterCutoff, 0, 0},
		}
	}
	return u
}

func vec4(v mgl32.Vec3, w float32) [4]float32 {
	return [4]float32{v[0], v[1], v[2], w}
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
