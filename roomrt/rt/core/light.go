package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the size of the light array every shader variant expects.
const MaxLights = 3

type LightKind uint32

const (
	LightKindPoint LightKind = 0
	LightKindSpot  LightKind = 1
)

// Light is shared by pointer between its owner, which mutates it between
// frames, and every render object, which only reads it.
type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	// Cutoffs are stored as cosines of the cone half angles.
	InnerCutoff float32
	OuterCutoff float32
	Enabled     bool
}

func NewPointLight() *Light {
	return &Light{
		Kind:      LightKindPoint,
		Direction: mgl32.Vec3{0, -1, 0},
		Ambient:   mgl32.Vec3{0.3, 0.3, 0.3},
		Diffuse:   mgl32.Vec3{0.7, 0.7, 0.7},
		Specular:  mgl32.Vec3{1, 1, 1},
		Enabled:   true,
	}
}

func NewSpotLight(innerDegrees, outerDegrees float32) *Light {
	l := NewPointLight()
	l.Kind = LightKindSpot
	l.Direction = mgl32.Vec3{0, 0, -1}
	l.SetCutoffs(innerDegrees, outerDegrees)
	return l
}

func (l *Light) SetCutoffs(innerDegrees, outerDegrees float32) {
	l.InnerCutoff = CosDegrees(innerDegrees)
	l.OuterCutoff = CosDegrees(outerDegrees)
}

func CosDegrees(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

func SinDegrees(deg float32) float32 {
	return float32(math.Sin(float64(mgl32.DegToRad(deg))))
}
