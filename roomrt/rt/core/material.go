package core

import "github.com/go-gl/mathgl/mgl32"

type Material struct {
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

// NewMaterial uses base for both the ambient and diffuse terms.
func NewMaterial(base, specular mgl32.Vec3, shininess float32) Material {
	return Material{
		Ambient:   base,
		Diffuse:   base,
		Specular:  specular,
		Shininess: shininess,
	}
}

// Helper for the white, moderately shiny material used by most furniture.
func DefaultMaterial() Material {
	return NewMaterial(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.3, 0.3, 0.3}, 32)
}
