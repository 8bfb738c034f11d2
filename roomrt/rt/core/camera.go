package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultFovY = 45.0

// Camera is owned by the orchestrator and read by every render object.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32
	Near     float32
	Far      float32

	aspect     float32
	projection mgl32.Mat4
}

func NewCamera(position, target mgl32.Vec3) *Camera {
	c := &Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     DefaultFovY,
		Near:     0.1,
		Far:      100,
	}
	c.SetViewport(1, 1)
	return c
}

// SetViewport recomputes the projection from the surface size. The result
// depends only on (width, height) and the fixed lens parameters.
func (c *Camera) SetViewport(width, height int) {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	c.aspect = aspect
	c.projection = Perspective(c.FovY, aspect, c.Near, c.Far)
}

func (c *Camera) Aspect() float32 {
	return c.aspect
}

func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

func (c *Camera) View() mgl32.Mat4 {
	return LookAt(c.Position, c.Target, c.Up)
}

func (c *Camera) GetForward() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}
