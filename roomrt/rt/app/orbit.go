package app

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitConfig is an ellipse in the horizontal plane at a fixed height.
type OrbitConfig struct {
	RadiusX          float32 `yaml:"radius_x"`
	RadiusZ          float32 `yaml:"radius_z"`
	Height           float32 `yaml:"height"`
	DegreesPerSecond float32 `yaml:"degrees_per_second"`
}

func DefaultOrbits() [2]OrbitConfig {
	return [2]OrbitConfig{
		{RadiusX: 8, RadiusZ: 5, Height: 3.4, DegreesPerSecond: 50},
		{RadiusX: 8, RadiusZ: 3, Height: 7.4, DegreesPerSecond: 80},
	}
}

// Position at elapsed seconds; (0, Height, RadiusZ) at zero.
func (o OrbitConfig) Position(elapsed float64) mgl32.Vec3 {
	a := elapsed * float64(o.DegreesPerSecond) * math.Pi / 180
	return mgl32.Vec3{
		o.RadiusX * float32(math.Sin(a)),
		o.Height,
		o.RadiusZ * float32(math.Cos(a)),
	}
}
