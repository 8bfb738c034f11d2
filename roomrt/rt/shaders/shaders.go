package shaders

import (
	_ "embed"
	"fmt"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
)

//go:embed phong_untextured.wgsl
var PhongUntexturedWGSL string

//go:embed phong_diffuse.wgsl
var PhongDiffuseWGSL string

//go:embed phong_diffuse_specular.wgsl
var PhongDiffuseSpecularWGSL string

//go:embed light_marker.wgsl
var LightMarkerWGSL string

// Variant selects one of the fixed shader permutations.
type Variant int

const (
	Untextured Variant = iota
	DiffuseMapped
	DiffuseSpecularMapped
	LightMarker
)

// MaxTextures is the largest texture count any lit variant samples.
const MaxTextures = 2

// ForTextureCount picks the lit variant sampling exactly n textures.
func ForTextureCount(n int) (Variant, error) {
	switch n {
	case 0:
		return Untextured, nil
	case 1:
		return DiffuseMapped, nil
	case 2:
		return DiffuseSpecularMapped, nil
	default:
		return 0, fmt.Errorf("no shader variant samples %d textures: %w", n, core.ErrInvalidConfiguration)
	}
}

func (v Variant) TextureCount() int {
	switch v {
	case DiffuseMapped:
		return 1
	case DiffuseSpecularMapped:
		return 2
	default:
		return 0
	}
}

func (v Variant) Source() string {
	switch v {
	case Untextured:
		return PhongUntexturedWGSL
	case DiffuseMapped:
		return PhongDiffuseWGSL
	case DiffuseSpecularMapped:
		return PhongDiffuseSpecularWGSL
	case LightMarker:
		return LightMarkerWGSL
	default:
		panic(fmt.Sprintf("unknown shader variant %d", int(v)))
	}
}

func (v Variant) String() string {
	switch v {
	case Untextured:
		return "phong_0t"
	case DiffuseMapped:
		return "phong_1t"
	case DiffuseSpecularMapped:
		return "phong_2t"
	case LightMarker:
		return "light_marker"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}
