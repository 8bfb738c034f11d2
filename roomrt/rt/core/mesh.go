package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout shared by every mesh. The tags drive the
// GPU vertex buffer layout.
type Vertex struct {
	Position [3]float32 `gekko:"layout" format:"float3" location:"0"`
	Normal   [3]float32 `gekko:"layout" format:"float3" location:"1"`
	UV       [2]float32 `gekko:"layout" format:"float2" location:"2"`
}

// MeshData is immutable once handed to the GPU.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint16
}

type cubeFace struct {
	normal, u, v mgl32.Vec3
}

// u x v == normal for every face, so corners listed (-u-v, +u-v, +u+v, -u+v)
// wind counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// Cube returns a unit cube centred on the origin.
func Cube() MeshData {
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	data := MeshData{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint16(len(data.Vertices))
		for i, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(0.5)
			data.Vertices = append(data.Vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       uvs[i],
			})
		}
		data.Indices = append(data.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return data
}

// Quad returns the unit quad in the XZ plane facing +Y.
func Quad() MeshData {
	return TiledQuad(1, 1)
}

// TiledQuad is Quad with texture coordinates scaled so a repeating sampler
// tiles the texture repeatU x repeatV times.
func TiledQuad(repeatU, repeatV float32) MeshData {
	up := [3]float32{0, 1, 0}
	return MeshData{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, 0, -0.5}, Normal: up, UV: [2]float32{0, repeatV}},
			{Position: [3]float32{-0.5, 0, 0.5}, Normal: up, UV: [2]float32{0, 0}},
			{Position: [3]float32{0.5, 0, 0.5}, Normal: up, UV: [2]float32{repeatU, 0}},
			{Position: [3]float32{0.5, 0, -0.5}, Normal: up, UV: [2]float32{repeatU, repeatV}},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}
