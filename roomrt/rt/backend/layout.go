package backend

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// createVertexBufferLayout reads `gekko:"layout"` fields of the vertex
// struct; untagged fields still advance the offset.
func createVertexBufferLayout(vertexType any) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("gekko") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

func wgpuWrapMode(mode string) wgpu.AddressMode {
	switch mode {
	case "", "wrap":
		return wgpu.AddressModeRepeat
	case "mirror":
		return wgpu.AddressModeMirrorRepeat
	case "clamp":
		return wgpu.AddressModeClampToEdge
	default:
		panic(fmt.Sprintf("Unknown wrap mode: %s", mode))
	}
}

func wgpuFilterMode(mode string) wgpu.FilterMode {
	switch mode {
	case "", "linear":
		return wgpu.FilterModeLinear
	case "nearest":
		return wgpu.FilterModeNearest
	default:
		panic(fmt.Sprintf("Unknown filter mode: %s", mode))
	}
}
