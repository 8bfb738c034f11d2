package assets

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/gekko3d/studyroom/roomrt/rt/core"

	"golang.org/x/image/draw"
)

const ProceduralPrefix = "procedural:"

// Procedural builds an image from a colon separated description:
//
//	solid:RRGGBB
//	checker:RRGGBB:RRGGBB:cells[:size]
//	stripes:RRGGBB:RRGGBB:count[:size]
//
// size defaults to 256.
func Procedural(spec string) (*image.RGBA, error) {
	parts := strings.Split(spec, ":")
	switch parts[0] {
	case "solid":
		if len(parts) != 2 {
			return nil, badSpec(spec)
		}
		c, err := parseHex(parts[1])
		if err != nil {
			return nil, err
		}
		return Solid(c, 4), nil
	case "checker", "stripes":
		if len(parts) < 4 || len(parts) > 5 {
			return nil, badSpec(spec)
		}
		a, err := parseHex(parts[1])
		if err != nil {
			return nil, err
		}
		b, err := parseHex(parts[2])
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(parts[3])
		if err != nil || n <= 0 {
			return nil, badSpec(spec)
		}
		size := 256
		if len(parts) == 5 {
			size, err = strconv.Atoi(parts[4])
			if err != nil || size < n {
				return nil, badSpec(spec)
			}
		}
		if parts[0] == "checker" {
			return Checker(a, b, n, size), nil
		}
		return Stripes(a, b, n, size), nil
	default:
		return nil, fmt.Errorf("unknown procedural texture %q: %w", parts[0], core.ErrInvalidConfiguration)
	}
}

func Solid(c color.RGBA, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Checker draws cells×cells alternating squares, a first in the top left.
func Checker(a, b color.RGBA, cells, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		cy := y * cells / size
		for x := 0; x < size; x++ {
			cx := x * cells / size
			if (cx+cy)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

// Stripes draws count vertical bands alternating a and b.
func Stripes(a, b color.RGBA, count, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		c := a
		if (x*count/size)%2 == 1 {
			c = b
		}
		draw.Draw(img, image.Rect(x, 0, x+1, size), image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q is not RRGGBB: %w", s, core.ErrInvalidConfiguration)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %v: %w", s, err, core.ErrInvalidConfiguration)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func badSpec(spec string) error {
	return fmt.Errorf("malformed procedural texture %q: %w", spec, core.ErrInvalidConfiguration)
}
