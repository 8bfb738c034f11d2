package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gekko3d/studyroom"
	"github.com/gekko3d/studyroom/roomrt/rt/core"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader turns texture sources into RGBA images. A source is either a file
// path, resolved against BaseDir when relative, or a procedural description
// starting with "procedural:".
type Loader struct {
	BaseDir string
	// MaxSize bounds the longer image side; larger images are scaled down.
	// Zero disables scaling.
	MaxSize int
	// Fallback is used when a file source cannot be opened. Empty means a
	// missing file is an error.
	Fallback string

	logger studyroom.Logger
}

func NewLoader(baseDir string, logger studyroom.Logger) *Loader {
	return &Loader{
		BaseDir: baseDir,
		logger:  studyroom.OrNop(logger),
	}
}

func (l *Loader) Load(source string) (*image.RGBA, error) {
	return l.load(source, l.Fallback != "")
}

func (l *Loader) load(source string, fallback bool) (*image.RGBA, error) {
	if spec, ok := strings.CutPrefix(source, ProceduralPrefix); ok {
		img, err := Procedural(spec)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", source, err)
		}
		return img, nil
	}

	path := source
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		if fallback {
			l.logger.Warnf("texture %s unavailable (%v), using %s", path, err, l.Fallback)
			return l.load(l.Fallback, false)
		}
		return nil, fmt.Errorf("open texture %s: %v: %w", path, err, core.ErrResourceCreation)
	}
	defer file.Close()

	img, err := l.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	l.logger.Debugf("loaded texture %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}

// Decode reads any registered image format and returns it as RGBA.
func (l *Loader) Decode(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, core.ErrResourceCreation)
	}
	l.logger.Debugf("decoded %s image", format)
	return ToRGBA(src, l.MaxSize), nil
}

// ToRGBA copies src into a zero-origin RGBA image, scaling it down so the
// longer side is at most maxSize when maxSize > 0.
func ToRGBA(src image.Image, maxSize int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst
	}

	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
