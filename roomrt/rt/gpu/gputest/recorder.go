// Package gputest provides a Device that records every call instead of
// talking to a GPU.
package gputest

import (
	"fmt"
	"image"

	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"
)

type Mesh struct {
	Label    string
	Data     core.MeshData
	Released int
	rec      *Recorder
}

func (m *Mesh) IndexCount() uint32 { return uint32(len(m.Data.Indices)) }
func (m *Mesh) Release()           { m.Released++; m.rec.release("mesh:" + m.Label) }

type Program struct {
	Kind     shaders.Variant
	Released int
	rec      *Recorder
}

func (p *Program) Variant() shaders.Variant { return p.Kind }
func (p *Program) Release()                 { p.Released++; p.rec.release("program:" + p.Kind.String()) }

type Texture struct {
	Label    string
	Image    *image.RGBA
	Options  gpu.SamplerOptions
	Released int
	rec      *Recorder
}

func (t *Texture) Size() (uint32, uint32) {
	b := t.Image.Bounds()
	return uint32(b.Dx()), uint32(b.Dy())
}
func (t *Texture) Release() { t.Released++; t.rec.release("texture:" + t.Label) }

type Binding struct {
	Label    string
	Program  *Program
	Textures []gpu.Texture
	Last     gpu.Uniforms
	Writes   int
	Released int
	rec      *Recorder
}

func (b *Binding) Write(u *gpu.Uniforms) error {
	if b.Released > 0 {
		return fmt.Errorf("binding %q written after release", b.Label)
	}
	b.Last = *u
	b.Writes++
	return nil
}
func (b *Binding) Release() { b.Released++; b.rec.release("binding:" + b.Label) }

// Draw is one recorded draw call with the uniforms bound at that moment.
type Draw struct {
	Label    string
	Variant  shaders.Variant
	Mesh     string
	Uniforms gpu.Uniforms
}

type Frame struct {
	Clear [4]float64
	Draws []Draw
	Ended bool
}

type pass struct {
	rec   *Recorder
	frame *Frame
}

func (p *pass) Draw(program gpu.Program, binding gpu.Binding, mesh gpu.Mesh) error {
	if p.rec.FailDraw != nil {
		return p.rec.FailDraw
	}
	b := binding.(*Binding)
	p.frame.Draws = append(p.frame.Draws, Draw{
		Label:    b.Label,
		Variant:  program.Variant(),
		Mesh:     mesh.(*Mesh).Label,
		Uniforms: b.Last,
	})
	return nil
}

// Recorder implements gpu.Device. Set a Fail* field to make the matching
// call fail.
type Recorder struct {
	Meshes   []*Mesh
	Programs []*Program
	Textures []*Texture
	Bindings []*Binding
	Frames   []*Frame

	// Releases lists "kind:label" in the order resources were released.
	Releases []string
	Released bool
	Width    int
	Height   int

	FailMesh    error
	FailProgram error
	FailTexture error
	FailBinding error
	FailBegin   error
	FailDraw    error

	open *pass
}

var _ gpu.Device = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) release(what string) {
	r.Releases = append(r.Releases, what)
}

func (r *Recorder) CreateMesh(label string, data core.MeshData) (gpu.Mesh, error) {
	if r.FailMesh != nil {
		return nil, fmt.Errorf("mesh %q: %w", label, r.FailMesh)
	}
	m := &Mesh{Label: label, Data: data, rec: r}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Recorder) CreateProgram(variant shaders.Variant) (gpu.Program, error) {
	if r.FailProgram != nil {
		return nil, fmt.Errorf("program %s: %w", variant, r.FailProgram)
	}
	p := &Program{Kind: variant, rec: r}
	r.Programs = append(r.Programs, p)
	return p, nil
}

func (r *Recorder) CreateTexture(label string, img *image.RGBA, opts gpu.SamplerOptions) (gpu.Texture, error) {
	if r.FailTexture != nil {
		return nil, fmt.Errorf("texture %q: %w", label, r.FailTexture)
	}
	t := &Texture{Label: label, Image: img, Options: opts, rec: r}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Recorder) CreateBinding(label string, program gpu.Program, textures []gpu.Texture) (gpu.Binding, error) {
	if r.FailBinding != nil {
		return nil, fmt.Errorf("binding %q: %w", label, r.FailBinding)
	}
	b := &Binding{
		Label:    label,
		Program:  program.(*Program),
		Textures: append([]gpu.Texture(nil), textures...),
		rec:      r,
	}
	r.Bindings = append(r.Bindings, b)
	return b, nil
}

func (r *Recorder) BeginFrame(clear [4]float64) (gpu.Pass, error) {
	if r.FailBegin != nil {
		return nil, r.FailBegin
	}
	if r.open != nil {
		return nil, fmt.Errorf("frame already open")
	}
	f := &Frame{Clear: clear}
	r.Frames = append(r.Frames, f)
	r.open = &pass{rec: r, frame: f}
	return r.open, nil
}

func (r *Recorder) EndFrame(p gpu.Pass) error {
	if r.open == nil || p != gpu.Pass(r.open) {
		return fmt.Errorf("end frame without matching begin")
	}
	r.open.frame.Ended = true
	r.open = nil
	return nil
}

func (r *Recorder) AbortFrame(p gpu.Pass) {
	if r.open != nil && p == gpu.Pass(r.open) {
		r.open = nil
	}
}

func (r *Recorder) Resize(width, height int) {
	r.Width = width
	r.Height = height
}

func (r *Recorder) Release() {
	r.Released = true
	r.release("device")
}

// LastFrame returns the most recent frame or nil.
func (r *Recorder) LastFrame() *Frame {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}

// DrawLabels lists the binding labels drawn in f, in order.
func (f *Frame) DrawLabels() []string {
	out := make([]string, len(f.Draws))
	for i, d := range f.Draws {
		out[i] = d.Label
	}
	return out
}

// Find returns the first draw in f whose label is name.
func (f *Frame) Find(name string) (Draw, bool) {
	for _, d := range f.Draws {
		if d.Label == name {
			return d, true
		}
	}
	return Draw{}, false
}

// Solid returns a w×h opaque white image.
func Solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}
