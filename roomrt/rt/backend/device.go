package backend

import (
	"fmt"
	"image"

	"github.com/gekko3d/studyroom"
	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/shaders"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// Device renders through WebGPU into the surface of a GLFW window.
type Device struct {
	logger studyroom.Logger

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	frame *frame
}

var _ gpu.Device = (*Device)(nil)

func NewDevice(window *glfw.Window, logger studyroom.Logger) (*Device, error) {
	d := &Device{logger: studyroom.OrNop(logger)}

	d.instance = wgpu.CreateInstance(nil)
	// wraps GLFW window into a wgpu surface.
	d.surface = d.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: d.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("request adapter: %v: %w", err, core.ErrResourceCreation)
	}
	d.adapter = adapter

	d.device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("request device: %v: %w", err, core.ErrResourceCreation)
	}
	d.queue = d.device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := d.surface.GetCapabilities(adapter)
	// defines how the swapchain behaves (size, format, vsync)
	d.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	d.surface.Configure(adapter, d.device, d.config)

	if err := d.createDepthTarget(); err != nil {
		d.Release()
		return nil, err
	}

	d.logger.Infof("webgpu device ready, surface %dx%d format %v", d.config.Width, d.config.Height, d.config.Format)
	return d, nil
}

func (d *Device) createDepthTarget() error {
	if d.depthView != nil {
		d.depthView.Release()
		d.depthView = nil
	}
	if d.depthTexture != nil {
		d.depthTexture.Release()
		d.depthTexture = nil
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth",
		Size:          wgpu.Extent3D{Width: d.config.Width, Height: d.config.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %v: %w", err, core.ErrResourceCreation)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("depth view: %v: %w", err, core.ErrResourceCreation)
	}
	d.depthTexture = tex
	d.depthView = view
	return nil
}

func (d *Device) AbortFrame(pass gpu.Pass) {
	f, ok := pass.(*frame)
	if !ok || f != d.frame {
		return
	}
	d.frame = nil
	if f.pass != nil {
		_ = f.pass.End()
	}
	f.release()
	d.logger.Warnf("frame aborted before present")
}

func (d *Device) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	d.config.Width = uint32(width)
	d.config.Height = uint32(height)
	d.surface.Configure(d.adapter, d.device, d.config)
	if err := d.createDepthTarget(); err != nil {
		d.logger.Errorf("resize: %v", err)
	}
}

func (d *Device) Release() {
	if d.depthView != nil {
		d.depthView.Release()
		d.depthView = nil
	}
	if d.depthTexture != nil {
		d.depthTexture.Release()
		d.depthTexture = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// mesh

type mesh struct {
	vertexBuf  *wgpu.Buffer
	indexBuf   *wgpu.Buffer
	indexCount uint32
}

func (m *mesh) IndexCount() uint32 { return m.indexCount }

func (m *mesh) Release() {
	m.vertexBuf.Release()
	m.indexBuf.Release()
}

func (d *Device) CreateMesh(label string, data core.MeshData) (gpu.Mesh, error) {
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return nil, fmt.Errorf("mesh %q is empty: %w", label, core.ErrResourceCreation)
	}
	indices := data.Indices
	// buffer sizes must stay 4-byte aligned
	if len(indices)%2 != 0 {
		indices = append(append([]uint16(nil), indices...), 0)
	}

	vertexBuf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertex Buffer",
		Contents: wgpu.ToBytes(data.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %q vertices: %v: %w", label, err, core.ErrResourceCreation)
	}
	indexBuf, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertexBuf.Release()
		return nil, fmt.Errorf("mesh %q indices: %v: %w", label, err, core.ErrResourceCreation)
	}
	return &mesh{
		vertexBuf:  vertexBuf,
		indexBuf:   indexBuf,
		indexCount: uint32(len(data.Indices)),
	}, nil
}

// program

type program struct {
	variant  shaders.Variant
	pipeline *wgpu.RenderPipeline
}

func (p *program) Variant() shaders.Variant { return p.variant }

func (p *program) Release() { p.pipeline.Release() }

func (d *Device) CreateProgram(variant shaders.Variant) (gpu.Program, error) {
	shader, err := d.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          variant.String(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: variant.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("shader %s: %v: %w", variant, err, core.ErrResourceCreation)
	}
	defer shader.Release()

	pipeline, err := d.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: variant.String() + " Pipeline",
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{createVertexBufferLayout(core.Vertex{})},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    d.config.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %v: %w", variant, err, core.ErrResourceCreation)
	}
	d.logger.Debugf("created pipeline %s", variant)
	return &program{variant: variant, pipeline: pipeline}, nil
}

// texture

type texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	width   uint32
	height  uint32
}

func (t *texture) Size() (uint32, uint32) { return t.width, t.height }

func (t *texture) Release() {
	t.sampler.Release()
	t.view.Release()
	t.texture.Release()
}

func (d *Device) CreateTexture(label string, img *image.RGBA, opts gpu.SamplerOptions) (gpu.Texture, error) {
	bounds := img.Bounds()
	extent := wgpu.Extent3D{
		Width:              uint32(bounds.Dx()),
		Height:             uint32(bounds.Dy()),
		DepthOrArrayLayers: 1,
	}
	if extent.Width == 0 || extent.Height == 0 {
		return nil, fmt.Errorf("texture %q has no pixels: %w", label, core.ErrResourceCreation)
	}

	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("texture %q: %v: %w", label, err, core.ErrResourceCreation)
	}

	err = d.queue.WriteTexture(
		tex.AsImageCopy(),
		img.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(img.Stride),
			RowsPerImage: extent.Height,
		},
		&extent,
	)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q upload: %v: %w", label, err, core.ErrResourceCreation)
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("texture %q view: %v: %w", label, err, core.ErrResourceCreation)
	}

	wrap := wgpuWrapMode(opts.Wrap)
	filter := wgpuFilterMode(opts.Filter)
	sampler, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  wrap,
		AddressModeV:  wrap,
		AddressModeW:  wrap,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("texture %q sampler: %v: %w", label, err, core.ErrResourceCreation)
	}

	return &texture{
		texture: tex,
		view:    view,
		sampler: sampler,
		width:   extent.Width,
		height:  extent.Height,
	}, nil
}

// binding

type binding struct {
	queue     *wgpu.Queue
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func (b *binding) Write(u *gpu.Uniforms) error {
	return b.queue.WriteBuffer(b.buffer, 0, wgpu.ToBytes([]gpu.Uniforms{*u}))
}

func (b *binding) Release() {
	b.bindGroup.Release()
	b.buffer.Release()
}

func (d *Device) CreateBinding(label string, prog gpu.Program, textures []gpu.Texture) (gpu.Binding, error) {
	p, ok := prog.(*program)
	if !ok {
		return nil, fmt.Errorf("binding %q: program not created by this device: %w", label, core.ErrInvalidConfiguration)
	}

	buffer, err := d.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Uniforms",
		Contents: wgpu.ToBytes([]gpu.Uniforms{{}}),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("binding %q uniforms: %v: %w", label, err, core.ErrResourceCreation)
	}

	entries := []wgpu.BindGroupEntry{
		{Binding: 0, Buffer: buffer, Size: wgpu.WholeSize},
	}
	for i, t := range textures {
		tx, ok := t.(*texture)
		if !ok {
			buffer.Release()
			return nil, fmt.Errorf("binding %q: texture %d not created by this device: %w", label, i, core.ErrInvalidConfiguration)
		}
		slot := uint32(1 + 2*i)
		entries = append(entries,
			wgpu.BindGroupEntry{Binding: slot, Sampler: tx.sampler, Size: wgpu.WholeSize},
			wgpu.BindGroupEntry{Binding: slot + 1, TextureView: tx.view, Size: wgpu.WholeSize},
		)
	}

	layout := p.pipeline.GetBindGroupLayout(0)
	defer layout.Release()

	bindGroup, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		buffer.Release()
		return nil, fmt.Errorf("binding %q: %v: %w", label, err, core.ErrResourceCreation)
	}
	return &binding{queue: d.queue, buffer: buffer, bindGroup: bindGroup}, nil
}

// frame

type frame struct {
	surfaceTexture *wgpu.Texture
	view           *wgpu.TextureView
	encoder        *wgpu.CommandEncoder
	pass           *wgpu.RenderPassEncoder
}

func (f *frame) Draw(prog gpu.Program, b gpu.Binding, m gpu.Mesh) error {
	p, ok := prog.(*program)
	if !ok {
		return fmt.Errorf("draw: foreign program: %w", core.ErrInvalidConfiguration)
	}
	bg, ok := b.(*binding)
	if !ok {
		return fmt.Errorf("draw: foreign binding: %w", core.ErrInvalidConfiguration)
	}
	mh, ok := m.(*mesh)
	if !ok {
		return fmt.Errorf("draw: foreign mesh: %w", core.ErrInvalidConfiguration)
	}

	f.pass.SetPipeline(p.pipeline)
	f.pass.SetBindGroup(0, bg.bindGroup, nil)
	f.pass.SetVertexBuffer(0, mh.vertexBuf, 0, wgpu.WholeSize)
	f.pass.SetIndexBuffer(mh.indexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	f.pass.DrawIndexed(mh.indexCount, 1, 0, 0, 0)
	return nil
}

func (f *frame) release() {
	if f.pass != nil {
		f.pass.Release()
	}
	if f.encoder != nil {
		f.encoder.Release()
	}
	if f.view != nil {
		f.view.Release()
	}
	if f.surfaceTexture != nil {
		f.surfaceTexture.Release()
	}
}

func (d *Device) BeginFrame(clear [4]float64) (gpu.Pass, error) {
	if d.frame != nil {
		return nil, fmt.Errorf("begin frame: previous frame still open: %w", core.ErrInvalidConfiguration)
	}
	f := &frame{}

	var err error
	f.surfaceTexture, err = d.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("acquire surface texture: %w", err)
	}
	f.view, err = f.surfaceTexture.CreateView(nil)
	if err != nil {
		f.release()
		return nil, fmt.Errorf("surface view: %w", err)
	}
	f.encoder, err = d.device.CreateCommandEncoder(nil)
	if err != nil {
		f.release()
		return nil, fmt.Errorf("command encoder: %w", err)
	}

	f.pass = f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       f.view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: clear[0], G: clear[1], B: clear[2], A: clear[3]},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            d.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	d.frame = f
	return f, nil
}

func (d *Device) EndFrame(pass gpu.Pass) error {
	f, ok := pass.(*frame)
	if !ok || f != d.frame {
		return fmt.Errorf("end frame: pass does not belong to the open frame: %w", core.ErrInvalidConfiguration)
	}
	d.frame = nil
	defer f.release()

	if err := f.pass.End(); err != nil {
		return fmt.Errorf("render pass end: %w", err)
	}
	cmdBuffer, err := f.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder finish: %w", err)
	}
	defer cmdBuffer.Release()

	d.queue.Submit(cmdBuffer)
	d.surface.Present()
	return nil
}
