package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/gekko3d/studyroom"
	"github.com/gekko3d/studyroom/roomrt/rt/assets"
	"github.com/gekko3d/studyroom/roomrt/rt/core"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
	"github.com/gekko3d/studyroom/roomrt/rt/scene"
)

type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRendering
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateRendering:
		return "rendering"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNotInitialized     = errors.New("scene not initialized")
	ErrAlreadyInitialized = errors.New("scene already initialized")
)

// Light slots in the shared light array.
const (
	LightOrbit0 = iota
	LightOrbit1
	LightLamp
)

// App owns the camera, the light array and every composite, and drives them
// once per frame. All methods must be called from the thread that owns the
// device.
type App struct {
	config Config
	device gpu.Device
	logger studyroom.Logger
	clock  func() time.Time
	loader *assets.Loader

	state State
	time  *studyroom.Time

	camera   *core.Camera
	lights   []*core.Light
	textures *gpu.Registry[gpu.Texture]
	meshes   *gpu.Registry[gpu.Mesh]
	programs *gpu.ProgramCache

	markers    []*scene.LightMarker
	room       *scene.Room
	table      *scene.Table
	laptop     *scene.Laptop
	lamp       *scene.Lamp
	containers *scene.ContainerField
	// composites in construction order
	composites []scene.Composite
}

func (a *App) State() State { return a.state }

func (a *App) Camera() *core.Camera { return a.camera }

func (a *App) Lights() []*core.Light { return a.lights }

func (a *App) Lamp() *scene.Lamp { return a.lamp }

func (a *App) Laptop() *scene.Laptop { return a.laptop }

func (a *App) Containers() *scene.ContainerField { return a.containers }

func (a *App) Room() *scene.Room { return a.room }

func (a *App) Config() Config { return a.config }

// Elapsed is the scene time of the last frame in seconds.
func (a *App) Elapsed() float64 {
	if a.time == nil {
		return 0
	}
	return a.time.Elapsed()
}

func (a *App) stateError(op string) error {
	switch a.state {
	case StateUninitialized:
		return fmt.Errorf("%s: %w", op, ErrNotInitialized)
	case StateDisposed:
		return fmt.Errorf("%s: %w", op, core.ErrPostDispose)
	default:
		return fmt.Errorf("%s: %w", op, ErrAlreadyInitialized)
	}
}

// Init loads textures, creates shared meshes, lights and composites. On
// failure everything created so far, the device included, is released and
// the app cannot be used again.
func (a *App) Init() error {
	if a.state != StateUninitialized {
		return a.stateError("init")
	}
	err := a.config.Validate()
	if err == nil {
		err = a.build()
	}
	if err != nil {
		a.release()
		a.state = StateDisposed
		a.logger.Errorf("init failed: %v", err)
		return err
	}

	a.time = studyroom.NewTime(a.clock())
	a.state = StateInitialized
	a.logger.Infof("scene ready: %d textures, %d meshes, %d programs, %d composites",
		a.textures.Len(), a.meshes.Len(), a.programs.Len(), len(a.composites))
	return nil
}

func (a *App) build() error {
	cam := a.config.Camera
	a.camera = core.NewCamera(cam.Position, cam.Target)
	a.camera.FovY = cam.FovY
	a.camera.Near = cam.Near
	a.camera.Far = cam.Far
	a.camera.SetViewport(a.config.Window.Width, a.config.Window.Height)

	a.textures = gpu.NewRegistry[gpu.Texture]("texture")
	a.meshes = gpu.NewRegistry[gpu.Mesh]("mesh")
	a.programs = gpu.NewProgramCache(a.device)

	for _, t := range a.config.Textures {
		img, err := a.loader.Load(t.Source)
		if err != nil {
			return fmt.Errorf("texture %q: %w", t.Name, err)
		}
		tex, err := a.device.CreateTexture(t.Name, img, t.SamplerOptions())
		if err != nil {
			return fmt.Errorf("texture %q: %w", t.Name, err)
		}
		id, err := a.textures.Add(t.Name, tex)
		if err != nil {
			tex.Release()
			return err
		}
		a.logger.Debugf("texture %s -> %s", t.Name, id)
	}

	tiling := a.config.Room.WallTiling
	for _, mesh := range []struct {
		name string
		data core.MeshData
	}{
		{scene.MeshCube, core.Cube()},
		{scene.MeshQuad, core.Quad()},
		{scene.MeshTiledQuad, core.TiledQuad(tiling, tiling)},
	} {
		m, err := a.device.CreateMesh(mesh.name, mesh.data)
		if err != nil {
			return fmt.Errorf("mesh %s: %w", mesh.name, err)
		}
		if _, err := a.meshes.Add(mesh.name, m); err != nil {
			m.Release()
			return err
		}
	}

	a.lights = []*core.Light{
		core.NewPointLight(),
		core.NewPointLight(),
		core.NewSpotLight(a.config.Lamp.InnerCutoff, a.config.Lamp.OuterCutoff),
	}
	a.lights[LightOrbit0].Position = a.config.Orbits[0].Position(0)
	a.lights[LightOrbit1].Position = a.config.Orbits[1].Position(0)

	res := &scene.Resources{
		Device:   a.device,
		Programs: a.programs,
		Meshes:   a.meshes,
		Textures: a.textures,
		Camera:   a.camera,
		Lights:   a.lights,
	}

	for i := range a.config.Orbits {
		m, err := scene.NewLightMarker(res, fmt.Sprintf("light%d_marker", i), a.lights[i], a.config.MarkerSize)
		if err != nil {
			return err
		}
		a.markers = append(a.markers, m)
	}

	lampConfig, laptopConfig := a.config.Furniture()
	var err error
	if a.room, err = scene.NewRoom(res, a.config.Room); err != nil {
		return err
	}
	a.composites = append(a.composites, a.room)
	if a.table, err = scene.NewTable(res, a.config.Table, a.config.Room.Size); err != nil {
		return err
	}
	a.composites = append(a.composites, a.table)
	if a.laptop, err = scene.NewLaptop(res, laptopConfig); err != nil {
		return err
	}
	a.composites = append(a.composites, a.laptop)
	if a.lamp, err = scene.NewLamp(res, lampConfig, a.lights[LightLamp]); err != nil {
		return err
	}
	a.composites = append(a.composites, a.lamp)
	if a.containers, err = scene.NewContainerField(res, a.config.Containers); err != nil {
		return err
	}
	a.composites = append(a.composites, a.containers)
	return nil
}

// Resize recomputes the projection from the new aspect ratio and resizes
// the surface. Zero sizes (a minimised window) keep the last projection.
func (a *App) Resize(width, height int) error {
	if a.state != StateInitialized && a.state != StateRendering {
		return a.stateError("resize")
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	a.camera.SetViewport(width, height)
	a.device.Resize(width, height)
	a.logger.Debugf("resized to %dx%d", width, height)
	return nil
}

// RenderFrame draws one frame. Any error abandons the frame unpresented.
func (a *App) RenderFrame() error {
	if a.state != StateInitialized && a.state != StateRendering {
		return a.stateError("render")
	}
	a.state = StateRendering

	pass, err := a.device.BeginFrame(a.config.ClearColor)
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := a.drawFrame(pass); err != nil {
		a.device.AbortFrame(pass)
		return err
	}
	return a.device.EndFrame(pass)
}

func (a *App) drawFrame(pass gpu.Pass) error {
	a.time.Tick(a.clock())
	elapsed := a.time.Elapsed()

	for i, orbit := range a.config.Orbits {
		a.lights[i].Position = orbit.Position(elapsed)
	}
	a.lamp.UpdateLight()
	if err := a.containers.Update(elapsed); err != nil {
		return err
	}

	for _, m := range a.markers {
		if err := m.Render(pass); err != nil {
			return err
		}
	}
	for _, c := range a.composites {
		if err := c.Render(pass); err != nil {
			return err
		}
	}
	return nil
}

// Dispose tears the scene down in reverse construction order. It may be
// called once; later calls, and every other call afterwards, fail with
// core.ErrPostDispose.
func (a *App) Dispose() error {
	if a.state == StateDisposed {
		return fmt.Errorf("dispose: %w", core.ErrPostDispose)
	}
	err := a.release()
	a.state = StateDisposed
	a.logger.Infof("scene disposed")
	return err
}

// release frees whatever exists, in reverse order of creation.
func (a *App) release() error {
	var errs []error
	for i := len(a.composites) - 1; i >= 0; i-- {
		if err := a.composites[i].Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	a.composites = nil
	for i := len(a.markers) - 1; i >= 0; i-- {
		if err := a.markers[i].Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	a.markers = nil
	if a.textures != nil {
		a.textures.ReleaseAll()
	}
	if a.meshes != nil {
		a.meshes.ReleaseAll()
	}
	if a.programs != nil {
		a.programs.ReleaseAll()
	}
	if a.device != nil {
		a.device.Release()
	}
	return errors.Join(errs...)
}
