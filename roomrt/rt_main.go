package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/studyroom"
	"github.com/gekko3d/studyroom/roomrt/rt/app"
	"github.com/gekko3d/studyroom/roomrt/rt/backend"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

var keyControls = map[glfw.Key]app.Control{
	glfw.KeyW: app.SlideBaseForward,
	glfw.KeyS: app.SlideBaseBack,
	glfw.KeyR: app.LowerArmPitchUp,
	glfw.KeyF: app.LowerArmPitchDown,
	glfw.KeyA: app.LowerArmYawLeft,
	glfw.KeyD: app.LowerArmYawRight,
	glfw.KeyT: app.UpperArmPitchUp,
	glfw.KeyG: app.UpperArmPitchDown,
	glfw.KeyY: app.HeadPitchUp,
	glfw.KeyH: app.HeadPitchDown,
	glfw.KeyL: app.ToggleLampLight,
	glfw.KeyZ: app.ResetLamp,
	glfw.KeyO: app.OpenLid,
	glfw.KeyC: app.CloseLid,
	glfw.Key1: app.ToggleLight0,
	glfw.Key2: app.ToggleLight1,
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default scene")
	debug := flag.Bool("debug", false, "Enable debug logging")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	dumpConfig := flag.Bool("dump-config", false, "Print the effective configuration and exit")
	flag.Parse()

	cfg := app.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = app.LoadConfig(*configPath); err != nil {
			panic(err)
		}
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	cfg.Debug = cfg.Debug || *debug

	if *dumpConfig {
		data, err := cfg.Dump()
		if err != nil {
			panic(err)
		}
		fmt.Fprint(os.Stdout, string(data))
		return
	}

	logger := studyroom.NewDefaultLogger("studyroom", cfg.Debug)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	device, err := backend.NewDevice(window, studyroom.Named(logger, "gpu"))
	if err != nil {
		panic(err)
	}

	application := app.NewAppBuilder(cfg).
		UseDevice(device).
		UseLogger(logger).
		Build()
	if err := application.Init(); err != nil {
		panic(err)
	}
	defer func() {
		if err := application.Dispose(); err != nil {
			logger.Errorf("dispose: %v", err)
		}
	}()

	fbw, fbh := window.GetFramebufferSize()
	if err := application.Resize(fbw, fbh); err != nil {
		panic(err)
	}

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if err := application.Resize(width, height); err != nil {
			logger.Errorf("resize: %v", err)
		}
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if c, ok := keyControls[key]; ok {
			if err := application.Apply(c); err != nil {
				logger.Warnf("%v", err)
			}
		}
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := application.RenderFrame(); err != nil {
			logger.Errorf("frame: %v", err)
			break
		}
	}
}
