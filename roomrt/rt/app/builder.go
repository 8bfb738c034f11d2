package app

import (
	"time"

	"github.com/gekko3d/studyroom"
	"github.com/gekko3d/studyroom/roomrt/rt/assets"
	"github.com/gekko3d/studyroom/roomrt/rt/gpu"
)

type AppBuilder struct {
	app *App
}

func NewAppBuilder(config Config) *AppBuilder {
	return &AppBuilder{app: &App{
		config: config,
		clock:  time.Now,
	}}
}

func (b *AppBuilder) UseDevice(device gpu.Device) *AppBuilder {
	b.app.device = device
	return b
}

func (b *AppBuilder) UseLogger(logger studyroom.Logger) *AppBuilder {
	b.app.logger = logger
	return b
}

// UseClock replaces time.Now, e.g. with a fixed clock in tests.
func (b *AppBuilder) UseClock(clock func() time.Time) *AppBuilder {
	b.app.clock = clock
	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	app.loader = assets.NewLoader(app.config.AssetDir, studyroom.Named(app.logger, "assets"))
	app.logger = studyroom.Named(app.logger, "app")
	app.loader.MaxSize = app.config.MaxTextureSize
	app.loader.Fallback = app.config.FallbackTexture
	if app.device == nil {
		panic("app: no device, call UseDevice before Build")
	}
	return app
}
