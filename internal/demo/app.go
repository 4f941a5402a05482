package demo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/config"
	"github.com/Faultbox/lumen/internal/engine/camera"
	"github.com/Faultbox/lumen/internal/engine/debug"
	"github.com/Faultbox/lumen/internal/engine/gpu"
	"github.com/Faultbox/lumen/internal/engine/input"
	"github.com/Faultbox/lumen/internal/engine/window"
	"github.com/Faultbox/lumen/internal/logger"
)

// How often the window title shows a fresh FPS value, in seconds.
const titleInterval = 0.5

// App is the viewer: one window showing one scene.
type App struct {
	cfg     *config.Config
	running bool
	log     *zap.Logger

	window *window.Window
	input  *input.Input
	device *gpu.Device
	stage  *Stage
	shots  *debug.Screenshots

	mode  camera.Mode
	fly   *camera.Fly
	orbit *camera.Orbit

	clock   float32
	titleAt float32
	capture bool
}

// New creates the window, the GL state and the configured scene.
func New(cfg *config.Config) (*App, error) {
	def, err := Lookup(cfg.Scene.Name)
	if err != nil {
		return nil, err
	}
	mode, err := camera.ParseMode(cfg.Camera.Mode)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:  cfg,
		mode: mode,
		log:  logger.Named("app"),
	}
	a.log.Info("initializing viewer",
		zap.String("scene", def.Name),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	// Create window (this also creates the OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      "lumen - " + def.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		TargetFPS:  cfg.Graphics.FPSLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if _, err := gpu.Init(); err != nil {
		a.window.Close()
		return nil, err
	}
	gpu.Resize(a.window.GetSize())
	gpu.SetClearColor(mgl32.Vec3(cfg.Scene.ClearColor))
	gpu.SetWireframe(cfg.Scene.Wireframe)

	a.device = gpu.NewDevice()
	a.stage, err = NewStage(def, a.device, Assets{
		OBJPath:     cfg.Scene.OBJPath,
		TexturePath: cfg.Scene.TexturePath,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create scene %s: %w", def.Name, err)
	}

	a.input = input.New()
	a.shots = debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "lumen_"+def.Name)

	a.fly = camera.NewFly(mgl32.Vec3(cfg.Camera.Position))
	a.fly.Speed = cfg.Camera.Speed
	a.fly.Sensitivity = cfg.Camera.Sensitivity
	a.fly.Zoom = cfg.Camera.Zoom

	a.orbit = camera.NewOrbit(mgl32.Vec3{}, 10)
	a.orbit.FOV = cfg.Camera.Zoom
	a.orbit.FitToBounds(a.stage.Bounds())

	a.log.Info("viewer initialized", zap.String("camera", string(a.mode)))
	return a, nil
}

func (a *App) camera() camera.Camera {
	if a.mode == camera.ModeOrbit {
		return a.orbit
	}
	return a.fly
}

func (a *App) toggleCamera() {
	if a.mode == camera.ModeFly {
		a.mode = camera.ModeOrbit
	} else {
		a.mode = camera.ModeFly
	}
	a.log.Debug("camera switched", zap.String("mode", string(a.mode)))
}

// toggleDebugLog switches between debug logging and the configured level.
func (a *App) toggleDebugLog() {
	level := "debug"
	if logger.Level() == zap.DebugLevel {
		level = a.cfg.Logging.Level
		if level == "debug" {
			level = "info"
		}
	}
	logger.SetLevel(level)
	a.log.Info("log level changed", zap.String("level", level))
}

// Run drives the frame loop until the window closes or ESC is pressed.
func (a *App) Run() error {
	a.running = true
	a.log.Info("starting frame loop")

	for a.running {
		// 1. Process input
		if a.input.Update() {
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}

		// 2. Update cameras
		dt := a.window.Timer().Delta()
		a.clock += dt
		k := readControls(a.input)
		if a.mode == camera.ModeOrbit {
			k.applyOrbit(a.orbit)
		} else {
			k.applyFly(a.fly, dt)
		}

		// 3. Render
		a.window.BeginFrame()
		gpu.Clear()
		cam := a.camera()
		if err := a.stage.Draw(cam.ViewMatrix(), cam.Projection(a.window.Aspect()), cam.Eye(), a.clock); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if a.capture {
			a.capture = false
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		if a.cfg.Graphics.ShowFPS && a.clock-a.titleAt >= titleInterval {
			a.titleAt = a.clock
			a.window.SetTitle(fmt.Sprintf("lumen - %s - %d fps", a.stage.Name(), a.window.Timer().FPS()))
		}
	}

	return nil
}

func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		gpu.Resize(event.Width, event.Height)
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			a.running = false
		case sdl.SCANCODE_C:
			a.toggleCamera()
		case sdl.SCANCODE_F:
			a.orbit.FitToBounds(a.stage.Bounds())
		case sdl.SCANCODE_B:
			a.stage.ToggleBounds()
		case sdl.SCANCODE_F3:
			a.toggleDebugLog()
		case sdl.SCANCODE_F12:
			a.capture = true
		}
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			input.SetRelativeMouse(true)
		}
	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			input.SetRelativeMouse(false)
		}
	}
}

// screenshot saves the back buffer before it is presented.
func (a *App) screenshot() {
	w, h := a.window.GetSize()
	path, err := a.shots.SavePixels(gpu.ReadPixels(w, h), w, h)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.stage != nil {
		a.stage.Close()
	}
	if a.device != nil && a.device.Live() != 0 {
		a.log.Warn("buffers still alive at exit", zap.Int("count", a.device.Live()))
	}
	if a.window != nil {
		a.window.Close()
	}
}
