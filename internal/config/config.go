// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Scene names.
const (
	SceneAmbient  = "ambient"
	SceneLit      = "lit"
	SceneTextured = "textured"
)

// Scenes lists the known scene names.
var Scenes = []string{SceneAmbient, SceneLit, SceneTextured}

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SceneConfig selects the demo scene and its assets.
type SceneConfig struct {
	Name        string     `yaml:"name"`
	OBJPath     string     `yaml:"obj_path"`
	TexturePath string     `yaml:"texture_path"`
	ClearColor  [3]float32 `yaml:"clear_color"`
	Wireframe   bool       `yaml:"wireframe"`
}

// CameraConfig holds the starting camera.
type CameraConfig struct {
	Mode        string     `yaml:"mode"`
	Position    [3]float32 `yaml:"position"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,

			ScreenshotDir: "screenshots",
		},
		Scene: SceneConfig{
			Name:       SceneLit,
			ClearColor: [3]float32{0.1, 0.1, 0.3},
		},
		Camera: CameraConfig{
			Mode:        "fly",
			Position:    [3]float32{0, 1, 10},
			Speed:       10,
			Sensitivity: 0.1,
			Zoom:        45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail late inside the renderer.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FPSLimit < 0 {
		return fmt.Errorf("%w: fps_limit %d", ErrInvalidConfig, c.Graphics.FPSLimit)
	}
	known := false
	for _, s := range Scenes {
		if c.Scene.Name == s {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("%w: unknown scene %q (want one of %v)", ErrInvalidConfig, c.Scene.Name, Scenes)
	}
	if c.Camera.Mode != "fly" && c.Camera.Mode != "orbit" {
		return fmt.Errorf("%w: unknown camera mode %q", ErrInvalidConfig, c.Camera.Mode)
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 45 {
		return fmt.Errorf("%w: zoom %v outside [1, 45]", ErrInvalidConfig, c.Camera.Zoom)
	}
	return nil
}
