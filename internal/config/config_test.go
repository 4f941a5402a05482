package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if cfg.Graphics.FPSLimit != 60 {
		t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
	}

	// Test scene defaults
	if cfg.Scene.Name != SceneLit {
		t.Errorf("expected scene %q, got %q", SceneLit, cfg.Scene.Name)
	}
	if cfg.Scene.ClearColor != [3]float32{0.1, 0.1, 0.3} {
		t.Errorf("expected clear color (0.1, 0.1, 0.3), got %v", cfg.Scene.ClearColor)
	}

	// Test camera defaults
	if cfg.Camera.Mode != "fly" {
		t.Errorf("expected camera mode 'fly', got %s", cfg.Camera.Mode)
	}
	if cfg.Camera.Position != [3]float32{0, 1, 10} {
		t.Errorf("expected camera at (0, 1, 10), got %v", cfg.Camera.Position)
	}
	if cfg.Camera.Zoom != 45 {
		t.Errorf("expected zoom 45, got %f", cfg.Camera.Zoom)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

scene:
  name: "textured"
  obj_path: "models/teapot.obj"
  texture_path: "textures/brick.png"
  clear_color: [0, 0, 0]

camera:
  mode: "orbit"
  position: [0, 5, 20]
  speed: 4
  zoom: 30

logging:
  level: "debug"
  log_file: "lumen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Scene.Name != SceneTextured {
		t.Errorf("expected scene 'textured', got %s", cfg.Scene.Name)
	}
	if cfg.Scene.OBJPath != "models/teapot.obj" {
		t.Errorf("expected obj path 'models/teapot.obj', got %s", cfg.Scene.OBJPath)
	}
	if cfg.Scene.TexturePath != "textures/brick.png" {
		t.Errorf("expected texture path 'textures/brick.png', got %s", cfg.Scene.TexturePath)
	}
	if cfg.Scene.ClearColor != [3]float32{} {
		t.Errorf("expected black clear color, got %v", cfg.Scene.ClearColor)
	}

	if cfg.Camera.Mode != "orbit" {
		t.Errorf("expected camera mode 'orbit', got %s", cfg.Camera.Mode)
	}
	if cfg.Camera.Position != [3]float32{0, 5, 20} {
		t.Errorf("expected camera at (0, 5, 20), got %v", cfg.Camera.Position)
	}
	// Untouched keys keep their defaults.
	if cfg.Camera.Sensitivity != 0.1 {
		t.Errorf("expected sensitivity 0.1, got %f", cfg.Camera.Sensitivity)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "lumen.log" {
		t.Errorf("expected log file 'lumen.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"negative fps", func(c *Config) { c.Graphics.FPSLimit = -5 }},
		{"unknown scene", func(c *Config) { c.Scene.Name = "terrain" }},
		{"unknown camera", func(c *Config) { c.Camera.Mode = "chase" }},
		{"zoom too wide", func(c *Config) { c.Camera.Zoom = 90 }},
		{"zoom too narrow", func(c *Config) { c.Camera.Zoom = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	for _, scene := range Scenes {
		cfg := Default()
		cfg.Scene.Name = scene
		if err := cfg.Validate(); err != nil {
			t.Errorf("scene %q should validate, got %v", scene, err)
		}
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// Point the user config dir somewhere empty as well.
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("APPDATA", tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Name = SceneAmbient
	cfg.Graphics.Width = 800
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Scene.Name != SceneAmbient {
		t.Errorf("expected scene 'ambient', got %s", loaded.Scene.Name)
	}
	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", loaded.Graphics.Width)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "scene and asset flags",
			setup: func() {
				*flagScene = SceneTextured
				*flagOBJ = "cube.obj"
				*flagTexture = "crate.png"
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Name != SceneTextured {
					t.Errorf("expected scene 'textured', got %s", cfg.Scene.Name)
				}
				if cfg.Scene.OBJPath != "cube.obj" {
					t.Errorf("expected obj path 'cube.obj', got %s", cfg.Scene.OBJPath)
				}
				if cfg.Scene.TexturePath != "crate.png" {
					t.Errorf("expected texture path 'crate.png', got %s", cfg.Scene.TexturePath)
				}
			},
			teardown: func() {
				*flagScene = ""
				*flagOBJ = ""
				*flagTexture = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "fps flag zero disables the cap",
			setup: func() {
				*flagFPS = 0
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.FPSLimit != 0 {
					t.Errorf("expected fps limit 0, got %d", cfg.Graphics.FPSLimit)
				}
			},
			teardown: func() {
				*flagFPS = -1
			},
		},
		{
			name:  "unset fps flag keeps default",
			setup: func() {},
			verify: func(cfg *Config) {
				if cfg.Graphics.FPSLimit != 60 {
					t.Errorf("expected fps limit 60, got %d", cfg.Graphics.FPSLimit)
				}
			},
			teardown: func() {},
		},
		{
			name: "wireframe flag",
			setup: func() {
				*flagWireframe = true
			},
			verify: func(cfg *Config) {
				if !cfg.Scene.Wireframe {
					t.Error("expected wireframe to be enabled")
				}
			},
			teardown: func() {
				*flagWireframe = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  name: terrain\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  widht: 800\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile with empty path: %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err = LoadFile(empty)
	if err != nil {
		t.Fatalf("LoadFile with empty file: %v", err)
	}
	if cfg.Scene.Name != SceneLit {
		t.Errorf("expected default scene 'lit', got %s", cfg.Scene.Name)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 640\n  height: 480\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfig, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 640 || cfg.Graphics.Height != 480 {
		t.Errorf("expected 640x480 from %s, got %dx%d", EnvConfig, cfg.Graphics.Width, cfg.Graphics.Height)
	}
}

func TestFindConfigFilePrefersLumenYAML(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("APPDATA", tmpDir)

	for _, name := range []string{"config.yaml", "lumen.yaml"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	if path := findConfigFile(); filepath.Base(path) != "lumen.yaml" {
		t.Errorf("expected lumen.yaml, got %q", path)
	}
}
