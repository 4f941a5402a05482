package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagScene      = flag.String("scene", "", "Scene to show (ambient, lit, textured)")
	flagOBJ        = flag.String("obj", "", "OBJ model for the textured scene")
	flagTexture    = flag.String("texture", "", "Texture image for the textured scene")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFPS        = flag.Int("fps", -1, "Frame rate cap, 0 for none")
	flagWireframe  = flag.Bool("wireframe", false, "Draw scenes as wireframe")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagScene != "" {
		cfg.Scene.Name = *flagScene
	}
	if *flagOBJ != "" {
		cfg.Scene.OBJPath = *flagOBJ
	}
	if *flagTexture != "" {
		cfg.Scene.TexturePath = *flagTexture
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFPS >= 0 {
		cfg.Graphics.FPSLimit = *flagFPS
	}
	if *flagWireframe {
		cfg.Scene.Wireframe = true
	}
}
