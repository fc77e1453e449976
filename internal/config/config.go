// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig `yaml:"graphics"`
	Viewer    ViewerConfig   `yaml:"viewer"`
	Panoramas PanoramaConfig `yaml:"panoramas"`
	Capture   CaptureConfig  `yaml:"capture"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"` // used when vsync is off; 0 = 60
}

// ViewerConfig holds zoom limits and input sensitivities.
type ViewerConfig struct {
	MinFov           float64 `yaml:"min_fov"`
	MaxFov           float64 `yaml:"max_fov"`
	ZoomStep         float64 `yaml:"zoom_step"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // degrees per pixel
	TouchSensitivity float64 `yaml:"touch_sensitivity"` // degrees per pixel
	WheelSensitivity float64 `yaml:"wheel_sensitivity"` // fov degrees per wheel unit
	PinchSensitivity float64 `yaml:"pinch_sensitivity"` // fov degrees per pixel of pinch
}

// PanoramaConfig is the fixed list of panoramas shown in a session.
type PanoramaConfig struct {
	Dir    string   `yaml:"dir"`
	Images []string `yaml:"images"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "webp"
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
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			MinFov:           30,
			MaxFov:           120,
			ZoomStep:         10,
			MouseSensitivity: 0.3,
			TouchSensitivity: 0.5,
			WheelSensitivity: 0.1,
			PinchSensitivity: 0.5,
		},
		Panoramas: PanoramaConfig{
			Dir:    "images",
			Images: []string{"Panorama.png", "Panorama1.png", "Panorama2.png"},
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate repairs values that would break the viewer.
// Zoom limits are swapped when inverted; sensitivities fall back to defaults
// when not positive; unknown capture formats fall back to png.
func (c *Config) Validate() {
	def := Default()

	if c.Viewer.MinFov <= 0 {
		c.Viewer.MinFov = def.Viewer.MinFov
	}
	if c.Viewer.MaxFov <= 0 {
		c.Viewer.MaxFov = def.Viewer.MaxFov
	}
	if c.Viewer.MinFov > c.Viewer.MaxFov {
		c.Viewer.MinFov, c.Viewer.MaxFov = c.Viewer.MaxFov, c.Viewer.MinFov
	}
	if c.Viewer.ZoomStep <= 0 {
		c.Viewer.ZoomStep = def.Viewer.ZoomStep
	}
	if c.Viewer.MouseSensitivity <= 0 {
		c.Viewer.MouseSensitivity = def.Viewer.MouseSensitivity
	}
	if c.Viewer.TouchSensitivity <= 0 {
		c.Viewer.TouchSensitivity = def.Viewer.TouchSensitivity
	}
	if c.Viewer.WheelSensitivity <= 0 {
		c.Viewer.WheelSensitivity = def.Viewer.WheelSensitivity
	}
	if c.Viewer.PinchSensitivity <= 0 {
		c.Viewer.PinchSensitivity = def.Viewer.PinchSensitivity
	}

	switch c.Capture.Format {
	case "png", "webp":
	default:
		c.Capture.Format = def.Capture.Format
	}

	if c.Graphics.Width <= 0 {
		c.Graphics.Width = def.Graphics.Width
	}
	if c.Graphics.Height <= 0 {
		c.Graphics.Height = def.Graphics.Height
	}
}
