package config

import (
	"os"
	"path/filepath"
	"reflect"
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
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test viewer defaults
	if cfg.Viewer.MinFov != 30 || cfg.Viewer.MaxFov != 120 {
		t.Errorf("expected fov limits 30..120, got %v..%v", cfg.Viewer.MinFov, cfg.Viewer.MaxFov)
	}
	if cfg.Viewer.MouseSensitivity != 0.3 {
		t.Errorf("expected mouse sensitivity 0.3, got %v", cfg.Viewer.MouseSensitivity)
	}
	if cfg.Viewer.TouchSensitivity != 0.5 {
		t.Errorf("expected touch sensitivity 0.5, got %v", cfg.Viewer.TouchSensitivity)
	}
	if cfg.Viewer.WheelSensitivity != 0.1 {
		t.Errorf("expected wheel sensitivity 0.1, got %v", cfg.Viewer.WheelSensitivity)
	}
	if cfg.Viewer.PinchSensitivity != 0.5 {
		t.Errorf("expected pinch sensitivity 0.5, got %v", cfg.Viewer.PinchSensitivity)
	}

	// Test panorama defaults
	want := []string{"Panorama.png", "Panorama1.png", "Panorama2.png"}
	if !reflect.DeepEqual(cfg.Panoramas.Images, want) {
		t.Errorf("expected images %v, got %v", want, cfg.Panoramas.Images)
	}
	if cfg.Panoramas.Dir != "images" {
		t.Errorf("expected images dir 'images', got %s", cfg.Panoramas.Dir)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
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

viewer:
  min_fov: 20
  max_fov: 100
  mouse_sensitivity: 0.25

panoramas:
  dir: "/srv/panos"
  images:
    - lobby_east.jpg
    - roof.webp

capture:
  dir: "/tmp/shots"
  format: webp

logging:
  level: "debug"
  log_file: "viewer.log"
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
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if cfg.Viewer.MinFov != 20 || cfg.Viewer.MaxFov != 100 {
		t.Errorf("expected fov limits 20..100, got %v..%v", cfg.Viewer.MinFov, cfg.Viewer.MaxFov)
	}
	if cfg.Viewer.MouseSensitivity != 0.25 {
		t.Errorf("expected mouse sensitivity 0.25, got %v", cfg.Viewer.MouseSensitivity)
	}
	// Untouched keys keep their defaults.
	if cfg.Viewer.TouchSensitivity != 0.5 {
		t.Errorf("expected default touch sensitivity 0.5, got %v", cfg.Viewer.TouchSensitivity)
	}

	want := []string{"lobby_east.jpg", "roof.webp"}
	if !reflect.DeepEqual(cfg.Panoramas.Images, want) {
		t.Errorf("expected images %v, got %v", want, cfg.Panoramas.Images)
	}
	if cfg.Panoramas.Dir != "/srv/panos" {
		t.Errorf("expected dir /srv/panos, got %s", cfg.Panoramas.Dir)
	}

	if cfg.Capture.Format != "webp" {
		t.Errorf("expected capture format webp, got %s", cfg.Capture.Format)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
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
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		verify func(*testing.T, *Config)
	}{
		{
			name: "inverted fov limits are swapped",
			mutate: func(c *Config) {
				c.Viewer.MinFov = 110
				c.Viewer.MaxFov = 40
			},
			verify: func(t *testing.T, c *Config) {
				if c.Viewer.MinFov != 40 || c.Viewer.MaxFov != 110 {
					t.Errorf("expected 40..110, got %v..%v", c.Viewer.MinFov, c.Viewer.MaxFov)
				}
			},
		},
		{
			name: "non-positive sensitivities fall back",
			mutate: func(c *Config) {
				c.Viewer.MouseSensitivity = 0
				c.Viewer.PinchSensitivity = -1
			},
			verify: func(t *testing.T, c *Config) {
				if c.Viewer.MouseSensitivity != 0.3 {
					t.Errorf("expected mouse sensitivity 0.3, got %v", c.Viewer.MouseSensitivity)
				}
				if c.Viewer.PinchSensitivity != 0.5 {
					t.Errorf("expected pinch sensitivity 0.5, got %v", c.Viewer.PinchSensitivity)
				}
			},
		},
		{
			name: "unknown capture format",
			mutate: func(c *Config) {
				c.Capture.Format = "tiff"
			},
			verify: func(t *testing.T, c *Config) {
				if c.Capture.Format != "png" {
					t.Errorf("expected png, got %s", c.Capture.Format)
				}
			},
		},
		{
			name: "zero window size",
			mutate: func(c *Config) {
				c.Graphics.Width = 0
				c.Graphics.Height = -5
			},
			verify: func(t *testing.T, c *Config) {
				if c.Graphics.Width != 1280 || c.Graphics.Height != 720 {
					t.Errorf("expected 1280x720, got %dx%d", c.Graphics.Width, c.Graphics.Height)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			cfg.Validate()
			tt.verify(t, cfg)
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

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
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
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
			},
			teardown: func() {
				*flagDebug = false
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
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "images and list flags",
			setup: func() {
				*flagImagesDir = "/data/panos"
				*flagList = " a.png, b_c.jpg ,,"
			},
			verify: func(cfg *Config) {
				if cfg.Panoramas.Dir != "/data/panos" {
					t.Errorf("expected dir /data/panos, got %s", cfg.Panoramas.Dir)
				}
				want := []string{"a.png", "b_c.jpg"}
				if !reflect.DeepEqual(cfg.Panoramas.Images, want) {
					t.Errorf("expected images %v, got %v", want, cfg.Panoramas.Images)
				}
			},
			teardown: func() {
				*flagImagesDir = ""
				*flagList = ""
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
viewer:
  min_fov: 130
  max_fov: 50
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
	// Load validates the result.
	if cfg.Viewer.MinFov != 50 || cfg.Viewer.MaxFov != 130 {
		t.Errorf("expected validated fov limits 50..130, got %v..%v", cfg.Viewer.MinFov, cfg.Viewer.MaxFov)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Panoramas.Images = []string{"only.jpg"}
	cfg.Viewer.MaxFov = 100
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("expected reloaded config to match saved\nsaved:  %+v\nloaded: %+v", cfg, loaded)
	}
}
