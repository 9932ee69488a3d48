// Package config loads the scaffold's yaml configuration. Every field has a default, so a missing file or a partial
// file is valid; Validate rejects values the camera or renderer cannot use.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-scaffold/common"
	"gopkg.in/yaml.v3"
)

// maxConfigSize bounds the file size Load will read.
const maxConfigSize = 1024 * 1024

// Config is the root of the yaml document.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Renderer RendererConfig `yaml:"renderer"`
	Grid     GridConfig     `yaml:"grid"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Texture  TextureConfig  `yaml:"texture"`
	Shader   ShaderConfig   `yaml:"shader"`
}

// WindowConfig configures the native window and the frame loop.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// MinWidth and MinHeight bound interactive resizing; 0 keeps the window default.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	// MaxWidth and MaxHeight bound interactive resizing; 0 leaves the axis unbounded.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	// FrameLimit caps frames per second; 0 leaves the loop uncapped.
	FrameLimit int  `yaml:"frame_limit"`
	Profile    bool `yaml:"profile"`
}

// CameraConfig configures the initial camera and the controller speed.
type CameraConfig struct {
	Eye         [3]float32 `yaml:"eye"`
	Target      [3]float32 `yaml:"target"`
	Up          [3]float32 `yaml:"up"`
	FovYDegrees float32    `yaml:"fovy_degrees"`
	ZNear       float32    `yaml:"znear"`
	ZFar        float32    `yaml:"zfar"`
	Speed       float32    `yaml:"speed"`
}

// RendererConfig configures the GPU backend.
type RendererConfig struct {
	ClearColor           [4]float64 `yaml:"clear_color"`
	PresentMode          string     `yaml:"present_mode"`
	ForceFallbackAdapter bool       `yaml:"force_fallback_adapter"`
	MSAA                 bool       `yaml:"msaa"`
}

// PipelineConfig configures the fixed-function state of the scene pipeline.
type PipelineConfig struct {
	// CullMode is one of back, front or none.
	CullMode string `yaml:"cull_mode"`
	// FrontFace is ccw or cw.
	FrontFace  string `yaml:"front_face"`
	DepthTest  bool   `yaml:"depth_test"`
	DepthWrite bool   `yaml:"depth_write"`
	AlphaBlend bool   `yaml:"alpha_blend"`
}

// GridConfig configures the instance grid.
type GridConfig struct {
	Rows         int        `yaml:"rows"`
	Columns      int        `yaml:"columns"`
	Displacement [3]float32 `yaml:"displacement"`
}

// TextureConfig selects an optional diffuse texture. An empty path renders untextured.
type TextureConfig struct {
	Path    string `yaml:"path"`
	Workers int    `yaml:"workers"`
}

// ShaderConfig optionally overrides the built-in WGSL shader.
type ShaderConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-scaffold",
			Width:  800,
			Height: 600,
		},
		Camera: CameraConfig{
			Eye:         [3]float32{0, 1, 2},
			Target:      [3]float32{0, 0, 0},
			Up:          [3]float32{0, 1, 0},
			FovYDegrees: 45,
			ZNear:       0.1,
			ZFar:        100,
			Speed:       0.2,
		},
		Renderer: RendererConfig{
			ClearColor:  [4]float64{0.1, 0.2, 0.3, 1.0},
			PresentMode: "vsync",
		},
		Pipeline: PipelineConfig{
			CullMode:   "back",
			FrontFace:  "ccw",
			DepthTest:  true,
			DepthWrite: true,
		},
		Grid: GridConfig{
			Rows:         10,
			Columns:      10,
			Displacement: [3]float32{5, 0, 5},
		},
		Texture: TextureConfig{
			Workers: 4,
		},
	}
}

// Load reads the yaml file at path on top of Default. An empty path or a missing file yields the defaults.
// The result is validated before it is returned.
//
// Parameters:
//   - path: the yaml file path, may be empty
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			common.Logger().Debug("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return Config{}, fmt.Errorf("config %s is %d bytes, limit is %d", path, info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	common.Logger().Info("loaded config", "path", path, "size", info.Size())
	return cfg, nil
}

// Validate reports every field the engine cannot use, joined into one error.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 || c.Window.MaxWidth < 0 || c.Window.MaxHeight < 0 {
		errs = append(errs, errors.New("window size limits must not be negative"))
	}
	if (c.Window.MaxWidth > 0 && c.Window.MaxWidth < c.Window.MinWidth) || (c.Window.MaxHeight > 0 && c.Window.MaxHeight < c.Window.MinHeight) {
		errs = append(errs, fmt.Errorf("window max size %dx%d is below min size %dx%d",
			c.Window.MaxWidth, c.Window.MaxHeight, c.Window.MinWidth, c.Window.MinHeight))
	}
	if c.Window.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("window.frame_limit %d must not be negative", c.Window.FrameLimit))
	}
	if c.Camera.ZNear <= 0 || c.Camera.ZNear >= c.Camera.ZFar {
		errs = append(errs, fmt.Errorf("camera clip planes znear=%g zfar=%g need 0 < znear < zfar", c.Camera.ZNear, c.Camera.ZFar))
	}
	if c.Camera.FovYDegrees <= 0 || c.Camera.FovYDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera.fovy_degrees %g must be in (0, 180)", c.Camera.FovYDegrees))
	}
	if c.Camera.Speed < 0 {
		errs = append(errs, fmt.Errorf("camera.speed %g must not be negative", c.Camera.Speed))
	}
	if c.Camera.Up == [3]float32{} {
		errs = append(errs, errors.New("camera.up must not be the zero vector"))
	}
	switch c.Renderer.PresentMode {
	case "vsync", "uncapped":
	default:
		errs = append(errs, fmt.Errorf("renderer.present_mode %q must be vsync or uncapped", c.Renderer.PresentMode))
	}
	for i, v := range c.Renderer.ClearColor {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("renderer.clear_color[%d] %g must be in [0, 1]", i, v))
		}
	}
	switch c.Pipeline.CullMode {
	case "back", "front", "none":
	default:
		errs = append(errs, fmt.Errorf("pipeline.cull_mode %q must be back, front or none", c.Pipeline.CullMode))
	}
	switch c.Pipeline.FrontFace {
	case "ccw", "cw":
	default:
		errs = append(errs, fmt.Errorf("pipeline.front_face %q must be ccw or cw", c.Pipeline.FrontFace))
	}
	if c.Grid.Rows <= 0 || c.Grid.Columns <= 0 {
		errs = append(errs, fmt.Errorf("grid %dx%d must be positive", c.Grid.Rows, c.Grid.Columns))
	}
	if c.Texture.Workers < 0 {
		errs = append(errs, fmt.Errorf("texture.workers %d must not be negative", c.Texture.Workers))
	}
	return errors.Join(errs...)
}
