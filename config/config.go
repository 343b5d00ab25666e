// Package config provides configuration loading and access for the sketch.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Field     FieldConfig     `yaml:"field"`
	Picking   PickingConfig   `yaml:"picking"`
	Press     PressConfig     `yaml:"press"`
	Wheel     WheelConfig     `yaml:"wheel"`
	Loading   LoadingConfig   `yaml:"loading"`
	Render    RenderConfig    `yaml:"render"`
	Assets    AssetsConfig    `yaml:"assets"`
	Shaders   ShadersConfig   `yaml:"shaders"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// CameraConfig holds the perspective camera parameters.
type CameraConfig struct {
	FOVDeg   float32    `yaml:"fov_deg"` // vertical field of view
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

// FieldConfig holds the particle grid layout and per-particle random ranges.
// Ranges are half-open: [min, max).
type FieldConfig struct {
	Size      int     `yaml:"size"`    // particles per side
	Spacing   float32 `yaml:"spacing"` // world units between neighbours
	Seed      int64   `yaml:"seed"`    // 0 = time-based
	SpeedMin  float32 `yaml:"speed_min"`
	SpeedMax  float32 `yaml:"speed_max"`
	OffsetMin float32 `yaml:"offset_min"`
	OffsetMax float32 `yaml:"offset_max"`
	PressMin  float32 `yaml:"press_min"`
	PressMax  float32 `yaml:"press_max"`
}

// PickingConfig holds the extents of the invisible picking plane at z=0.
type PickingConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// PressConfig holds the press indicator animation.
type PressConfig struct {
	Duration  float64 `yaml:"duration"` // seconds
	Amplitude float32 `yaml:"amplitude"`
	Period    float32 `yaml:"period"`
}

// WheelConfig holds scroll accumulation parameters.
type WheelConfig struct {
	Divisor       float32 `yaml:"divisor"`         // move += deltaY / divisor
	PixelsPerLine float32 `yaml:"pixels_per_line"` // GLFW scroll lines to wheel delta
}

// LoadingConfig holds loading bar parameters.
type LoadingConfig struct {
	Start float64 `yaml:"start"` // progress reported before assets load
	Hold  float64 `yaml:"hold"`  // seconds the full bar stays visible
}

// RenderConfig holds render state and static uniforms.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	Progress   float32    `yaml:"progress"`    // t1/t2 blend factor
	PointScale float32    `yaml:"point_scale"` // gl_PointSize numerator
}

// AssetsConfig holds texture paths. Empty paths use the embedded images.
type AssetsConfig struct {
	Texture1 string `yaml:"texture1"`
	Texture2 string `yaml:"texture2"`
	Mask     string `yaml:"mask"`
}

// ShadersConfig holds shader source settings.
type ShadersConfig struct {
	Dir        string `yaml:"dir"` // empty = embedded sources
	Watch      bool   `yaml:"watch"`
	DebounceMs int    `yaml:"debounce_ms"`
}

// TelemetryConfig holds frame statistics parameters.
type TelemetryConfig struct {
	Window  int    `yaml:"window"` // frames kept for the stats panel
	CSVPath string `yaml:"csv_path"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FOVRad        float32       // Camera.FOVDeg in radians
	PressDuration time.Duration // Press.Duration as a duration
	LoadingHold   time.Duration // Loading.Hold as a duration
	Debounce      time.Duration // Shaders.DebounceMs as a duration
	ParticleCount int           // Field.Size squared
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Field.Size < 1 {
		return fmt.Errorf("field.size must be positive, got %d", c.Field.Size)
	}
	if c.Wheel.Divisor == 0 {
		return fmt.Errorf("wheel.divisor must be non-zero")
	}
	if c.Press.Duration <= 0 {
		return fmt.Errorf("press.duration must be positive, got %v", c.Press.Duration)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FOVRad = c.Camera.FOVDeg * math.Pi / 180
	c.Derived.PressDuration = time.Duration(c.Press.Duration * float64(time.Second))
	c.Derived.LoadingHold = time.Duration(c.Loading.Hold * float64(time.Second))
	c.Derived.Debounce = time.Duration(c.Shaders.DebounceMs) * time.Millisecond
	c.Derived.ParticleCount = c.Field.Size * c.Field.Size
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
