// Package config provides configuration loading for the particle flow effect.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Particles ParticlesConfig `yaml:"particles"`
	Trail     TrailConfig     `yaml:"trail"`
	Depth     DepthConfig     `yaml:"depth"`
	Render    RenderConfig    `yaml:"render"`
	Pattern   PatternConfig   `yaml:"pattern"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	HUD       HUDConfig       `yaml:"hud"`
}

// ScreenConfig holds viewport settings and the extents a resize is clamped to.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds brightness grid parameters.
type FieldConfig struct {
	Detail int `yaml:"detail"` // Source pixels per grid cell side
}

// ParticlesConfig holds particle creation and motion parameters.
type ParticlesConfig struct {
	Count          int     `yaml:"count"`
	Size           int     `yaml:"size"`            // Disc radius in pixels
	MaxSpeed       float64 `yaml:"max_speed"`       // Speed at brightness 1.0
	Drift          float64 `yaml:"drift"`           // Horizontal drift at brightness 0.0
	VerticalScale  float64 `yaml:"vertical_scale"`  // Multiplier on the fixed vertical velocity
	VelocityJitter float64 `yaml:"velocity_jitter"` // Per-particle velocity drawn from [-j, j]
	MinAlpha       float64 `yaml:"min_alpha"`       // Lower bound of the initial alpha
	FewCount       int     `yaml:"few_count"`       // Particles shown by the few-particles stage
}

// TrailConfig holds trail accumulator parameters.
type TrailConfig struct {
	Fade          float64 `yaml:"fade"`           // Fraction of alpha removed per frame
	HistoryLength int     `yaml:"history_length"` // Per-particle history capacity
}

// DepthConfig holds the red/blue pseudo-3-D parameters.
type DepthConfig struct {
	Enabled         bool    `yaml:"enabled"`
	Offset          float64 `yaml:"offset"`           // Max horizontal offset at depth 1.0
	ParticleOpacity float64 `yaml:"particle_opacity"` // 0-255 multiplier for particle discs
	StampOpacity    float64 `yaml:"stamp_opacity"`    // 0-255 multiplier for trail stamps
	HistoryOpacity  float64 `yaml:"history_opacity"`  // 0-255 multiplier for history trails
}

// RGB is a YAML-friendly opaque colour written as [r, g, b].
type RGB [3]uint8

// RGBA returns the colour with the given alpha, non-premultiplied.
func (c RGB) RGBA(a uint8) color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: a}
}

// RenderConfig holds stage rendering parameters.
type RenderConfig struct {
	ParticleOpacity float64 `yaml:"particle_opacity"` // 0-255 multiplier for particle discs
	StampOpacity    float64 `yaml:"stamp_opacity"`    // 0-255 multiplier for trail stamps
	HistoryOpacity  float64 `yaml:"history_opacity"`  // Scale applied to history trail alpha
	HistoryTrails   bool    `yaml:"history_trails"`   // Draw per-particle history in the alpha stage
	Background      RGB     `yaml:"background"`
	Particle        RGB     `yaml:"particle"`
	Red             RGB     `yaml:"red"`
	Blue            RGB     `yaml:"blue"`
	GridLine        RGB     `yaml:"grid_line"`
	HUD             RGB     `yaml:"hud"`
}

// PatternConfig selects the procedural image used when no source image is loaded.
type PatternConfig struct {
	Kind          string  `yaml:"kind"` // "spiral" or "perlin"
	PerlinAlpha   float64 `yaml:"perlin_alpha"`
	PerlinBeta    float64 `yaml:"perlin_beta"`
	PerlinOctaves int32   `yaml:"perlin_octaves"`
	PerlinScale   float64 `yaml:"perlin_scale"`
}

// TelemetryConfig holds performance reporting parameters.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
	LogInterval int `yaml:"log_interval"` // Ticks between perf log lines (0 disables)
}

// HUDConfig holds status overlay parameters.
type HUDConfig struct {
	BannerSeconds float64 `yaml:"banner_seconds"` // Stage banner fade duration
	CompactBelow  int     `yaml:"compact_below"`  // Viewport width under which the short status is used
}

// Pattern kinds.
const (
	PatternSpiral = "spiral"
	PatternPerlin = "perlin"
)

// Default returns the embedded defaults. Panics if the embedded file is invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make the simulation meaningless.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.Detail <= 0 {
		errs = append(errs, fmt.Errorf("field.detail must be positive, got %d", c.Field.Detail))
	}
	if c.Particles.Count < 0 {
		errs = append(errs, fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count))
	}
	if c.Particles.Size <= 0 {
		errs = append(errs, fmt.Errorf("particles.size must be positive, got %d", c.Particles.Size))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	if c.Screen.MinWidth > c.Screen.MaxWidth || c.Screen.MinHeight > c.Screen.MaxHeight {
		errs = append(errs, errors.New("screen min extents exceed max extents"))
	}
	if c.Trail.Fade < 0 || c.Trail.Fade > 1 {
		errs = append(errs, fmt.Errorf("trail.fade must be in [0,1], got %g", c.Trail.Fade))
	}
	if c.Trail.HistoryLength <= 0 {
		errs = append(errs, fmt.Errorf("trail.history_length must be positive, got %d", c.Trail.HistoryLength))
	}
	switch c.Pattern.Kind {
	case PatternSpiral, PatternPerlin:
	default:
		errs = append(errs, fmt.Errorf("pattern.kind %q is not one of spiral, perlin", c.Pattern.Kind))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Clone returns an independent copy. Config holds only value fields, so a
// shallow copy shares nothing with the original.
func (c *Config) Clone() *Config {
	dup := *c
	return &dup
}

// ClampViewport clamps a requested viewport size to the configured extents.
func (c *Config) ClampViewport(w, h int) (int, int) {
	w = max(c.Screen.MinWidth, min(c.Screen.MaxWidth, w))
	h = max(c.Screen.MinHeight, min(c.Screen.MaxHeight, h))
	return w, h
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
