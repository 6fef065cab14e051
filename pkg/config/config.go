// Package config loads and validates the edgelit configuration file and
// resolves it into the core types consumed by border instances.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "edgelit", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "edgelit", "config.yaml")
}

// Config is the parsed configuration file.
type Config struct {
	Global      GlobalConfig `yaml:"global"`
	WindowRules []RuleConfig `yaml:"window_rules"`
}

// GlobalConfig holds the border defaults applied to every window that no
// rule overrides.
type GlobalConfig struct {
	BorderWidth   *float64         `yaml:"border_width,omitempty"`
	BorderOffset  *float64         `yaml:"border_offset,omitempty"`
	BorderStyle   string           `yaml:"border_style,omitempty"`
	BorderRadius  *float64         `yaml:"border_radius,omitempty"`
	ActiveColor   *ColorSpec       `yaml:"active_color,omitempty"`
	InactiveColor *ColorSpec       `yaml:"inactive_color,omitempty"`
	// Delays are in milliseconds.
	InitializeDelay *int             `yaml:"initialize_delay,omitempty"`
	RestoreDelay    *int             `yaml:"restore_delay,omitempty"`
	Animations      AnimationsConfig `yaml:"animations"`
	Effects         EffectsConfig    `yaml:"effects"`
}

// AnimationsConfig lists the animations per focus state.
type AnimationsConfig struct {
	FPS      *int              `yaml:"fps,omitempty"`
	Active   []AnimationConfig `yaml:"active"`
	Inactive []AnimationConfig `yaml:"inactive"`
}

// AnimationConfig is one configured animation.
type AnimationConfig struct {
	Kind string `yaml:"kind"`
	// Duration is in milliseconds; zero means the kind's default.
	Duration float64 `yaml:"duration,omitempty"`
	Easing   string  `yaml:"easing,omitempty"`
}

// EffectsConfig lists the effects per focus state.
type EffectsConfig struct {
	Active   []EffectConfig `yaml:"active"`
	Inactive []EffectConfig `yaml:"inactive"`
}

// EffectConfig is one configured glow or shadow.
type EffectConfig struct {
	Kind        string     `yaml:"kind"`
	Radius      float64    `yaml:"radius,omitempty"`
	Opacity     float64    `yaml:"opacity,omitempty"`
	Translation [2]float64 `yaml:"translation,omitempty"`
	Color       string     `yaml:"color,omitempty"`
}

// ColorSpec is either a solid hex color string or a gradient mapping:
//
//	active_color: "#89b4fa"
//	active_color:
//	  gradient:
//	    colors: ["#89b4fa", "#cba6f7"]
//	    angle: 45
type ColorSpec struct {
	Solid    string
	Gradient *GradientSpec
}

// GradientSpec describes a linear gradient. Direction is either an angle
// in degrees or explicit normalized start/end coordinates.
type GradientSpec struct {
	Colors []string    `yaml:"colors"`
	Angle  *float64    `yaml:"angle,omitempty"`
	Start  *[2]float64 `yaml:"start,omitempty"`
	End    *[2]float64 `yaml:"end,omitempty"`
}

// UnmarshalYAML accepts both scalar and mapping forms.
func (c *ColorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Solid)
	case yaml.MappingNode:
		var wrapper struct {
			Gradient *GradientSpec `yaml:"gradient"`
		}
		if err := node.Decode(&wrapper); err != nil {
			return err
		}
		if wrapper.Gradient == nil {
			return fmt.Errorf("color mapping must contain a gradient key")
		}
		c.Gradient = wrapper.Gradient
		return nil
	default:
		return fmt.Errorf("color must be a string or a gradient mapping")
	}
}

// RuleConfig is one window rule: a match predicate, an enable flag and
// optional per-field overrides of the global defaults.
type RuleConfig struct {
	Match    string `yaml:"match"`
	Strategy string `yaml:"strategy,omitempty"`
	Value    string `yaml:"value"`
	Enabled  *bool  `yaml:"enabled,omitempty"`

	BorderWidth     *float64          `yaml:"border_width,omitempty"`
	BorderOffset    *float64          `yaml:"border_offset,omitempty"`
	BorderStyle     string            `yaml:"border_style,omitempty"`
	BorderRadius    *float64          `yaml:"border_radius,omitempty"`
	ActiveColor     *ColorSpec        `yaml:"active_color,omitempty"`
	InactiveColor   *ColorSpec        `yaml:"inactive_color,omitempty"`
	InitializeDelay *int              `yaml:"initialize_delay,omitempty"`
	RestoreDelay    *int              `yaml:"restore_delay,omitempty"`
	Animations      *AnimationsConfig `yaml:"animations,omitempty"`
	Effects         *EffectsConfig    `yaml:"effects,omitempty"`
}

// Load reads and parses the configuration file. A missing file yields the
// built-in defaults rather than an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
