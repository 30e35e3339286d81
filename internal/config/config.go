// Package config loads and saves the rogled YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/render"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
	"github.com/coreman2200/rogmatrix/internal/sequence"
)

// Device selects the transport for one device. Dev overrides the node
// found by VID/PID lookup.
type Device struct {
	Driver string `yaml:"driver"` // "usb" | "hidraw" | "hid" | "sim"
	Dev    string `yaml:"dev,omitempty"`
}

// Events maps daemon events to the AniMe actions played on them. System
// loops; the others play once.
type Events struct {
	System   []sequence.Loader `yaml:"system,omitempty"`
	Boot     []sequence.Loader `yaml:"boot,omitempty"`
	Wake     []sequence.Loader `yaml:"wake,omitempty"`
	Shutdown []sequence.Loader `yaml:"shutdown,omitempty"`
}

type Anime struct {
	Device     `yaml:",inline"`
	Enabled    bool    `yaml:"enabled"`
	On         bool    `yaml:"on"`
	Boot       bool    `yaml:"boot"`
	Brightness float64 `yaml:"brightness"`
	Actions    Events  `yaml:"actions"`
}

// Mode is a builtin Aura mode in its config spelling.
type Mode struct {
	Mode      string `yaml:"mode" json:"mode"`
	Zone      string `yaml:"zone,omitempty" json:"zone,omitempty"`
	Colour1   string `yaml:"colour1,omitempty" json:"colour1,omitempty"`
	Colour2   string `yaml:"colour2,omitempty" json:"colour2,omitempty"`
	Speed     string `yaml:"speed,omitempty" json:"speed,omitempty"`
	Direction string `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// Effect parses m, starting from the mode's defaults.
func (m Mode) Effect() (aura.Effect, error) {
	mode, err := aura.ParseMode(m.Mode)
	if err != nil {
		return aura.Effect{}, err
	}
	e := aura.DefaultEffect(mode)
	if m.Zone != "" {
		if e.Zone, err = aura.ParseZone(m.Zone); err != nil {
			return aura.Effect{}, err
		}
	}
	if m.Colour1 != "" {
		if e.Colour1, err = aura.ParseColour(m.Colour1); err != nil {
			return aura.Effect{}, err
		}
	}
	if m.Colour2 != "" {
		if e.Colour2, err = aura.ParseColour(m.Colour2); err != nil {
			return aura.Effect{}, err
		}
	}
	if m.Speed != "" {
		if e.Speed, err = aura.ParseSpeed(m.Speed); err != nil {
			return aura.Effect{}, err
		}
	}
	if m.Direction != "" {
		if e.Direction, err = aura.ParseDirection(m.Direction); err != nil {
			return aura.Effect{}, err
		}
	}
	return e, nil
}

type Aura struct {
	Device     `yaml:",inline"`
	Enabled    bool                  `yaml:"enabled"`
	Brightness uint8                 `yaml:"brightness"`
	Mode       Mode                  `yaml:"mode"`
	Zoned      bool                  `yaml:"zoned"`
	Effects    []render.EffectConfig `yaml:"effects,omitempty"`
}

type Config struct {
	Addr       string        `yaml:"addr"`
	FPS        int           `yaml:"fps"`
	Board      string        `yaml:"board,omitempty"`
	LayoutsDir string        `yaml:"layouts_dir,omitempty"`
	Scheme     string        `yaml:"scheme,omitempty"` // "grid" | "diagonal"
	Shutdown   time.Duration `yaml:"shutdown_timeout,omitempty"`

	Anime Anime `yaml:"anime"`
	Aura  Aura  `yaml:"aura"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		FPS:      30,
		Shutdown: 3 * time.Second,
		Anime: Anime{
			Device:     Device{Driver: "usb"},
			Enabled:    true,
			On:         true,
			Boot:       true,
			Brightness: 1,
		},
		Aura: Aura{
			Device:     Device{Driver: "hidraw"},
			Enabled:    true,
			Brightness: 2,
			Mode:       Mode{Mode: "static", Colour1: aura.DefaultColour.String()},
		},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %v: %w", path, err, rogerr.ErrDecode)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
