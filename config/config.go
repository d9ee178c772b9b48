// Package config loads and watches the desktop configuration file.
// Defaults live in code; a TOML file overrides them; command-line
// flags override the file. Unknown keys are rejected so typos fail
// loudly instead of silently keeping defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/termdesk/parameter"
)

// BellConfig controls the bell service
type BellConfig struct {
	Enabled bool `toml:"enabled"`
	Audio   bool `toml:"audio"` // False degrades to visual bell only
}

// Config is the desktop runtime configuration
type Config struct {
	FPS          int    `toml:"fps"`
	ColorMode    string `toml:"color_mode"`    // auto, 256, truecolor
	DiffStrategy string `toml:"diff_strategy"` // adaptive, cell, line
	MouseEnabled bool   `toml:"mouse_enabled"`
	Theme        string `toml:"theme"` // Theme file path; empty = built-in

	Bell BellConfig `toml:"bell"`

	// Bindings maps chord strings to action names, merged over the
	// defaults. An empty action unbinds the chord.
	Bindings map[string]string `toml:"bindings"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FPS:          parameter.DefaultFPS,
		ColorMode:    "auto",
		DiffStrategy: "adaptive",
		MouseEnabled: true,
		Bell:         BellConfig{Enabled: true, Audio: true},
	}
}

// Load reads path over the defaults. A missing file returns the
// defaults without error; a malformed file returns an error and the
// caller keeps whatever config it was running with.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Default(), fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.FPS < parameter.MinFPS || c.FPS > parameter.MaxFPS {
		return fmt.Errorf("fps %d out of range [%d, %d]", c.FPS, parameter.MinFPS, parameter.MaxFPS)
	}
	switch c.ColorMode {
	case "auto", "256", "truecolor", "24bit":
	default:
		return fmt.Errorf("unknown color_mode %q", c.ColorMode)
	}
	switch c.DiffStrategy {
	case "", "adaptive", "cell", "cells", "line", "row":
	default:
		return fmt.Errorf("unknown diff_strategy %q", c.DiffStrategy)
	}
	return nil
}
