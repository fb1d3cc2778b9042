// Package config holds the run configuration of the headless
// emulator. A configuration file supplies the defaults, which the
// command line flags override.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"gopkg.in/yaml.v3"
)

// Config is a headless run.
type Config struct {
	// ROM is the cartridge to run, optionally compressed.
	ROM string `yaml:"rom"`
	// Boot is a boot ROM to run before the cartridge. "minimal"
	// selects the built-in boot program.
	Boot string `yaml:"boot"`

	// Frames is the number of frames to run.
	Frames int `yaml:"frames"`
	// Keys is a schedule of key presses, e.g. "start:60-65,a:120".
	Keys string `yaml:"keys"`
	// Break is a Lua script defining should_pause(cpu).
	Break string `yaml:"break"`

	// Screenshot is written as PNG after the last frame.
	Screenshot string `yaml:"screenshot"`
	Scale      int    `yaml:"scale"`
	Palette    string `yaml:"palette"`
	// WAV receives the sound of the whole run.
	WAV string `yaml:"wav"`
	// Serial receives the bytes sent over the serial port, "-" for
	// stdout.
	Serial string `yaml:"serial"`

	// Saves is the folder for battery saves. Empty disables them.
	Saves    string `yaml:"saves"`
	StateIn  string `yaml:"state_in"`
	StateOut string `yaml:"state_out"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Frames:   60,
		Scale:    1,
		Palette:  "greyscale",
		LogLevel: "info",
	}
}

// Load reads a YAML configuration on top of the defaults. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for a run.
func (c *Config) Validate() error {
	if c.ROM == "" {
		return fmt.Errorf("config: no rom given")
	}
	if c.Frames <= 0 {
		return fmt.Errorf("config: frames must be > 0")
	}
	if c.Scale < 1 || c.Scale > 16 {
		return fmt.Errorf("config: scale must be between 1 and 16")
	}
	if _, err := palette.ByName(c.Palette); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
