// Package config loads the masterfx application settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-master/dsp/effectchain"
	"github.com/cwbudde/algo-master/engine"
	"github.com/cwbudde/algo-master/internal/logging"
)

// Config holds every setting the CLI reads from its configuration file.
type Config struct {
	Engine   engine.Config    `yaml:"engine"`
	LogLevel string           `yaml:"logLevel"`
	Rack     effectchain.Rack `yaml:"rack,omitempty"`

	// RackFile names a JSON rack used when Rack is empty.
	RackFile string `yaml:"rackFile,omitempty"`

	// ImpulseResponses are WAV files addressed by the CAB_SIM "ir" index.
	ImpulseResponses []string `yaml:"impulseResponses,omitempty"`

	// Automation is a Lua script that schedules parameter events for render.
	Automation string `yaml:"automation,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Engine:   engine.DefaultConfig(),
		LogLevel: logging.DefaultLevel,
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. Relative paths inside the file resolve against its directory.
func Load(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := cfg.resolve(filepath.Dir(path)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the engine settings, the log level and the inline rack.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if len(c.Rack) > 0 && c.RackFile != "" {
		return errors.New("config: rack and rackFile are mutually exclusive")
	}

	return c.Rack.Validate()
}

// LoadRack returns the inline rack, or the one read from RackFile.
func (c *Config) LoadRack() (effectchain.Rack, error) {
	if c.RackFile == "" {
		return c.Rack.Clone(), nil
	}

	return LoadRack(c.RackFile)
}

// LoadRack reads a JSON rack file.
func LoadRack(path string) (effectchain.Rack, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	rack, err := effectchain.ParseRack(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return rack, nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("config: expand %q: %w", path, err)
	}

	return expanded, nil
}

func (c *Config) resolve(base string) error {
	var err error

	if c.RackFile != "" {
		if c.RackFile, err = resolvePath(base, c.RackFile); err != nil {
			return err
		}
	}

	if c.Automation != "" {
		if c.Automation, err = resolvePath(base, c.Automation); err != nil {
			return err
		}
	}

	for i, p := range c.ImpulseResponses {
		if c.ImpulseResponses[i], err = resolvePath(base, p); err != nil {
			return err
		}
	}

	return nil
}

func resolvePath(base, path string) (string, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return "", err
	}

	if filepath.IsAbs(path) {
		return path, nil
	}

	return filepath.Join(base, path), nil
}
