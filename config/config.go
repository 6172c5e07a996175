// Package config loads optional tool configuration for bisync-suffix from
// a YAML file. All fields are optional; unset fields fall back to the
// expansion defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okhsunrog/bisync-suffix-macro/expand"
)

// Config mirrors the bisync.yaml file.
type Config struct {
	// Macro is the invocation name scanned for in host sources.
	Macro string `yaml:"macro"`
	// Features names the two build-time selection flags.
	Features struct {
		Async    string `yaml:"async"`
		Blocking string `yaml:"blocking"`
	} `yaml:"features"`
}

// Load reads and parses the configuration file at path. Unknown fields are
// rejected.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := Parse(data, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML configuration data into c.
func Parse(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Options converts the configuration into expansion options, leaving unset
// fields to their defaults.
func (c Config) Options() expand.Options {
	return expand.Options{
		MacroName:       c.Macro,
		AsyncFeature:    c.Features.Async,
		BlockingFeature: c.Features.Blocking,
	}
}
