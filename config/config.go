package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thejhh/dustfs"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when the YAML is malformed or holds invalid values.
var ErrInvalidConfig = errors.New("config: configuration is invalid")

// Delims are the engine action delimiters.
type Delims struct {
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
}

// Config is the YAML shape of a registry configuration.
type Config struct {
	Dirs       []string `yaml:"dirs"`
	Extension  string   `yaml:"extension"`
	Debug      bool     `yaml:"debug"`
	Delims     Delims   `yaml:"delims"`
	MissingKey string   `yaml:"missing_key"`
}

var missingKeyModes = map[string]bool{"": true, "default": true, "invalid": true, "zero": true, "error": true}

// ParseBytes parses and validates a YAML configuration.
func ParseBytes(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseFile reads and parses a configuration file.
func ParseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return ParseBytes(data)
}

// Validate checks dirs, extension, delimiters and missing_key.
func (c *Config) Validate() error {
	for i, dir := range c.Dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%w: dirs[%d] is empty", ErrInvalidConfig, i)
		}
	}
	if strings.ContainsAny(c.Extension, "/\\") {
		return fmt.Errorf("%w: extension %q contains a path separator", ErrInvalidConfig, c.Extension)
	}
	if (c.Delims.Left == "") != (c.Delims.Right == "") {
		return fmt.Errorf("%w: delims need both left and right", ErrInvalidConfig)
	}
	if !missingKeyModes[c.MissingKey] {
		return fmt.Errorf("%w: missing_key %q, want default, zero or error", ErrInvalidConfig, c.MissingKey)
	}
	return nil
}

// Options converts the configuration into registry options. Extra options are appended after the configured ones.
func (c *Config) Options(extra ...dustfs.Option) []dustfs.Option {
	var engineOpts []dustfs.TextEngineOption
	if c.Delims.Left != "" {
		engineOpts = append(engineOpts, dustfs.WithDelims(c.Delims.Left, c.Delims.Right))
	}
	if c.MissingKey != "" {
		engineOpts = append(engineOpts, dustfs.WithMissingKey(c.MissingKey))
	}
	opts := []dustfs.Option{dustfs.WithDebug(c.Debug)}
	if c.Extension != "" {
		opts = append(opts, dustfs.WithExtension(c.Extension))
	}
	if len(engineOpts) > 0 {
		opts = append(opts, dustfs.WithEngine(dustfs.NewTextEngine(engineOpts...)))
	}
	return append(opts, extra...)
}

// NewRegistry creates a Registry from the configuration and registers its dirs.
// Directory scans run in the background as with Registry.RegisterDirs.
func (c *Config) NewRegistry(extra ...dustfs.Option) *dustfs.Registry {
	r := dustfs.New(c.Options(extra...)...)
	if len(c.Dirs) > 0 {
		r.RegisterDirs(c.Dirs...)
	}
	return r
}
