// Package config loads demolint configuration from YAML or TOML files.
//
// Example of .demolint.yaml:
//
//	workers: 4
//	options:
//	  interfaceSuffix: IMyInterface
//	  requiredAttribute: MyAttribute
//	  disposableInterfaceName: IDisposable
//	  checkAssignments: true
//	rules:
//	  DEMO001:
//	    enabled: false
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sirkon/demolint/internal/rules"
)

// FileNames are looked up by [Find], in this order.
var FileNames = []string{".demolint.yaml", ".demolint.yml", ".demolint.toml"}

// Config is the demolint configuration.
type Config struct {
	// Workers limits how many rule callbacks run at once. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" toml:"workers"`

	// Options configures builtin rules.
	Options rules.Options `yaml:"options" toml:"options"`

	// Rules enables or disables rules by their ids.
	Rules map[string]RuleSetting `yaml:"rules" toml:"rules"`
}

// RuleSetting overrides rule defaults.
type RuleSetting struct {
	Enabled *bool `yaml:"enabled" toml:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Options: rules.DefaultOptions(),
	}
}

// RuleStates returns explicit rule enable states.
func (c Config) RuleStates() map[string]bool {
	out := make(map[string]bool)
	for id, s := range c.Rules {
		if s.Enabled != nil {
			out[id] = *s.Enabled
		}
	}

	return out
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if err := c.Options.Validate(); err != nil {
		return fmt.Errorf("options: %w", err)
	}

	return nil
}

// Load reads configuration from a file. The format is chosen by the file extension.
// Settings missing in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	case ".toml":
		cfg, err = ParseTOML(data)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseYAML parses YAML configuration. Unknown fields are errors.
func ParseYAML(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseTOML parses TOML configuration. Unknown keys are errors.
func ParseTOML(data []byte) (Config, error) {
	cfg := Default()

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Find searches for a config file in dir and its parents. It returns an empty path when
// there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
