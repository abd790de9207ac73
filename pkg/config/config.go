// Package config loads analyzer settings from a TOML or YAML file.
//
// The file format is chosen by extension: .yaml and .yml are YAML, anything
// else is TOML. Unknown keys are rejected so typos do not pass silently.
//
//	# ~/.config/sdv/config.toml
//	solutions        = ["src/Shop.sln"]
//	exclude          = ["Microsoft.*", "System.*"]
//	include_projects = true
//	merge_projects   = false
//	package_cache    = "/mnt/nuget"
//
//	[labels]
//	IsProject = [" (project)"]
//	"*.Abstractions" = [" [abstractions]"]
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

	sdverr "github.com/andriilab/sdv/pkg/errors"
	"github.com/andriilab/sdv/pkg/filter"
	"github.com/andriilab/sdv/pkg/graph"
)

// AppName names the configuration and cache directories.
const AppName = "sdv"

// Config holds the settings a run can take from a file.
type Config struct {
	Solutions       []string            `toml:"solutions" yaml:"solutions"`
	Include         []string            `toml:"include" yaml:"include"`
	Exclude         []string            `toml:"exclude" yaml:"exclude"`
	IncludeProjects bool                `toml:"include_projects" yaml:"include_projects"`
	MergeProjects   bool                `toml:"merge_projects" yaml:"merge_projects"`
	Labels          map[string][]string `toml:"labels" yaml:"labels"`
	PackageCache    string              `toml:"package_cache" yaml:"package_cache"`
}

// DefaultConfig returns an empty configuration: no filters, no labels.
func DefaultConfig() Config {
	return Config{}
}

// Load reads the file at [DefaultPath]. A missing file yields the defaults.
func Load() (Config, error) {
	cfg, err := LoadFrom(DefaultPath())
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFrom reads and validates the file at path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &cfg)
	default:
		err = decodeTOML(data, &cfg)
	}
	if err != nil {
		return DefaultConfig(), sdverr.Wrap(sdverr.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate compiles every pattern so a bad one fails before any solution is
// read.
func (c *Config) Validate() error {
	if _, err := filter.CompileAll(c.Include); err != nil {
		return err
	}
	if _, err := filter.CompileAll(c.Exclude); err != nil {
		return err
	}
	if _, err := graph.CompileLabels(c.Labels); err != nil {
		return err
	}
	return nil
}

// DefaultPath is $XDG_CONFIG_HOME/sdv/config.toml, falling back to
// ~/.config/sdv/config.toml.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", AppName, "config.toml")
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}
