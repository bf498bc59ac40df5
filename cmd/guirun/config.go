package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/uiforge/gui-runtime/guictx"
)

const defaultConfigFile = "guirun.yaml"

// Config represents the optional guirun.yaml configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Context ContextConfig `yaml:"context"`
}

// EngineConfig selects the engine backend. An empty library path means the
// in-process engine.
type EngineConfig struct {
	Library string `yaml:"library,omitempty"`
}

// ContextConfig holds initial values for the context string fields. Empty
// values leave the field unset.
type ContextConfig struct {
	IniFilename  string `yaml:"ini_filename,omitempty"`
	LogFilename  string `yaml:"log_filename,omitempty"`
	PlatformName string `yaml:"platform_name,omitempty"`
	RendererName string `yaml:"renderer_name,omitempty"`
}

// LoadConfig reads a YAML config file. With an empty path the well-known
// guirun.yaml is tried and a missing file yields the zero config; an
// explicitly named file must exist.
func LoadConfig(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) contextConfig() *guictx.Config {
	return &guictx.Config{
		IniFilename:  c.Context.IniFilename,
		LogFilename:  c.Context.LogFilename,
		PlatformName: c.Context.PlatformName,
		RendererName: c.Context.RendererName,
	}
}
