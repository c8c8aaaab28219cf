// Package config loads validator settings from a YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the file-configurable settings of a validation run.
// Command-line flags override whatever the file provides.
type Config struct {
	// DataDir is the root of the brand hierarchy.
	DataDir string `yaml:"data_dir"`
	// StoresDir is the root of the store catalog.
	StoresDir string `yaml:"stores_dir"`
	// SchemasDir overrides the embedded schemas when set.
	SchemasDir string `yaml:"schemas_dir"`

	// Workers is the validation pool size. Zero selects the default.
	Workers int `yaml:"workers"`

	Logo LogoConfig `yaml:"logo"`

	Checks ChecksConfig `yaml:"checks"`
}

// LogoConfig bounds raster logo dimensions in pixels.
type LogoConfig struct {
	MinSize uint32 `yaml:"min_size"`
	MaxSize uint32 `yaml:"max_size"`
}

// ChecksConfig enables or disables individual check families.
type ChecksConfig struct {
	JSONFiles    bool `yaml:"json_files"`
	Logos        bool `yaml:"logos"`
	FolderNames  bool `yaml:"folder_names"`
	StoreIDs     bool `yaml:"store_ids"`
	GTIN         bool `yaml:"gtin"`
	MissingFiles bool `yaml:"missing_files"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir:   "data",
		StoresDir: "stores",
		Logo:      LogoConfig{MinSize: 100, MaxSize: 400},
		Checks: ChecksConfig{
			JSONFiles:    true,
			Logos:        true,
			FolderNames:  true,
			StoreIDs:     true,
			GTIN:         true,
			MissingFiles: true,
		},
	}
}

// Load reads a YAML config file on top of the defaults. Unknown keys are
// rejected so a typoed setting fails instead of being silently ignored.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Logo.MinSize > c.Logo.MaxSize {
		return fmt.Errorf("logo min_size %d exceeds max_size %d", c.Logo.MinSize, c.Logo.MaxSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}
