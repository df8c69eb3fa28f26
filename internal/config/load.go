// internal/config/load.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/modbus-preflight/internal/layout"
)

// Load reads a YAML configuration file and parses it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse checks the document shape against the embedded schema, decodes
// it and applies defaults. Semantic validation (legality, duplicates,
// timing) is the pipeline's job, not Parse's.
func Parse(data []byte) (*Config, error) {
	if err := checkShape(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills the schema-level defaults: hub name, timeout, and
// the int16 data type for the platforms that read values.
func (c *Config) applyDefaults() {
	for i := range c.Modbus {
		h := &c.Modbus[i]
		if h.Name == "" {
			h.Name = DefaultHub
		}
		if h.Timeout == 0 {
			h.Timeout = DefaultTimeout
		}

		for _, p := range h.Platforms() {
			if p.Platform != "sensor" && p.Platform != "climate" {
				continue
			}
			for j := range *p.Entities {
				e := &(*p.Entities)[j]
				if e.DataType == "" {
					e.DataType = layout.Int16
				}
			}
		}
	}
}
