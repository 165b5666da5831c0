package main

import (
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	ExportDirectory string  `yaml:"export_directory"`
	StartZoom       float64 `yaml:"start_zoom"`
	AnchorsOnHover  bool    `yaml:"anchors_on_hover"`
	ArrowHeads      bool    `yaml:"arrow_heads"`
}

func defaultConfig() *Config {
	return &Config{
		StartZoom:      1.0,
		AnchorsOnHover: true,
		ArrowHeads:     true,
	}
}

// loadConfig reads ~/.boxwire.yaml, silently falling back to defaults when
// the file is missing or malformed.
func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}
	data, err := os.ReadFile(filepath.Join(homeDir, ".boxwire.yaml"))
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaultConfig()
	}

	if config.StartZoom < minZoom || config.StartZoom > maxZoom {
		config.StartZoom = 1.0
	}
	if config.ExportDirectory != "" {
		if home, err := os.UserHomeDir(); err == nil && config.ExportDirectory[0] == '~' {
			config.ExportDirectory = filepath.Join(home, config.ExportDirectory[1:])
		}
	}
	return config
}

func (c *Config) ExportPath(filename string) string {
	if c.ExportDirectory == "" {
		return filename
	}
	os.MkdirAll(c.ExportDirectory, 0755)
	return filepath.Join(c.ExportDirectory, filename)
}
