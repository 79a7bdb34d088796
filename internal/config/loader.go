package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileNames lists the files searched for configuration, in order.
var configFileNames = []string{
	".smartlog.yml",
	"smartlog.yml",
}

// LoadFromFile reads and parses a smartlog configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses smartlog configuration from raw YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Load resolves the effective configuration: defaults, overlaid with the
// file at configPath if given, otherwise with the first config file found in
// workDir.
func Load(workDir, configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		configPath = findConfigFile(workDir)
	}
	if configPath == "" {
		return cfg, nil
	}

	fileCfg, err := LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Merge(fileCfg), nil
}

// findConfigFile returns the first config file present in workDir, or "".
func findConfigFile(workDir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
