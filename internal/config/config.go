package config

import (
	"errors"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Veil. Fields are
// pointers so the CLI can tell "unset" from a zero value when merging with
// flags.
type FileConfig struct {
	Placeholder *string `yaml:"placeholder"`
	Format      *string `yaml:"format"` // force output format: yaml|json
	Backup      *bool   `yaml:"backup"`
	NoColor     *bool   `yaml:"no_color"`
	Debug       *bool   `yaml:"debug"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given directory.
// It supports .veil.yml/.yaml and veil.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".veil.yml", ".veil.yaml", "veil.yml", "veil.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "veil", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
