package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from callflow.yml.
type ProjectConfig struct {
	ExcludeDirs []string `yaml:"excludeDirs,omitempty"`
	Filters     []string `yaml:"filters,omitempty"`
	Engine      string   `yaml:"engine,omitempty"` // graphviz layout engine, default sfdp
	Verbose     bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read callflow.yml or callflow.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"callflow.yml", "callflow.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
