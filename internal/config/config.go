// Package config holds the server and solver configuration, loadable from a
// YAML file with flag-friendly defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"staticDir"`
	Solver    Solver `yaml:"solver"`
}

// Solver sets the defaults applied when a request leaves a field empty, and
// the hard cap on requested iterations.
type Solver struct {
	Tol         float64 `yaml:"tol"`
	MaxIter     int     `yaml:"maxIter"`
	MaxIterCap  int     `yaml:"maxIterCap"`
	ChartPoints int     `yaml:"chartPoints"`
}

func Default() Config {
	return Config{
		Addr:      ":8080",
		StaticDir: "static",
		Solver: Solver{
			Tol:         1e-5,
			MaxIter:     200,
			MaxIterCap:  100000,
			ChartPoints: 400,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
