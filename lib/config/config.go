// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/buildmatrix/lib/labels"
	"github.com/bureau-foundation/buildmatrix/lib/matrix"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "CI_MATRIX_CONFIG"

// Config is the ci-matrix tool configuration.
type Config struct {
	// Targets is the path of the target document.
	// Default: ci-targets.yaml
	Targets string `yaml:"targets"`

	// Runners is the path of the runner pool document.
	// Default: ci-runners.yaml
	Runners string `yaml:"runners"`

	// MatrixSizeLimit is the per-matrix entry ceiling (C).
	// Default: 256
	MatrixSizeLimit int `yaml:"matrix_size_limit"`

	// SkipLabels are bare labels that act as the skip directive.
	// Default: [documentation]
	SkipLabels []string `yaml:"skip_labels"`

	// DockerImages is the docker-build image table.
	// Default: the built-in table in [matrix.DefaultDockerImages].
	DockerImages []matrix.DockerImage `yaml:"docker_images"`

	// path is the file this config was loaded from, empty for Default.
	path string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Targets:         "ci-targets.yaml",
		Runners:         "ci-runners.yaml",
		MatrixSizeLimit: matrix.SizeLimit,
		SkipLabels:      slices.Clone(labels.DefaultSkipLabels),
		DockerImages:    slices.Clone(matrix.DefaultDockerImages),
	}
}

// Load reads the file named by CI_MATRIX_CONFIG, or returns Default
// when the variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config file at path. Fields absent from the file
// keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.path = path
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, or "" for the
// default configuration.
func (c *Config) Path() string {
	return c.path
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// document paths and anchors relative paths at the config directory.
func (c *Config) expandVariables() {
	directory := "."
	if c.path != "" {
		directory = filepath.Dir(c.path)
	}
	vars := map[string]string{
		"CONFIG_DIR": directory,
		"HOME":       os.Getenv("HOME"),
	}

	c.Targets = c.resolve(expandVars(c.Targets, vars), directory)
	c.Runners = c.resolve(expandVars(c.Runners, vars), directory)
}

func (c *Config) resolve(path, directory string) string {
	if path == "" || filepath.IsAbs(path) || c.path == "" {
		return path
	}
	return filepath.Join(directory, path)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Values in
// vars take precedence over the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Targets == "" {
		errs = append(errs, errors.New("targets is required"))
	}
	if c.Runners == "" {
		errs = append(errs, errors.New("runners is required"))
	}
	if c.MatrixSizeLimit < 1 {
		errs = append(errs, fmt.Errorf("matrix_size_limit must be positive, got %d", c.MatrixSizeLimit))
	}
	for index, label := range c.SkipLabels {
		if label == "" {
			errs = append(errs, fmt.Errorf("skip_labels[%d] is empty", index))
		}
	}

	seen := make(map[string]bool, len(c.DockerImages))
	for index, image := range c.DockerImages {
		if image.Name == "" {
			errs = append(errs, fmt.Errorf("docker_images[%d]: name is required", index))
			continue
		}
		if image.Arch == "" {
			errs = append(errs, fmt.Errorf("docker_images[%d] (%s): arch is required", index, image.Name))
		}
		if seen[image.Name] {
			errs = append(errs, fmt.Errorf("docker_images[%d]: duplicate image %q", index, image.Name))
		}
		seen[image.Name] = true
	}

	return errors.Join(errs...)
}
