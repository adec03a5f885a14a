// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/buildmatrix/lib/document"
	"github.com/bureau-foundation/buildmatrix/lib/pyversion"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

// Config is a decoded target document.
type Config struct {
	Platforms []PlatformTargets
}

// PlatformTargets holds the targets of one platform in document order.
type PlatformTargets struct {
	Platform runner.Platform
	Targets  []Target
}

// Target is one target triple and its build configuration.
type Target struct {
	Triple string
	TargetConfig
}

// TargetConfig describes how to build one target triple.
type TargetConfig struct {
	Arch        string  `yaml:"arch"`
	ArchVariant *string `yaml:"arch_variant,omitempty"`
	Libc        *string `yaml:"libc,omitempty"`
	VCVars      *string `yaml:"vcvars,omitempty"`

	// Run overrides whether built distributions are executed by the
	// job. Nil means "only when the runner architecture matches Arch".
	Run *bool `yaml:"run,omitempty"`

	PythonVersions          []string            `yaml:"python_versions"`
	BuildOptions            []string            `yaml:"build_options"`
	BuildOptionsConditional []ConditionalOption `yaml:"build_options_conditional,omitempty"`
}

// Native reports whether the target is explicitly marked run: true.
// Targets without a run flag are not considered native here; their
// run value depends on the runner chosen for them.
func (config TargetConfig) Native() bool {
	return config.Run != nil && *config.Run
}

// ConditionalOption adds build option sets only for Python versions at
// or above MinimumPythonVersion.
type ConditionalOption struct {
	MinimumPythonVersion string   `yaml:"minimum-python-version"`
	Options              []string `yaml:"options"`
}

// UnmarshalYAML accepts both minimum-python-version and the underscore
// spelling minimum_python_version.
func (option *ConditionalOption) UnmarshalYAML(node *yaml.Node) error {
	var record struct {
		Hyphenated  string   `yaml:"minimum-python-version"`
		Underscored string   `yaml:"minimum_python_version"`
		Options     []string `yaml:"options"`
	}
	if err := node.Decode(&record); err != nil {
		return err
	}
	if record.Hyphenated != "" && record.Underscored != "" && record.Hyphenated != record.Underscored {
		return fmt.Errorf("line %d: minimum-python-version %q conflicts with minimum_python_version %q",
			node.Line, record.Hyphenated, record.Underscored)
	}
	option.MinimumPythonVersion = record.Hyphenated
	if option.MinimumPythonVersion == "" {
		option.MinimumPythonVersion = record.Underscored
	}
	option.Options = record.Options
	return nil
}

// Platform returns the targets for platform, or nil.
func (config *Config) Platform(platform runner.Platform) []Target {
	for _, entry := range config.Platforms {
		if entry.Platform == platform {
			return entry.Targets
		}
	}
	return nil
}

// Len returns the number of targets across all platforms.
func (config *Config) Len() int {
	total := 0
	for _, entry := range config.Platforms {
		total += len(entry.Targets)
	}
	return total
}

// Parse decodes a target document. The result is not validated; call
// [Config.Validate].
func Parse(data []byte, format document.Format) (*Config, error) {
	root, err := document.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return configFromNode(root)
}

// Load reads, decodes and validates the target document at path.
func Load(path string) (*Config, error) {
	root, err := document.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config, err := configFromNode(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func configFromNode(root *yaml.Node) (*Config, error) {
	platformEntries, err := document.Entries(root)
	if err != nil {
		return nil, fmt.Errorf("target document: %w", err)
	}

	config := &Config{}
	for _, platformEntry := range platformEntries {
		targetEntries, err := document.Entries(platformEntry.Value)
		if err != nil {
			return nil, fmt.Errorf("platform %q: %w", platformEntry.Key, err)
		}

		platformTargets := PlatformTargets{Platform: runner.Platform(platformEntry.Key)}
		for _, targetEntry := range targetEntries {
			target := Target{Triple: targetEntry.Key}
			if err := targetEntry.Value.Decode(&target.TargetConfig); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", platformEntry.Key, targetEntry.Key, err)
			}
			platformTargets.Targets = append(platformTargets.Targets, target)
		}
		config.Platforms = append(config.Platforms, platformTargets)
	}
	return config, nil
}

// Validate checks every target and reports all problems at once.
func (config *Config) Validate() error {
	var errs []error

	for _, entry := range config.Platforms {
		if !entry.Platform.Valid() {
			errs = append(errs, fmt.Errorf("unknown platform %q (want one of %v)", entry.Platform, runner.Platforms))
			continue
		}
		for _, target := range entry.Targets {
			for _, err := range target.validate() {
				errs = append(errs, fmt.Errorf("%s/%s: %w", entry.Platform, target.Triple, err))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (target Target) validate() []error {
	var errs []error

	if strings.TrimSpace(target.Arch) == "" {
		errs = append(errs, errors.New("arch is required"))
	}
	if len(target.PythonVersions) == 0 {
		errs = append(errs, errors.New("python_versions must not be empty"))
	}
	for _, version := range target.PythonVersions {
		if _, err := pyversion.Parse(version); err != nil {
			errs = append(errs, err)
		}
	}
	if len(target.BuildOptions) == 0 {
		errs = append(errs, errors.New("build_options must not be empty"))
	}
	for _, options := range target.BuildOptions {
		if err := validateOptionSet(options); err != nil {
			errs = append(errs, err)
		}
	}

	for index, conditional := range target.BuildOptionsConditional {
		if conditional.MinimumPythonVersion == "" {
			errs = append(errs, fmt.Errorf("build_options_conditional[%d]: minimum-python-version is required", index))
		} else if _, err := pyversion.Parse(conditional.MinimumPythonVersion); err != nil {
			errs = append(errs, fmt.Errorf("build_options_conditional[%d]: %w", index, err))
		}
		if len(conditional.Options) == 0 {
			errs = append(errs, fmt.Errorf("build_options_conditional[%d]: options must not be empty", index))
		}
		for _, options := range conditional.Options {
			if err := validateOptionSet(options); err != nil {
				errs = append(errs, fmt.Errorf("build_options_conditional[%d]: %w", index, err))
			}
		}
	}

	return errs
}

func validateOptionSet(options string) error {
	for _, flag := range SplitOptions(options) {
		if flag == "" {
			return fmt.Errorf("build option set %q has an empty flag", options)
		}
	}
	return nil
}

// SplitOptions splits a "+"-joined build option set into its flags.
func SplitOptions(options string) []string {
	return strings.Split(options, "+")
}
