// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"

	"github.com/bureau-foundation/buildmatrix/lib/labels"
	"github.com/bureau-foundation/buildmatrix/lib/pyversion"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
	"github.com/bureau-foundation/buildmatrix/lib/targets"
)

// PythonOptions selects which python-build entries are produced.
type PythonOptions struct {
	// Platform restricts expansion to one platform. Empty means all.
	Platform runner.Platform

	// Filter is applied to the expanded entries. Its dry-run directive
	// marks every entry; its skip directive drops every entry.
	Filter labels.Filter
}

// ExpandPythonBuilds expands every target into its python-build
// entries: the cross product of python_versions and build_options,
// followed by each conditional block's options for the versions that
// meet its minimum. Entries are then filtered by options.Filter.
//
// Runner resolution happens for every target on the selected platforms
// before filtering, so a target no runner can serve is an error even
// when the labels would have excluded it.
func ExpandPythonBuilds(config *targets.Config, pool *runner.Pool, options PythonOptions) ([]PythonBuildEntry, error) {
	var entries []PythonBuildEntry

	for _, platformTargets := range config.Platforms {
		if options.Platform != "" && platformTargets.Platform != options.Platform {
			continue
		}
		for _, target := range platformTargets.Targets {
			expanded, err := expandTarget(platformTargets.Platform, target, pool, options.Filter.DryRun())
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", platformTargets.Platform, target.Triple, err)
			}
			entries = append(entries, expanded...)
		}
	}

	if options.Filter.Skip() {
		return []PythonBuildEntry{}, nil
	}

	filtered := make([]PythonBuildEntry, 0, len(entries))
	for _, entry := range entries {
		if Matches(entry, options.Filter) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func expandTarget(platform runner.Platform, target targets.Target, pool *runner.Pool, dryRun bool) ([]PythonBuildEntry, error) {
	assigned, err := pool.Resolve(platform, target.Arch, false)
	if err != nil {
		return nil, err
	}

	run := assigned.Arch == target.Arch
	if target.Run != nil {
		run = *target.Run
	}

	base := PythonBuildEntry{
		Arch:              target.Arch,
		TargetTriple:      target.Triple,
		Platform:          platform,
		Runner:            assigned.ID,
		Run:               formatBool(run),
		CrateArtifactName: CrateArtifactName(platform, assigned.Arch),
		ArchVariant:       target.ArchVariant,
		Libc:              target.Libc,
		VCVars:            target.VCVars,
	}
	if dryRun {
		base.DryRun = formatBool(true)
	}

	var entries []PythonBuildEntry
	for _, version := range target.PythonVersions {
		for _, options := range target.BuildOptions {
			entries = append(entries, base.with(version, options))
		}
	}

	for _, conditional := range target.BuildOptionsConditional {
		for _, version := range target.PythonVersions {
			eligible, err := pyversion.AtLeast(version, conditional.MinimumPythonVersion)
			if err != nil {
				return nil, err
			}
			if !eligible {
				continue
			}
			for _, options := range conditional.Options {
				entries = append(entries, base.with(version, options))
			}
		}
	}

	return entries, nil
}

// with returns a copy of entry for one Python version and option set.
// The optional string pointers are shared with the target config,
// which is never mutated.
func (entry PythonBuildEntry) with(python, buildOptions string) PythonBuildEntry {
	entry.Python = python
	entry.BuildOptions = buildOptions
	return entry
}

// Matches reports whether entry satisfies every constrained category
// of filter. Platform, python and arch must be one of the accepted
// values. Libc only constrains entries that have a libc, so a libc
// label narrows Linux builds without excluding other platforms. Build
// flags are conjunctive: every requested flag must be present in the
// entry's option set, so "build:pgo,build:lto" selects pgo+lto builds.
// Directives are not considered; see [ExpandPythonBuilds].
func Matches(entry PythonBuildEntry, filter labels.Filter) bool {
	if filter.Constrains(labels.Platform) && !filter.Values(labels.Platform).Contains(string(entry.Platform)) {
		return false
	}
	if filter.Constrains(labels.Python) && !filter.Values(labels.Python).Contains(entry.Python) {
		return false
	}
	if filter.Constrains(labels.Arch) && !filter.Values(labels.Arch).Contains(entry.Arch) {
		return false
	}
	if filter.Constrains(labels.Libc) && entry.Libc != nil && !filter.Values(labels.Libc).Contains(*entry.Libc) {
		return false
	}
	if filter.Constrains(labels.Build) {
		present := make(labels.Set)
		for _, flag := range targets.SplitOptions(entry.BuildOptions) {
			present[flag] = struct{}{}
		}
		for requested := range filter.Values(labels.Build) {
			if !present.Contains(requested) {
				return false
			}
		}
	}
	return true
}
