// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"

	"github.com/bureau-foundation/buildmatrix/lib/runner"
	"github.com/bureau-foundation/buildmatrix/lib/targets"
)

// CrateOptions controls crate-build derivation.
type CrateOptions struct {
	// Platform restricts the emitted entries. Empty means all.
	Platform runner.Platform

	// Force adds a crate build for every target marked run: true in
	// the target configuration, whether or not a python-build entry
	// needs it. Used to publish crate artifacts ahead of demand.
	Force bool
}

type platformArch struct {
	platform runner.Platform
	arch     string
}

// DeriveCrateBuilds returns one crate-build entry per distinct
// (platform, runner architecture) among the python-build entries, in
// first-use order, followed by forced native targets not already
// present.
//
// Crate builds on Windows run on free GitHub-hosted runners because
// the paid Windows runners lack a Rust toolchain. Everywhere else they
// use the paid tier so the crate links against the same system
// libraries as the python-build jobs that consume it.
func DeriveCrateBuilds(entries []PythonBuildEntry, config *targets.Config, pool *runner.Pool, options CrateOptions) ([]CrateBuildEntry, error) {
	var needed []platformArch
	seen := make(map[platformArch]bool)
	add := func(pair platformArch) {
		if seen[pair] {
			return
		}
		seen[pair] = true
		needed = append(needed, pair)
	}

	for _, entry := range entries {
		assigned, ok := pool.Lookup(entry.Runner)
		if !ok {
			return nil, fmt.Errorf("python-build entry %s (python %s, %s) references unknown runner %q",
				entry.TargetTriple, entry.Python, entry.BuildOptions, entry.Runner)
		}
		add(platformArch{platform: entry.Platform, arch: assigned.Arch})
	}

	if options.Force {
		for _, platformTargets := range config.Platforms {
			for _, target := range platformTargets.Targets {
				if target.Native() {
					add(platformArch{platform: platformTargets.Platform, arch: target.Arch})
				}
			}
		}
	}

	crates := make([]CrateBuildEntry, 0, len(needed))
	for _, pair := range needed {
		if options.Platform != "" && pair.platform != options.Platform {
			continue
		}
		assigned, err := pool.Resolve(pair.platform, pair.arch, pair.platform == runner.Windows)
		if err != nil {
			return nil, fmt.Errorf("crate build for %s/%s: %w", pair.platform, pair.arch, err)
		}
		crates = append(crates, CrateBuildEntry{
			Platform:          pair.platform,
			Arch:              pair.arch,
			Runner:            assigned.ID,
			CrateArtifactName: CrateArtifactName(pair.platform, pair.arch),
		})
	}
	return crates, nil
}
