// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/buildmatrix/lib/labels"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
	"github.com/bureau-foundation/buildmatrix/lib/targets"
)

// Type selects which matrices a [Document] carries.
type Type string

const (
	TypePythonBuild Type = "python-build"
	TypeDockerBuild Type = "docker-build"
	TypeCrateBuild  Type = "crate-build"
	TypeAll         Type = "all"
)

// Types lists every accepted matrix type.
var Types = []Type{TypePythonBuild, TypeDockerBuild, TypeCrateBuild, TypeAll}

// ParseType validates a matrix type name.
func ParseType(name string) (Type, error) {
	for _, known := range Types {
		if Type(name) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown matrix type %q (want one of %v)", name, Types)
}

// Includes reports whether a request for t emits the matrix named
// by matrix. The empty type behaves as [TypeAll].
func (t Type) Includes(matrix Type) bool {
	return t == "" || t == TypeAll || t == matrix
}

// Options configures [Generate].
type Options struct {
	// Platform restricts every matrix to one platform. Empty means all.
	Platform runner.Platform

	// Filter is the parsed pull request label filter.
	Filter labels.Filter

	// Type selects the emitted matrices. Empty means all.
	Type Type

	// MaxShards splits the python-build matrix into exactly this many
	// shards. Zero disables sharding.
	MaxShards int

	// SizeLimit is the per-matrix ceiling. Zero means [SizeLimit].
	SizeLimit int

	// ForceCrateBuild adds a crate build for every native target.
	ForceCrateBuild bool

	// DockerImages is the docker-build image table. Nil means
	// [DefaultDockerImages].
	DockerImages []DockerImage

	// Logger receives warnings about oversized matrices and per-matrix
	// counts. Nil discards them.
	Logger *slog.Logger
}

// Generate assembles the matrix document.
//
// The python-build entries are always expanded, even when only
// docker-build or crate-build is requested, because both derive from
// them: docker-build is emitted when requested on its own or when a
// surviving python-build entry targets Linux, and crate-build covers
// the runners of the surviving entries. A skip directive empties every
// emitted matrix, including an explicitly requested docker-build and
// forced crate builds.
func Generate(config *targets.Config, pool *runner.Pool, options Options) (*Document, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ceiling := options.SizeLimit
	if ceiling == 0 {
		ceiling = SizeLimit
	}
	if ceiling < 0 {
		return nil, fmt.Errorf("size limit must be positive, got %d", ceiling)
	}
	if options.MaxShards < 0 {
		return nil, fmt.Errorf("max shards must not be negative, got %d", options.MaxShards)
	}
	images := options.DockerImages
	if images == nil {
		images = DefaultDockerImages
	}
	skip := options.Filter.Skip()

	pythonEntries, err := ExpandPythonBuilds(config, pool, PythonOptions{
		Platform: options.Platform,
		Filter:   options.Filter,
	})
	if err != nil {
		return nil, fmt.Errorf("python-build: %w", err)
	}

	document := &Document{}

	if options.Type.Includes(TypePythonBuild) {
		if options.MaxShards > 0 {
			shards, err := Shard(string(TypePythonBuild), pythonEntries, options.MaxShards, ceiling)
			if err != nil {
				return nil, err
			}
			document.PythonBuild = Sharded(shards)
			logger.Debug("python-build matrix sharded",
				"entries", len(pythonEntries),
				"shards", options.MaxShards,
				"required", RequiredShards(len(pythonEntries), ceiling),
			)
		} else {
			warnOversized(logger, TypePythonBuild, len(pythonEntries), ceiling, "--max-shards")
			document.PythonBuild = Unsharded(pythonEntries)
		}
	}

	if options.Type.Includes(TypeDockerBuild) {
		if options.Type == TypeDockerBuild || hasPlatform(pythonEntries, runner.Linux) {
			dockerEntries := []DockerBuildEntry{}
			if !skip {
				dockerEntries, err = GenerateDockerBuilds(pool, images, options.Platform)
				if err != nil {
					return nil, fmt.Errorf("docker-build: %w", err)
				}
			}
			warnOversized(logger, TypeDockerBuild, len(dockerEntries), ceiling, "")
			document.DockerBuild = Unsharded(dockerEntries)
		}
	}

	if options.Type.Includes(TypeCrateBuild) {
		crateEntries := []CrateBuildEntry{}
		if !skip {
			crateEntries, err = DeriveCrateBuilds(pythonEntries, config, pool, CrateOptions{
				Platform: options.Platform,
				Force:    options.ForceCrateBuild,
			})
			if err != nil {
				return nil, fmt.Errorf("crate-build: %w", err)
			}
		}
		warnOversized(logger, TypeCrateBuild, len(crateEntries), ceiling, "")
		document.CrateBuild = Unsharded(crateEntries)
	}

	logger.Debug("matrix generated",
		"python_build", matrixLen(document.PythonBuild),
		"docker_build", matrixLen(document.DockerBuild),
		"crate_build", matrixLen(document.CrateBuild),
		"skip", skip,
	)
	return document, nil
}

func warnOversized(logger *slog.Logger, matrix Type, size, ceiling int, remedy string) {
	if size <= ceiling {
		return
	}
	attributes := []any{"matrix", string(matrix), "size", size, "limit", ceiling}
	if remedy != "" {
		attributes = append(attributes, "remedy", remedy)
	}
	logger.Warn("matrix exceeds size limit but sharding is not enabled", attributes...)
}

func hasPlatform(entries []PythonBuildEntry, platform runner.Platform) bool {
	for _, entry := range entries {
		if entry.Platform == platform {
			return true
		}
	}
	return false
}

func matrixLen[T any](matrix *Matrix[T]) int {
	if matrix == nil {
		return 0
	}
	return matrix.Len()
}
