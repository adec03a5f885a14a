// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/buildmatrix/cmd/ci-matrix/cli"
	"github.com/bureau-foundation/buildmatrix/lib/binhash"
	"github.com/bureau-foundation/buildmatrix/lib/config"
	"github.com/bureau-foundation/buildmatrix/lib/labels"
	"github.com/bureau-foundation/buildmatrix/lib/matrix"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
	"github.com/bureau-foundation/buildmatrix/lib/targets"
)

// InputParams locates the documents every command reads.
type InputParams struct {
	cli.LogParams
	Config  string `json:"config" flag:"config" desc:"tool config file (default: $CI_MATRIX_CONFIG, else built-in defaults)"`
	Targets string `json:"targets" flag:"targets" desc:"target document (.yaml, .yml, .json, .jsonc); overrides the config"`
	Runners string `json:"runners" flag:"runners" desc:"runner pool document; overrides the config"`
}

// SelectionParams chooses what goes into the matrix document.
type SelectionParams struct {
	Platform        string `json:"platform" flag:"platform" desc:"only generate entries for this platform (darwin, linux, windows)"`
	MaxShards       int    `json:"max_shards" flag:"max-shards" desc:"split python-build into this many shards; 0 disables sharding"`
	Labels          string `json:"labels" flag:"labels" desc:"comma-separated label filter, e.g. platform:darwin,python:3.13,build:debug; all categories must match"`
	FreeRunners     bool   `json:"free_runners" flag:"free-runners" desc:"only use free runners"`
	ForceCrateBuild bool   `json:"force_crate_build" flag:"force-crate-build" desc:"include crate builds for every native target even without python builds"`
	MatrixType      string `json:"matrix_type" flag:"matrix-type" default:"all" desc:"which matrices to generate (python-build, docker-build, crate-build, all)"`
}

// inputs are the loaded documents of one invocation.
type inputs struct {
	config  *config.Config
	targets *targets.Config
	pool    *runner.Pool
}

func (params *InputParams) load(logger *slog.Logger) (*inputs, error) {
	var cfg *config.Config
	var err error
	if params.Config != "" {
		cfg, err = config.LoadFile(params.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	targetsPath := cmp.Or(params.Targets, cfg.Targets)
	runnersPath := cmp.Or(params.Runners, cfg.Runners)

	targetConfig, err := targets.Load(targetsPath)
	if err != nil {
		return nil, fmt.Errorf("loading targets: %w", err)
	}
	pool, err := runner.LoadPool(runnersPath)
	if err != nil {
		return nil, fmt.Errorf("loading runners: %w", err)
	}

	logInputDigest(logger, "targets", targetsPath)
	logInputDigest(logger, "runners", runnersPath)
	if cfg.Path() != "" {
		logInputDigest(logger, "config", cfg.Path())
	}

	return &inputs{config: cfg, targets: targetConfig, pool: pool}, nil
}

func logInputDigest(logger *slog.Logger, document, path string) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	digest, err := binhash.HashFile(binhash.InputDomain, path)
	if err != nil {
		logger.Debug("hashing input document failed", "document", document, "path", path, "error", err)
		return
	}
	logger.Debug("input document", "document", document, "path", path, "digest", digest.String())
}

// options validates the selection flags and builds generator options.
// The returned pool is restricted to free runners when requested.
func (params *SelectionParams) options(loaded *inputs, logger *slog.Logger) (matrix.Options, *runner.Pool, error) {
	var platform runner.Platform
	if params.Platform != "" {
		parsed, err := runner.ParsePlatform(params.Platform)
		if err != nil {
			return matrix.Options{}, nil, fmt.Errorf("--platform: %w", err)
		}
		platform = parsed
	}

	matrixType, err := matrix.ParseType(params.MatrixType)
	if err != nil {
		return matrix.Options{}, nil, fmt.Errorf("--matrix-type: %w", err)
	}
	if params.MaxShards < 0 {
		return matrix.Options{}, nil, fmt.Errorf("--max-shards must not be negative, got %d", params.MaxShards)
	}

	filter := labels.Parse(params.Labels, loaded.config.SkipLabels)
	logger.Debug("label filter", "labels", params.Labels, "filter", filter.String())

	pool := loaded.pool
	if params.FreeRunners {
		pool = pool.FreeOnly()
		logger.Debug("restricted to free runners", "runners", pool.Len())
	}

	return matrix.Options{
		Platform:        platform,
		Filter:          filter,
		Type:            matrixType,
		MaxShards:       params.MaxShards,
		SizeLimit:       loaded.config.MatrixSizeLimit,
		ForceCrateBuild: params.ForceCrateBuild,
		DockerImages:    loaded.config.DockerImages,
		Logger:          logger,
	}, pool, nil
}

// generateDocument loads the inputs and runs the generator.
func generateDocument(input *InputParams, selection *SelectionParams, logger *slog.Logger) (*matrix.Document, error) {
	loaded, err := input.load(logger)
	if err != nil {
		return nil, err
	}
	options, pool, err := selection.options(loaded, logger)
	if err != nil {
		return nil, err
	}
	return matrix.Generate(loaded.targets, pool, options)
}
