// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildmatrix/cmd/ci-matrix/cli"
	"github.com/bureau-foundation/buildmatrix/lib/matrix"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

type validateParams struct {
	InputParams
	cli.JSONOutput
}

// resolution is the runner one target gets in one pool.
type resolution struct {
	Runner string `json:"runner,omitempty"`
	Exact  bool   `json:"exact"`
	Error  string `json:"error,omitempty"`
}

type targetReport struct {
	Platform runner.Platform `json:"platform"`
	Triple   string          `json:"target_triple"`
	Arch     string          `json:"arch"`
	Paid     resolution      `json:"paid"`
	Free     resolution      `json:"free"`
}

type validationReport struct {
	Targets []targetReport `json:"targets"`
	Errors  []string       `json:"errors"`
}

func validateCommand(stdout, stderr io.Writer) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that every target and image resolves to a runner",
		Description: `Load the config, target and runner documents and check them.

Every target is resolved against the full pool and against the pool
restricted to free runners (--free-runners), reporting which runner it
gets and whether that runner's architecture matches or the target is
cross-compiled. The complete matrix is then generated against both
pools, with forced crate builds, so docker images and crate builds are
checked too. Exits 1 if anything fails to resolve.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			logger, err := params.Logger(stderr)
			if err != nil {
				return err
			}
			loaded, err := params.load(logger)
			if err != nil {
				return err
			}

			report := validate(loaded)
			if done, err := params.EmitJSON(stdout, report); done {
				if err != nil {
					return err
				}
			} else {
				printValidationReport(stdout, report)
			}

			if len(report.Errors) > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func validate(loaded *inputs) validationReport {
	report := validationReport{Targets: []targetReport{}, Errors: []string{}}
	pools := []struct {
		name string
		pool *runner.Pool
	}{
		{"paid", loaded.pool},
		{"free", loaded.pool.FreeOnly()},
	}

	for _, platformTargets := range loaded.targets.Platforms {
		for _, target := range platformTargets.Targets {
			entry := targetReport{
				Platform: platformTargets.Platform,
				Triple:   target.Triple,
				Arch:     target.Arch,
			}
			entry.Paid = resolve(pools[0].pool, platformTargets.Platform, target.Arch)
			entry.Free = resolve(pools[1].pool, platformTargets.Platform, target.Arch)
			report.Targets = append(report.Targets, entry)
		}
	}

	for _, candidate := range pools {
		_, err := matrix.Generate(loaded.targets, candidate.pool, matrix.Options{
			SizeLimit:       loaded.config.MatrixSizeLimit,
			ForceCrateBuild: true,
			DockerImages:    loaded.config.DockerImages,
		})
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s runners: %v", candidate.name, err))
		}
	}
	return report
}

func resolve(pool *runner.Pool, platform runner.Platform, arch string) resolution {
	assigned, exact, err := pool.ResolveExact(platform, arch, false)
	if err != nil {
		return resolution{Error: err.Error()}
	}
	return resolution{Runner: assigned.ID, Exact: exact}
}

func printValidationReport(w io.Writer, report validationReport) {
	for _, target := range report.Targets {
		fmt.Fprintf(w, "%s/%s (%s): paid %s, free %s\n",
			target.Platform, target.Triple, target.Arch,
			describeResolution(target.Paid), describeResolution(target.Free))
	}
	for _, message := range report.Errors {
		fmt.Fprintf(w, "error: %s\n", message)
	}
	if len(report.Errors) == 0 {
		fmt.Fprintf(w, "ok: %d targets\n", len(report.Targets))
	} else {
		fmt.Fprintf(w, "%d targets, %d errors\n", len(report.Targets), len(report.Errors))
	}
}

func describeResolution(result resolution) string {
	switch {
	case result.Error != "":
		return "unavailable"
	case result.Exact:
		return result.Runner
	default:
		return result.Runner + " (cross)"
	}
}
