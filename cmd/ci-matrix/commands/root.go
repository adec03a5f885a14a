// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildmatrix/cmd/ci-matrix/cli"
	"github.com/bureau-foundation/buildmatrix/lib/binhash"
	"github.com/bureau-foundation/buildmatrix/lib/matrix"
	"github.com/bureau-foundation/buildmatrix/lib/version"
)

type generateParams struct {
	InputParams
	SelectionParams
	Format  string `json:"format" flag:"format" default:"json" desc:"output encoding (json, cbor)"`
	Version bool   `json:"-" flag:"version" desc:"print version information and exit"`
}

// Root builds the ci-matrix command tree. Matrix documents and reports
// are written to stdout; diagnostics and help go to stderr.
func Root(stdout, stderr io.Writer) *cli.Command {
	var params generateParams

	return &cli.Command{
		Name: "ci-matrix",
		Description: `Generate the GitHub Actions build matrices for Python distributions.

Reads the target document (what to build) and the runner pool (where
to build it) and writes one JSON document holding the python-build,
docker-build and crate-build matrices.`,
		HelpOutput: stderr,
		Examples: []cli.Example{
			{
				Description: "Every matrix for every platform",
				Command:     "ci-matrix",
			},
			{
				Description: "Linux python builds for a pull request, split into two shards",
				Command:     "ci-matrix --platform linux --matrix-type python-build --max-shards 2 --labels 'python:3.13,build:pgo'",
			},
			{
				Description: "A fork without access to paid runners",
				Command:     "ci-matrix --free-runners",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("ci-matrix", &params)
		},
		Subcommands: []*cli.Command{
			validateCommand(stdout, stderr),
			summaryCommand(stdout, stderr),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					return version.Print(stdout, "ci-matrix")
				},
			},
		},
		Run: func(args []string) error {
			if params.Version {
				return version.Print(stdout, "ci-matrix")
			}
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", strings.Join(args, " "))
			}
			return runGenerate(&params, stdout, stderr)
		},
	}
}

func runGenerate(params *generateParams, stdout, stderr io.Writer) error {
	logger, err := params.Logger(stderr)
	if err != nil {
		return err
	}
	format, err := matrix.ParseFormat(params.Format)
	if err != nil {
		return fmt.Errorf("--format: %w", err)
	}

	document, err := generateDocument(&params.InputParams, &params.SelectionParams, logger)
	if err != nil {
		return err
	}

	data, err := document.Encode(format)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(data); err != nil {
		return fmt.Errorf("writing matrix document: %w", err)
	}

	logger.Info("matrix document written",
		"format", string(format),
		"bytes", len(data),
		"digest", binhash.HashBytes(binhash.MatrixDomain, data).String(),
	)
	return nil
}
