// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"testing"

	"github.com/bureau-foundation/buildmatrix/lib/document"
	"github.com/bureau-foundation/buildmatrix/lib/labels"
	"github.com/bureau-foundation/buildmatrix/lib/runner"
	"github.com/bureau-foundation/buildmatrix/lib/targets"
)

const fixtureRunners = `
linux-x86:
  platform: linux
  arch: x86_64
  free: false
linux-arm:
  platform: linux
  arch: aarch64
  free: false
mac-arm:
  platform: darwin
  arch: aarch64
  free: false
win-paid:
  platform: windows
  arch: x86_64
  free: false
ubuntu-latest:
  platform: linux
  arch: x86_64
  free: true
macos-latest:
  platform: darwin
  arch: aarch64
  free: true
windows-latest:
  platform: windows
  arch: x86_64
  free: true
`

// fixtureTargets expands to 13 python-build entries: 11 Linux (8 for
// the x86_64 gnu target), one darwin and one windows.
const fixtureTargets = `
linux:
  x86_64-unknown-linux-gnu:
    arch: x86_64
    libc: gnu
    python_versions: ["3.12", "3.13", "3.14"]
    build_options: [pgo+lto, debug]
    build_options_conditional:
      - minimum-python-version: "3.13"
        options: [freethreaded+pgo+lto]
  aarch64-unknown-linux-gnu:
    arch: aarch64
    libc: gnu
    python_versions: ["3.13"]
    build_options: [pgo+lto]
  riscv64-unknown-linux-gnu:
    arch: riscv64
    libc: gnu
    python_versions: ["3.13"]
    build_options: [lto]
  x86_64-unknown-linux-musl:
    arch: x86_64
    libc: musl
    python_versions: ["3.13"]
    build_options: [lto+static]
darwin:
  aarch64-apple-darwin:
    arch: aarch64
    run: true
    python_versions: ["3.13"]
    build_options: [pgo+lto]
windows:
  x86_64-pc-windows-msvc:
    arch: x86_64
    vcvars: vcvars64.bat
    python_versions: ["3.13"]
    build_options: [pgo]
`

func fixturePool(t *testing.T) *runner.Pool {
	t.Helper()
	pool, err := runner.ParsePool([]byte(fixtureRunners), document.FormatYAML)
	if err != nil {
		t.Fatalf("ParsePool: %v", err)
	}
	return pool
}

func fixtureConfig(t *testing.T) *targets.Config {
	t.Helper()
	return parseTargets(t, fixtureTargets)
}

func parseTargets(t *testing.T, input string) *targets.Config {
	t.Helper()
	config, err := targets.Parse([]byte(input), document.FormatYAML)
	if err != nil {
		t.Fatalf("targets.Parse: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("targets.Validate: %v", err)
	}
	return config
}

func filter(input string) labels.Filter {
	return labels.Parse(input, labels.DefaultSkipLabels)
}
