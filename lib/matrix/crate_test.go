// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

func crateNames(entries []CrateBuildEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.CrateArtifactName+"@"+entry.Runner)
	}
	return names
}

func TestDeriveCrateBuilds(t *testing.T) {
	config, pool := fixtureConfig(t), fixturePool(t)
	entries, err := ExpandPythonBuilds(config, pool, PythonOptions{})
	if err != nil {
		t.Fatalf("ExpandPythonBuilds: %v", err)
	}

	crates, err := DeriveCrateBuilds(entries, config, pool, CrateOptions{})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}

	// riscv64 and musl entries run on linux-x86 and share its crate.
	// Windows crates build on the free tier.
	want := []string{
		"crate-linux-x86_64@linux-x86",
		"crate-linux-aarch64@linux-arm",
		"crate-darwin-aarch64@mac-arm",
		"crate-windows-x86_64@windows-latest",
	}
	if got := crateNames(crates); !slices.Equal(got, want) {
		t.Errorf("crates = %v, want %v", got, want)
	}
}

func TestDeriveCrateBuilds_Unique(t *testing.T) {
	config, pool := fixtureConfig(t), fixturePool(t)
	entries, err := ExpandPythonBuilds(config, pool, PythonOptions{})
	if err != nil {
		t.Fatalf("ExpandPythonBuilds: %v", err)
	}
	// Doubling the input must not double the output.
	crates, err := DeriveCrateBuilds(append(slices.Clone(entries), entries...), config, pool, CrateOptions{Force: true})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}

	seen := make(map[string]bool)
	for _, crate := range crates {
		key := string(crate.Platform) + "/" + crate.Arch
		if seen[key] {
			t.Errorf("duplicate crate build for %s", key)
		}
		seen[key] = true
	}
	if len(crates) != 4 {
		t.Errorf("len(crates) = %d, want 4", len(crates))
	}
}

func TestDeriveCrateBuilds_Force(t *testing.T) {
	config, pool := fixtureConfig(t), fixturePool(t)
	entries, err := ExpandPythonBuilds(config, pool, PythonOptions{Filter: filter("platform:windows")})
	if err != nil {
		t.Fatalf("ExpandPythonBuilds: %v", err)
	}

	crates, err := DeriveCrateBuilds(entries, config, pool, CrateOptions{})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}
	if got, want := crateNames(crates), []string{"crate-windows-x86_64@windows-latest"}; !slices.Equal(got, want) {
		t.Errorf("unforced crates = %v, want %v", got, want)
	}

	// Only explicit run: true targets are forced; the darwin target
	// is the one native target in the fixture.
	forced, err := DeriveCrateBuilds(entries, config, pool, CrateOptions{Force: true})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}
	want := []string{"crate-windows-x86_64@windows-latest", "crate-darwin-aarch64@mac-arm"}
	if got := crateNames(forced); !slices.Equal(got, want) {
		t.Errorf("forced crates = %v, want %v", got, want)
	}

	// Forcing with no python-build entries at all still emits them.
	onlyForced, err := DeriveCrateBuilds(nil, config, pool, CrateOptions{Force: true})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}
	if got, want := crateNames(onlyForced), []string{"crate-darwin-aarch64@mac-arm"}; !slices.Equal(got, want) {
		t.Errorf("crates from empty input = %v, want %v", got, want)
	}
}

func TestDeriveCrateBuilds_PlatformFilter(t *testing.T) {
	config, pool := fixtureConfig(t), fixturePool(t)
	entries, err := ExpandPythonBuilds(config, pool, PythonOptions{})
	if err != nil {
		t.Fatalf("ExpandPythonBuilds: %v", err)
	}

	crates, err := DeriveCrateBuilds(entries, config, pool, CrateOptions{Platform: runner.Linux, Force: true})
	if err != nil {
		t.Fatalf("DeriveCrateBuilds: %v", err)
	}
	for _, crate := range crates {
		if crate.Platform != runner.Linux {
			t.Errorf("crate for %s survived a linux platform filter", crate.Platform)
		}
	}
	if len(crates) != 2 {
		t.Errorf("len(crates) = %d, want 2", len(crates))
	}
}

func TestDeriveCrateBuilds_UnknownRunner(t *testing.T) {
	config, pool := fixtureConfig(t), fixturePool(t)
	entries := []PythonBuildEntry{{TargetTriple: "x86_64-unknown-linux-gnu", Platform: runner.Linux, Runner: "vanished"}}

	_, err := DeriveCrateBuilds(entries, config, pool, CrateOptions{})
	if err == nil || !strings.Contains(err.Error(), `unknown runner "vanished"`) {
		t.Errorf("err = %v, want unknown runner error", err)
	}
}

func TestDeriveCrateBuilds_NoFreeWindowsRunner(t *testing.T) {
	config := fixtureConfig(t)
	pool, err := runner.NewPool([]runner.Runner{
		{ID: "linux-x86", Platform: runner.Linux, Arch: "x86_64"},
		{ID: "linux-arm", Platform: runner.Linux, Arch: "aarch64"},
		{ID: "mac-arm", Platform: runner.Darwin, Arch: "aarch64"},
		{ID: "win-paid", Platform: runner.Windows, Arch: "x86_64"},
	})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	entries, err := ExpandPythonBuilds(config, pool, PythonOptions{})
	if err != nil {
		t.Fatalf("ExpandPythonBuilds: %v", err)
	}

	_, err = DeriveCrateBuilds(entries, config, pool, CrateOptions{})
	var resolveErr *runner.ResolveError
	if !errors.As(err, &resolveErr) || resolveErr.Platform != runner.Windows || !resolveErr.Free {
		t.Errorf("err = %v, want a free-tier windows ResolveError", err)
	}
}
