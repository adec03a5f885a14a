// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

// PythonBuildEntry is one python-build job. Field order is the key
// order of the encoded entry.
type PythonBuildEntry struct {
	Arch         string          `json:"arch"`
	TargetTriple string          `json:"target_triple"`
	Platform     runner.Platform `json:"platform"`
	Runner       string          `json:"runner"`

	// Run is "true" when the job executes the distribution it built.
	// Workflow expressions compare it as a string.
	Run string `json:"run"`

	// CrateArtifactName names the crate-build artifact for the
	// runner's architecture, which may differ from Arch.
	CrateArtifactName string `json:"crate_artifact_name"`

	ArchVariant *string `json:"arch_variant,omitempty"`
	Libc        *string `json:"libc,omitempty"`
	VCVars      *string `json:"vcvars,omitempty"`
	DryRun      string  `json:"dry-run,omitempty"`

	Python       string `json:"python"`
	BuildOptions string `json:"build_options"`
}

// CrateBuildEntry is one crate-build job.
type CrateBuildEntry struct {
	Platform          runner.Platform `json:"platform"`
	Arch              string          `json:"arch"`
	Runner            string          `json:"runner"`
	CrateArtifactName string          `json:"crate_artifact_name"`
}

// DockerBuildEntry is one docker-build job.
type DockerBuildEntry struct {
	Name   string `json:"name"`
	Arch   string `json:"arch"`
	Runner string `json:"runner"`
}

// CrateArtifactName returns the artifact name of the crate built for
// platform on a runner of architecture arch.
func CrateArtifactName(platform runner.Platform, arch string) string {
	return fmt.Sprintf("crate-%s-%s", platform, arch)
}

func formatBool(value bool) string {
	return strconv.FormatBool(value)
}
