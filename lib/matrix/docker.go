// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"

	"github.com/bureau-foundation/buildmatrix/lib/runner"
)

// DockerImage is a toolchain image built on a Linux runner of Arch.
type DockerImage struct {
	Name string `yaml:"name" json:"name"`
	Arch string `yaml:"arch" json:"arch"`
}

// DefaultDockerImages are the toolchain and dependency build images.
var DefaultDockerImages = []DockerImage{
	{Name: "build", Arch: "x86_64"},
	{Name: "build.cross", Arch: "x86_64"},
	{Name: "build.cross-riscv64", Arch: "x86_64"},
	{Name: "build.cross-loongarch64", Arch: "loongarch64"},
	{Name: "build.debian9", Arch: "aarch64"},
	{Name: "gcc", Arch: "x86_64"},
	{Name: "gcc.debian9", Arch: "aarch64"},
}

// GenerateDockerBuilds assigns each image a paid Linux runner. A
// platform filter other than linux yields no entries.
func GenerateDockerBuilds(pool *runner.Pool, images []DockerImage, platform runner.Platform) ([]DockerBuildEntry, error) {
	entries := make([]DockerBuildEntry, 0, len(images))
	if platform != "" && platform != runner.Linux {
		return entries, nil
	}

	for _, image := range images {
		assigned, err := pool.Resolve(runner.Linux, image.Arch, false)
		if err != nil {
			return nil, fmt.Errorf("docker image %s: %w", image.Name, err)
		}
		entries = append(entries, DockerBuildEntry{
			Name:   image.Name,
			Arch:   image.Arch,
			Runner: assigned.ID,
		})
	}
	return entries, nil
}
