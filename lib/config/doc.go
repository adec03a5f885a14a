// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for ci-matrix.
//
// The tool config is optional. It is loaded from a single file named
// by either the CI_MATRIX_CONFIG environment variable (via [Load]) or
// a --config flag (via [LoadFile]). When neither is set [Load] returns
// [Default], which reproduces the historical behavior: ci-targets.yaml
// and ci-runners.yaml in the working directory, a 256-entry matrix
// ceiling, "documentation" as the bare skip label and the built-in
// docker image table.
//
// Variable expansion is performed on the document paths after loading:
// ${HOME}, ${CONFIG_DIR} (the directory holding the config file) and
// ${VAR:-default} patterns are expanded. Relative paths in a loaded
// file are resolved against the config file's directory.
package config
