// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the ci-matrix command tree.
//
// The root command generates the matrix document and keeps the flag
// surface CI workflows already call it with (--platform, --max-shards,
// --labels, --free-runners, --force-crate-build, --matrix-type). Two
// subcommands help when editing the input documents: validate checks
// that every target resolves to a runner in both the paid and the
// free-only pool, and summary renders the size of each matrix.
package commands
