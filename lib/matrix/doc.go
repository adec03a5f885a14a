// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package matrix turns a target configuration and a runner pool into
// the GitHub Actions job matrices that build Python distributions.
//
// Three correlated matrices are produced:
//
//   - python-build ([ExpandPythonBuilds]) -- one entry per target
//     triple, Python version and build option set, each assigned a
//     paid-tier runner and filtered by pull request labels.
//   - crate-build ([DeriveCrateBuilds]) -- the native helper crate
//     builds the python-build jobs depend on. The crate is built once
//     per (platform, runner architecture) and shared by every
//     python-build job on such a runner, including cross-compiled
//     targets. Every python-build entry names the artifact it consumes
//     in crate_artifact_name.
//   - docker-build ([GenerateDockerBuilds]) -- the toolchain images
//     Linux builds run in.
//
// [Generate] combines the three according to [Options] and enforces
// the per-matrix job ceiling of the execution engine (256 for GitHub
// Actions). The python-build matrix can be split into a fixed number of
// shards ([Shard]); if the entries do not fit, generation fails with a
// [*CapacityError] rather than truncating. Without sharding an
// oversized matrix is emitted whole with a logged warning.
//
// Everything here is a pure function of its inputs. Entries are emitted
// in document order, sets are never iterated unordered, and the
// encoded [Document] is byte-for-byte reproducible. Any runner
// resolution failure aborts generation; there is no partial output.
package matrix
