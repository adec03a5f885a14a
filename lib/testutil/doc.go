// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for buildmatrix
// packages.
//
// [WriteFile] materializes a fixture document inside a test's temporary
// directory and returns its path, so loaders can be exercised through
// the same file-reading path the CLI uses.
//
// [RequireErrorContains] asserts that an operation failed with a
// message mentioning an expected fragment.
//
// All helpers call t.Fatalf on failure.
//
// This package has no dependencies on other packages in this module.
package testutil
