// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document decodes configuration documents while preserving the
// order in which mapping keys were written.
//
// Runner pools and target configurations are authored as mappings
// (runner id to runner, platform to triple to config), and the order of
// those keys is meaningful: runner resolution picks the first eligible
// runner, and matrix entries are emitted in declaration order. Decoding
// into Go maps would lose that order, so documents are decoded into a
// [yaml.Node] tree and walked with [Entries].
//
// Two formats are accepted, selected by file extension:
//
//   - .yaml, .yml -- YAML
//   - .json, .jsonc -- JSON with // and /* */ comments and trailing
//     commas. Comments are stripped with tidwall/jsonc and the result
//     is decoded by the YAML decoder (JSON is a subset of YAML), so
//     both formats share one ordered representation.
package document
