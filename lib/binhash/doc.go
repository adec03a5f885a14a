// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes content digests for the documents the
// matrix generator reads and writes.
//
// Digests are BLAKE3 keyed hashes with a per-domain key, so the digest
// of an emitted matrix can never collide with the digest of an input
// document holding the same bytes. They are logged on every run: two
// CI runs that log the same output digest emitted byte-identical
// matrices, and the input digests show which documents changed when
// they did not.
//
// [FormatDigest] and [ParseDigest] convert between [Digest] and the
// 64-character hex form used in log output.
package binhash
