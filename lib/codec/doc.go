// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for the
// binary form of matrix documents.
//
// JSON is the format GitHub Actions consumes. CBOR is offered for
// tooling that stores, diffs or caches generated matrices: it is
// compact, and the encoder uses Core Deterministic Encoding (RFC 8949
// §4.2) -- sorted map keys, smallest integer encoding, no
// indefinite-length items -- so the same matrix always produces the
// same bytes, just like the JSON form.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types carry only `json` struct tags. fxamacker/cbor v2 reads `json`
// tags when `cbor` tags are absent, so one tag controls field naming
// and omitempty for both encodings. Never add `cbor` tags alongside
// them; the two encodings must not drift apart.
package codec
