// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// Domain is a 32-byte BLAKE3 key separating digest contexts. The
// byte values are the ASCII domain name, zero-padded. Changing a key
// changes every digest in that domain.
type Domain [32]byte

var (
	// MatrixDomain keys digests of emitted matrix documents.
	MatrixDomain = Domain{
		'b', 'u', 'i', 'l', 'd', 'm', 'a', 't', 'r', 'i', 'x', '.',
		'm', 'a', 't', 'r', 'i', 'x', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	// InputDomain keys digests of target, runner and config documents.
	InputDomain = Domain{
		'b', 'u', 'i', 'l', 'd', 'm', 'a', 't', 'r', 'i', 'x', '.',
		'i', 'n', 'p', 'u', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// HashBytes computes the keyed digest of data in the given domain.
func HashBytes(domain Domain, data []byte) Digest {
	hasher := newHasher(domain)
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashFile computes the keyed digest of the file at path, streaming
// its content through the hasher.
func HashFile(domain Domain, path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := newHasher(domain)
	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

func newHasher(domain Domain) *blake3.Hasher {
	hasher, err := blake3.NewKeyed(domain[:])
	if err != nil {
		// NewKeyed only fails on a key that is not 32 bytes.
		panic("binhash: BLAKE3 keyed hasher: " + err.Error())
	}
	return hasher
}

// FormatDigest returns the hex encoding of a digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return FormatDigest(d)
}

// ParseDigest parses a 64-character hex digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
