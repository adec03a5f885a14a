// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pyversion

import (
	"fmt"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Version is a parsed CPython version.
type Version struct {
	parsed pep440.Version
	raw    string
}

// String returns the version as it was written, without surrounding
// whitespace.
func (version Version) String() string {
	return version.raw
}

// Parse parses a version string such as "3.13", "3.14.2", "3.15.0a1"
// or "3.13.0.post1".
func Parse(text string) (Version, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Version{}, fmt.Errorf("empty python version")
	}
	parsed, err := pep440.Parse(trimmed)
	if err != nil {
		return Version{}, fmt.Errorf("python version %q: %w", text, err)
	}
	return Version{parsed: parsed, raw: trimmed}, nil
}

// MustParse is like [Parse] but panics on malformed input. Intended for
// constants in tests and static tables.
func MustParse(text string) Version {
	version, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return version
}

// Compare returns -1, 0 or +1 depending on whether a sorts before,
// equal to, or after b.
func Compare(a, b Version) int {
	return a.parsed.Compare(b.parsed)
}

// AtLeast reports whether version >= minimum. Both strings must parse.
func AtLeast(version, minimum string) (bool, error) {
	parsedVersion, err := Parse(version)
	if err != nil {
		return false, err
	}
	parsedMinimum, err := Parse(minimum)
	if err != nil {
		return false, err
	}
	return parsedVersion.parsed.GreaterThanOrEqual(parsedMinimum.parsed), nil
}
