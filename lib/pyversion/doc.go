// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pyversion orders CPython version strings.
//
// Target documents gate build options on a minimum Python version
// ("freethreaded builds start at 3.13"). Plain string comparison gets
// this wrong ("3.9" > "3.13"), so versions are parsed as PEP 440
// versions with github.com/aquasecurity/go-pep440-version, the same
// ordering Python's packaging.version applies:
//
//   - [Parse] -- "3.13", "3.14.0", "3.15.0a1", "3.13.0.post1"
//   - [Compare] -- three-way comparison of two parsed versions
//   - [AtLeast] -- string convenience used by the matrix expander
//
// Trailing zero release segments do not matter, so "3.13" and "3.13.0"
// are equal. Development releases sort before pre-releases, which sort
// before the final release, which sorts before post-releases:
// 3.15.0.dev1 < 3.15.0a1 < 3.15.0rc1 < 3.15.0 < 3.15.0.post1.
//
// This package has no dependencies on other packages in this module.
package pyversion
