// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package labels parses pull-request label strings into matrix filters.
//
// CI workflows pass the labels attached to a pull request as a single
// comma-separated string, for example:
//
//	platform:darwin,python:3.13,build:debug,ci:dry-run
//
// [Parse] turns that string into a [Filter]: a closed set of
// [Category] values (platform, python, build, arch, libc), each holding
// the accepted values for that category, plus a separate directive set
// (skip, dry-run). Values within a category are alternatives (OR); the
// categories themselves must all be satisfied (AND). The "ci" category
// is an alias for directives, and configured bare labels such as
// "documentation" act as a skip directive.
//
// Unknown categories and tokens without a ":" are dropped so that new
// label conventions can be introduced in the repository before this
// tool understands them.
package labels
