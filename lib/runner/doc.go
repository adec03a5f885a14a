// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner models the pool of CI compute runners and selects a
// runner for a job.
//
// A [Runner] has a fixed platform, CPU architecture and cost tier
// (free GitHub-hosted vs. paid third-party). A [Pool] holds runners in
// the order they were declared in the runner document; that order is
// the tie-breaker for every selection, so the same document always
// yields the same assignment.
//
// [Pool.Resolve] implements the selection policy:
//
//  1. Keep runners whose platform and free flag match exactly.
//  2. Return the first of those whose architecture matches.
//  3. Otherwise return the first of those regardless of architecture.
//     This lets cross-compiled targets (x86_64_v3, riscv64 via a cross
//     toolchain) run on the best available runner for the platform.
//  4. Otherwise fail with a [*ResolveError] wrapping [ErrNoRunner].
//
// Step 3 is deliberately broad. A pool missing a runner for some
// architecture silently falls back to another one on the same platform,
// which is what cross-compilation needs but can also hide a typo in the
// runner document. The validate command reports every fallback so that
// such cases are visible.
//
// [Pool.FreeOnly] derives the pool used by forks and other contexts
// without access to paid runners: only free runners remain, and every
// request is answered from the free tier.
package runner
