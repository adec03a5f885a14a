// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"errors"
	"fmt"
	"slices"
)

// Platform is an operating system family that jobs run on.
type Platform string

const (
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
)

// Platforms lists every supported platform.
var Platforms = []Platform{Darwin, Linux, Windows}

// ParsePlatform validates a platform name.
func ParsePlatform(name string) (Platform, error) {
	platform := Platform(name)
	if !platform.Valid() {
		return "", fmt.Errorf("unknown platform %q (want one of %v)", name, Platforms)
	}
	return platform, nil
}

// Valid reports whether platform is one of [Platforms].
func (platform Platform) Valid() bool {
	return slices.Contains(Platforms, platform)
}

// Runner is a CI compute resource.
type Runner struct {
	// ID is the runner label jobs request with runs-on.
	ID string `json:"id"`

	Platform Platform `json:"platform"`

	// Arch is the CPU architecture, e.g. "x86_64" or "aarch64".
	Arch string `json:"arch"`

	// Free is true for cost-free (GitHub-hosted) runners.
	Free bool `json:"free"`
}

// Tier returns "free" or "paid", for messages.
func (runner Runner) Tier() string {
	return tierName(runner.Free)
}

func tierName(free bool) string {
	if free {
		return "free"
	}
	return "paid"
}

// ErrNoRunner is wrapped by every resolution failure.
var ErrNoRunner = errors.New("no runner available")

// ResolveError reports a request that no runner in the pool can serve.
// This is a configuration authoring error, never a transient condition.
type ResolveError struct {
	Platform Platform
	Arch     string
	Free     bool
}

func (err *ResolveError) Error() string {
	return fmt.Sprintf("%s: platform %q, arch %q, tier %s",
		ErrNoRunner, err.Platform, err.Arch, tierName(err.Free))
}

func (err *ResolveError) Unwrap() error {
	return ErrNoRunner
}

// Pool is an ordered, immutable set of runners.
type Pool struct {
	runners  []Runner
	byID     map[string]int
	freeOnly bool
}

// NewPool builds a pool from runners in preference order. Runner ids
// must be unique and non-empty, platforms must be known, and every
// runner needs an architecture.
func NewPool(runners []Runner) (*Pool, error) {
	pool := &Pool{
		runners: slices.Clone(runners),
		byID:    make(map[string]int, len(runners)),
	}

	var errs []error
	for index, runner := range runners {
		if runner.ID == "" {
			errs = append(errs, fmt.Errorf("runner %d: id is required", index))
			continue
		}
		if _, duplicate := pool.byID[runner.ID]; duplicate {
			errs = append(errs, fmt.Errorf("runner %q: duplicate id", runner.ID))
			continue
		}
		pool.byID[runner.ID] = index
		if !runner.Platform.Valid() {
			errs = append(errs, fmt.Errorf("runner %q: unknown platform %q", runner.ID, runner.Platform))
		}
		if runner.Arch == "" {
			errs = append(errs, fmt.Errorf("runner %q: arch is required", runner.ID))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pool, nil
}

// Runners returns the runners in pool order.
func (pool *Pool) Runners() []Runner {
	return slices.Clone(pool.runners)
}

// Len returns the number of runners.
func (pool *Pool) Len() int {
	return len(pool.runners)
}

// Lookup returns the runner with the given id.
func (pool *Pool) Lookup(id string) (Runner, bool) {
	index, ok := pool.byID[id]
	if !ok {
		return Runner{}, false
	}
	return pool.runners[index], true
}

// FreeOnly returns a pool restricted to free runners. Requests made
// against it are served from the free tier even when they ask for a
// paid runner, since no paid runner is available in that context.
func (pool *Pool) FreeOnly() *Pool {
	restricted := &Pool{
		byID:     make(map[string]int),
		freeOnly: true,
	}
	for _, runner := range pool.runners {
		if !runner.Free {
			continue
		}
		restricted.byID[runner.ID] = len(restricted.runners)
		restricted.runners = append(restricted.runners, runner)
	}
	return restricted
}

// IsFreeOnly reports whether the pool was produced by [Pool.FreeOnly].
func (pool *Pool) IsFreeOnly() bool {
	return pool.freeOnly
}

// Resolve selects a runner for a job on platform/arch in the requested
// cost tier. See the package documentation for the policy.
func (pool *Pool) Resolve(platform Platform, arch string, wantFree bool) (Runner, error) {
	runner, _, err := pool.resolve(platform, arch, wantFree)
	return runner, err
}

// ResolveExact is [Pool.Resolve] that also reports whether the chosen
// runner's architecture matches arch, or was the platform fallback.
func (pool *Pool) ResolveExact(platform Platform, arch string, wantFree bool) (Runner, bool, error) {
	return pool.resolve(platform, arch, wantFree)
}

func (pool *Pool) resolve(platform Platform, arch string, wantFree bool) (Runner, bool, error) {
	if pool.freeOnly {
		wantFree = true
	}

	fallback := -1
	for index, runner := range pool.runners {
		if runner.Platform != platform || runner.Free != wantFree {
			continue
		}
		if runner.Arch == arch {
			return runner, true, nil
		}
		if fallback < 0 {
			fallback = index
		}
	}

	if fallback >= 0 {
		return pool.runners[fallback], false, nil
	}
	return Runner{}, false, &ResolveError{Platform: platform, Arch: arch, Free: wantFree}
}
