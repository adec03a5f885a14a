// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/buildmatrix/lib/testutil"
)

func mustPool(t *testing.T, runners ...Runner) *Pool {
	t.Helper()
	pool, err := NewPool(runners)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return pool
}

func TestResolve_PrefersExactArch(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "A", Platform: Linux, Arch: "x86_64"},
		Runner{ID: "B", Platform: Linux, Arch: "aarch64"},
	)

	got, err := pool.Resolve(Linux, "x86_64", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "A" {
		t.Errorf("Resolve(linux, x86_64) = %q, want %q", got.ID, "A")
	}

	got, err = pool.Resolve(Linux, "aarch64", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "B" {
		t.Errorf("Resolve(linux, aarch64) = %q, want %q", got.ID, "B")
	}
}

func TestResolve_ExactMatchBeatsEarlierFallback(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "first", Platform: Linux, Arch: "aarch64"},
		Runner{ID: "second", Platform: Linux, Arch: "x86_64"},
	)
	got, exact, err := pool.ResolveExact(Linux, "x86_64", false)
	if err != nil {
		t.Fatalf("ResolveExact: %v", err)
	}
	if got.ID != "second" || !exact {
		t.Errorf("ResolveExact = (%q, %v), want (second, true)", got.ID, exact)
	}
}

func TestResolve_FallsBackToFirstPlatformMatch(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "mac", Platform: Darwin, Arch: "aarch64"},
		Runner{ID: "A", Platform: Linux, Arch: "x86_64"},
		Runner{ID: "B", Platform: Linux, Arch: "aarch64"},
	)

	got, exact, err := pool.ResolveExact(Linux, "riscv64", false)
	if err != nil {
		t.Fatalf("ResolveExact: %v", err)
	}
	if got.ID != "A" {
		t.Errorf("fallback = %q, want %q", got.ID, "A")
	}
	if exact {
		t.Error("exact = true for architecture fallback")
	}
}

func TestResolve_FirstExactMatchWins(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "one", Platform: Windows, Arch: "x86_64"},
		Runner{ID: "two", Platform: Windows, Arch: "x86_64"},
	)
	for range 5 {
		got, err := pool.Resolve(Windows, "x86_64", false)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got.ID != "one" {
			t.Fatalf("Resolve = %q, want %q", got.ID, "one")
		}
	}
}

func TestResolve_TierIsExact(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "paid", Platform: Windows, Arch: "x86_64", Free: false},
		Runner{ID: "github", Platform: Windows, Arch: "x86_64", Free: true},
	)

	paid, err := pool.Resolve(Windows, "x86_64", false)
	if err != nil || paid.ID != "paid" {
		t.Errorf("Resolve(paid) = %q, %v; want paid", paid.ID, err)
	}
	free, err := pool.Resolve(Windows, "x86_64", true)
	if err != nil || free.ID != "github" {
		t.Errorf("Resolve(free) = %q, %v; want github", free.ID, err)
	}
}

func TestResolve_NoRunner(t *testing.T) {
	pool := mustPool(t, Runner{ID: "A", Platform: Linux, Arch: "x86_64"})

	_, err := pool.Resolve(Darwin, "aarch64", false)
	if !errors.Is(err, ErrNoRunner) {
		t.Fatalf("error = %v, want ErrNoRunner", err)
	}
	var resolveError *ResolveError
	if !errors.As(err, &resolveError) {
		t.Fatalf("error %T is not *ResolveError", err)
	}
	if resolveError.Platform != Darwin || resolveError.Arch != "aarch64" || resolveError.Free {
		t.Errorf("ResolveError = %+v", resolveError)
	}

	// The tier restriction alone can exhaust the candidates.
	_, err = pool.Resolve(Linux, "x86_64", true)
	testutil.RequireErrorContains(t, err, `no runner available: platform "linux", arch "x86_64", tier free`)
}

func TestFreeOnly(t *testing.T) {
	pool := mustPool(t,
		Runner{ID: "depot-linux", Platform: Linux, Arch: "x86_64"},
		Runner{ID: "ubuntu-latest", Platform: Linux, Arch: "x86_64", Free: true},
		Runner{ID: "ubuntu-arm", Platform: Linux, Arch: "aarch64", Free: true},
	)
	free := pool.FreeOnly()

	if free.Len() != 2 || !free.IsFreeOnly() {
		t.Fatalf("FreeOnly: len=%d freeOnly=%v, want 2/true", free.Len(), free.IsFreeOnly())
	}
	if _, ok := free.Lookup("depot-linux"); ok {
		t.Error("paid runner survived FreeOnly")
	}

	// Paid requests are served from the free tier.
	got, err := free.Resolve(Linux, "aarch64", false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != "ubuntu-arm" {
		t.Errorf("Resolve = %q, want %q", got.ID, "ubuntu-arm")
	}

	if pool.IsFreeOnly() || pool.Len() != 3 {
		t.Error("FreeOnly modified the source pool")
	}
}

func TestNewPool_Validation(t *testing.T) {
	_, err := NewPool([]Runner{
		{ID: "a", Platform: Linux, Arch: "x86_64"},
		{ID: "a", Platform: Linux, Arch: "x86_64"},
		{ID: "", Platform: Linux, Arch: "x86_64"},
		{ID: "bsd", Platform: "freebsd", Arch: "x86_64"},
		{ID: "noarch", Platform: Darwin},
	})
	if err == nil {
		t.Fatal("NewPool accepted invalid runners")
	}
	for _, fragment := range []string{
		`runner "a": duplicate id`,
		"runner 2: id is required",
		`runner "bsd": unknown platform "freebsd"`,
		`runner "noarch": arch is required`,
	} {
		testutil.RequireErrorContains(t, err, fragment)
	}
}

func TestParsePlatform(t *testing.T) {
	for _, name := range []string{"linux", "darwin", "windows"} {
		if _, err := ParsePlatform(name); err != nil {
			t.Errorf("ParsePlatform(%q): %v", name, err)
		}
	}
	if _, err := ParsePlatform("Linux"); err == nil {
		t.Error("ParsePlatform accepted mis-cased platform")
	}
}
