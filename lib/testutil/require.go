// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strings"
	"testing"
)

// RequireErrorContains fails the test unless err is non-nil and its
// message contains fragment.
//
//	_, err := pool.Resolve(runner.Linux, "x86_64", true)
//	testutil.RequireErrorContains(t, err, "no runner available")
func RequireErrorContains(t testing.TB, err error, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", fragment)
	}
	if !strings.Contains(err.Error(), fragment) {
		t.Fatalf("error %q does not contain %q", err.Error(), fragment)
	}
}
