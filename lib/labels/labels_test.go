// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package labels

import (
	"slices"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", " ", ",,", " , "} {
		filter := Parse(input, DefaultSkipLabels)
		if !filter.IsEmpty() {
			t.Errorf("Parse(%q) = %q, want empty filter", input, filter.String())
		}
		for _, category := range Categories {
			if filter.Constrains(category) {
				t.Errorf("Parse(%q) constrains %s", input, category)
			}
		}
	}
}

func TestParse_Categories(t *testing.T) {
	filter := Parse("platform:darwin, python:3.13,python:3.14 ,build:debug,build:pgo,arch:aarch64,libc:musl", DefaultSkipLabels)

	tests := []struct {
		category Category
		want     []string
	}{
		{Platform, []string{"darwin"}},
		{Python, []string{"3.13", "3.14"}},
		{Build, []string{"debug", "pgo"}},
		{Arch, []string{"aarch64"}},
		{Libc, []string{"musl"}},
	}
	for _, test := range tests {
		got := filter.Values(test.category).Sorted()
		if !slices.Equal(got, test.want) {
			t.Errorf("Values(%s) = %v, want %v", test.category, got, test.want)
		}
	}
	if filter.Skip() || filter.DryRun() {
		t.Error("unexpected directive set")
	}
}

func TestParse_Directives(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSkip   bool
		wantDryRun bool
	}{
		{"ci alias", "ci:dry-run", false, true},
		{"directives category", "directives:skip", true, false},
		{"bare skip label", "documentation", true, false},
		{"bare skip label with others", "platform:linux, documentation", true, false},
		{"both", "ci:skip,ci:dry-run", true, true},
		{"bare label not configured", "wontfix", false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			filter := Parse(test.input, DefaultSkipLabels)
			if filter.Skip() != test.wantSkip {
				t.Errorf("Skip() = %v, want %v", filter.Skip(), test.wantSkip)
			}
			if filter.DryRun() != test.wantDryRun {
				t.Errorf("DryRun() = %v, want %v", filter.DryRun(), test.wantDryRun)
			}
		})
	}
}

func TestFilter_Directives(t *testing.T) {
	filter := Parse("ci:dry-run,ci:rebuild,documentation,platform:linux", DefaultSkipLabels)
	got := filter.Directives().Sorted()
	want := []string{"dry-run", "rebuild", "skip"}
	if !slices.Equal(got, want) {
		t.Errorf("Directives() = %v, want %v", got, want)
	}
	if !filter.HasDirective("rebuild") {
		t.Error("HasDirective(rebuild) = false, want true")
	}
	if directives := Parse("platform:linux", DefaultSkipLabels).Directives(); len(directives) != 0 {
		t.Errorf("Directives() = %v, want empty", directives.Sorted())
	}
}

func TestParse_CustomSkipLabels(t *testing.T) {
	filter := Parse("docs-only", []string{"docs-only"})
	if !filter.Skip() {
		t.Error("custom skip label did not set skip directive")
	}
	if Parse("documentation", nil).Skip() {
		t.Error("documentation skipped with no skip labels configured")
	}
}

func TestParse_IgnoresUnknownAndMalformed(t *testing.T) {
	filter := Parse("release:yes,nocolon,platform:linux,:orphan", DefaultSkipLabels)
	if got := filter.String(); got != "platform:linux" {
		t.Errorf("String() = %q, want %q", got, "platform:linux")
	}
}

func TestParse_SplitsOnFirstColon(t *testing.T) {
	filter := Parse("build:pgo:lto", DefaultSkipLabels)
	if !filter.Values(Build).Contains("pgo:lto") {
		t.Errorf("Values(build) = %v, want [pgo:lto]", filter.Values(Build).Sorted())
	}
}

func TestFilter_StringRoundTrip(t *testing.T) {
	input := "python:3.14,ci:dry-run,platform:linux,python:3.13,documentation"
	first := Parse(input, DefaultSkipLabels)
	want := "platform:linux,python:3.13,python:3.14,ci:dry-run,ci:skip"
	if got := first.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if second := Parse(first.String(), DefaultSkipLabels); second.String() != want {
		t.Errorf("reparsed String() = %q, want %q", second.String(), want)
	}
}
