// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/buildmatrix/lib/testutil"
)

func keys(t *testing.T, entries []Entry) string {
	t.Helper()
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Key
	}
	return strings.Join(names, ",")
}

func TestParse_PreservesYAMLOrder(t *testing.T) {
	node, err := Parse([]byte("zeta: 1\nalpha: 2\nmid: 3\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries, err := Entries(node)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if got := keys(t, entries); got != "zeta,alpha,mid" {
		t.Errorf("keys = %q, want %q", got, "zeta,alpha,mid")
	}
}

func TestParse_JSONCCommentsAndTrailingCommas(t *testing.T) {
	data := []byte(`{
		// runners in preference order
		"b-runner": {"arch": "x86_64", /* inline */ "free": true,},
		"a-runner": {"arch": "aarch64"},
	}`)
	node, err := Parse(data, FormatJSONC)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries, err := Entries(node)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if got := keys(t, entries); got != "b-runner,a-runner" {
		t.Errorf("keys = %q, want %q", got, "b-runner,a-runner")
	}

	var record struct {
		Arch string `yaml:"arch"`
		Free bool   `yaml:"free"`
	}
	if err := entries[0].Value.Decode(&record); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if record.Arch != "x86_64" || !record.Free {
		t.Errorf("record = %+v, want {x86_64 true}", record)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	node, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries, err := Entries(node)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("key: [unterminated"), FormatYAML); err == nil {
		t.Error("Parse accepted malformed YAML")
	}
}

func TestEntries_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"sequence", "- a\n- b\n", "expected a mapping"},
		{"scalar", "just text\n", "expected a mapping"},
		{"duplicate", "a: 1\nb: 2\na: 3\n", `duplicate key "a"`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node, err := Parse([]byte(test.input), FormatYAML)
			if err != nil {
				// yaml.v3 rejects some duplicates itself; either layer
				// reporting it is acceptable.
				if !strings.Contains(err.Error(), "already defined") {
					t.Fatalf("Parse: %v", err)
				}
				return
			}
			_, err = Entries(node)
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Entries error = %v, want containing %q", err, test.wantErr)
			}
		})
	}
}

func TestEntries_NullValue(t *testing.T) {
	node, err := Parse([]byte("linux:\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries, err := Entries(node)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	inner, err := Entries(entries[0].Value)
	if err != nil {
		t.Fatalf("Entries(null): %v", err)
	}
	if inner != nil {
		t.Errorf("Entries(null) = %v, want nil", inner)
	}
}

func TestReadFile(t *testing.T) {
	directory := t.TempDir()
	yamlPath := testutil.WriteFile(t, directory, "runners.yml", "one: {}\ntwo: {}\n")
	jsonPath := testutil.WriteFile(t, directory, "runners.jsonc", `{"two": {}, "one": {},}`)

	for path, want := range map[string]string{yamlPath: "one,two", jsonPath: "two,one"} {
		node, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		entries, err := Entries(node)
		if err != nil {
			t.Fatalf("Entries: %v", err)
		}
		if got := keys(t, entries); got != want {
			t.Errorf("%s keys = %q, want %q", filepath.Base(path), got, want)
		}
	}

	if _, err := ReadFile(filepath.Join(directory, "missing.yaml")); err == nil {
		t.Error("ReadFile of missing file succeeded")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"ci-targets.yaml":  FormatYAML,
		"ci-targets.YML":   FormatYAML,
		"ci-runners.json":  FormatJSONC,
		"ci-runners.jsonc": FormatJSONC,
		"noextension":      FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
