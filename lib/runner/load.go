// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/buildmatrix/lib/document"
)

// runnerRecord is the document form of a runner. The id is the mapping
// key, not a field.
type runnerRecord struct {
	Platform string `yaml:"platform"`
	Arch     string `yaml:"arch"`
	Free     bool   `yaml:"free"`
}

// ParsePool decodes a runner document:
//
//	depot-ubuntu-22.04:
//	  platform: linux
//	  arch: x86_64
//	  free: false
//
// Runners keep their document order.
func ParsePool(data []byte, format document.Format) (*Pool, error) {
	root, err := document.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return poolFromNode(root)
}

// LoadPool reads and decodes the runner document at path.
func LoadPool(path string) (*Pool, error) {
	root, err := document.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pool, err := poolFromNode(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pool, nil
}

func poolFromNode(root *yaml.Node) (*Pool, error) {
	entries, err := document.Entries(root)
	if err != nil {
		return nil, fmt.Errorf("runner document: %w", err)
	}

	runners := make([]Runner, 0, len(entries))
	for _, entry := range entries {
		var record runnerRecord
		if err := entry.Value.Decode(&record); err != nil {
			return nil, fmt.Errorf("runner %q: %w", entry.Key, err)
		}
		runners = append(runners, Runner{
			ID:       entry.Key,
			Platform: Platform(record.Platform),
			Arch:     record.Arch,
			Free:     record.Free,
		})
	}
	return NewPool(runners)
}
