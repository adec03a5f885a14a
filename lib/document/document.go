// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk syntax of a document.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSONC Format = "jsonc"
)

// FormatFromPath returns the format implied by the file extension.
// Unknown extensions are treated as YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSONC
	default:
		return FormatYAML
	}
}

// Entry is one key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value *yaml.Node
}

// Parse decodes data and returns the root content node. An empty
// document yields an empty mapping.
func Parse(data []byte, format Format) (*yaml.Node, error) {
	if format == FormatJSONC {
		data = jsonc.ToJSON(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing %s document: %w", format, err)
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}
	if root.Kind == yaml.DocumentNode {
		return root.Content[0], nil
	}
	return &root, nil
}

// ReadFile reads and parses the document at path, choosing the format
// from the extension.
func ReadFile(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	node, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return node, nil
}

// Entries returns the key/value pairs of a mapping node in document
// order. A null node (an empty value such as "linux:" with nothing
// beneath it) yields no entries. Duplicate keys are rejected: YAML
// forbids them and silently keeping one would make "first match"
// ambiguous.
func Entries(node *yaml.Node) ([]Entry, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind == yaml.AliasNode {
		return Entries(node.Alias)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping, found %s", node.Line, kindName(node))
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		key := keyNode.Value
		if firstLine, duplicate := seen[key]; duplicate {
			return nil, fmt.Errorf("line %d: duplicate key %q (first defined on line %d)", keyNode.Line, key, firstLine)
		}
		seen[key] = keyNode.Line
		entries = append(entries, Entry{Key: key, Value: node.Content[i+1]})
	}
	return entries, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return fmt.Sprintf("scalar %q", node.Value)
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unexpected node"
	}
}
