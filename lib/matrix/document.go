// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/bureau-foundation/buildmatrix/lib/codec"
)

// Matrix is one named matrix of a [Document]: either a single include
// list or a fixed number of shards, each with its own include list.
type Matrix[T any] struct {
	include []T
	shards  [][]T
}

// Unsharded returns a matrix encoded as {"include": [...]}.
func Unsharded[T any](entries []T) *Matrix[T] {
	return &Matrix[T]{include: entries}
}

// Sharded returns a matrix encoded as {"0": {"include": [...]}, ...}.
func Sharded[T any](shards [][]T) *Matrix[T] {
	return &Matrix[T]{shards: shards}
}

// IsSharded reports whether the matrix is split into shards.
func (matrix *Matrix[T]) IsSharded() bool {
	return matrix.shards != nil
}

// Shards returns the shard include lists, or nil when unsharded.
func (matrix *Matrix[T]) Shards() [][]T {
	return matrix.shards
}

// Entries returns every entry in order, across shards if sharded.
func (matrix *Matrix[T]) Entries() []T {
	if !matrix.IsSharded() {
		return matrix.include
	}
	var all []T
	for _, shard := range matrix.shards {
		all = append(all, shard...)
	}
	return all
}

// Len returns the total number of entries.
func (matrix *Matrix[T]) Len() int {
	if !matrix.IsSharded() {
		return len(matrix.include)
	}
	total := 0
	for _, shard := range matrix.shards {
		total += len(shard)
	}
	return total
}

type includeList[T any] struct {
	Include []T `json:"include"`
}

func newIncludeList[T any](entries []T) includeList[T] {
	if entries == nil {
		entries = []T{}
	}
	return includeList[T]{Include: entries}
}

// MarshalJSON writes shard keys in numeric order ("0", "1", ..., "10")
// rather than the lexical order encoding/json uses for maps.
func (matrix *Matrix[T]) MarshalJSON() ([]byte, error) {
	if !matrix.IsSharded() {
		return json.Marshal(newIncludeList(matrix.include))
	}

	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, shard := range matrix.shards {
		if index > 0 {
			buffer.WriteByte(',')
		}
		buffer.WriteString(strconv.Quote(strconv.Itoa(index)))
		buffer.WriteByte(':')
		encoded, err := json.Marshal(newIncludeList(shard))
		if err != nil {
			return nil, err
		}
		buffer.Write(encoded)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalCBOR encodes the same shape as MarshalJSON. Deterministic
// CBOR orders shorter keys first, which is numeric order for shard
// indexes.
func (matrix *Matrix[T]) MarshalCBOR() ([]byte, error) {
	if !matrix.IsSharded() {
		return codec.Marshal(newIncludeList(matrix.include))
	}
	shards := make(map[string]includeList[T], len(matrix.shards))
	for index, shard := range matrix.shards {
		shards[strconv.Itoa(index)] = newIncludeList(shard)
	}
	return codec.Marshal(shards)
}

// Document is the generator output. Absent matrices are omitted.
type Document struct {
	PythonBuild *Matrix[PythonBuildEntry] `json:"python-build,omitempty"`
	DockerBuild *Matrix[DockerBuildEntry] `json:"docker-build,omitempty"`
	CrateBuild  *Matrix[CrateBuildEntry]  `json:"crate-build,omitempty"`
}

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat validates an output format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCBOR:
		return Format(name), nil
	}
	return "", fmt.Errorf("unknown output format %q (want %q or %q)", name, FormatJSON, FormatCBOR)
}

// Encode returns the document in format. JSON output is a single line
// terminated by a newline, suitable for $GITHUB_OUTPUT.
func (document *Document) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.Marshal(document)
		if err != nil {
			return nil, fmt.Errorf("encoding matrix document: %w", err)
		}
		return append(data, '\n'), nil
	case FormatCBOR:
		data, err := codec.Marshal(document)
		if err != nil {
			return nil, fmt.Errorf("encoding matrix document: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Write encodes the document to w.
func (document *Document) Write(w io.Writer, format Format) error {
	data, err := document.Encode(format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
