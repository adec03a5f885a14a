// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package matrix

import "fmt"

// SizeLimit is the GitHub Actions ceiling on jobs per matrix.
const SizeLimit = 256

// CapacityError reports a matrix that does not fit in the allowed
// number of shards.
type CapacityError struct {
	Matrix   string
	Size     int
	Required int
	Allowed  int
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf("%s matrix of size %d requires %d shards, but the maximum is %d; consider increasing --max-shards",
		err.Matrix, err.Size, err.Required, err.Allowed)
}

// RequiredShards returns how many shards of at most ceiling entries
// are needed for size entries. An empty matrix still occupies one
// shard. An exact multiple of ceiling needs size/ceiling shards, not
// size/ceiling+1: 512 entries at a limit of 256 fit in two.
func RequiredShards(size, ceiling int) int {
	if size <= 0 {
		return 1
	}
	return (size + ceiling - 1) / ceiling
}

// Shard splits entries into exactly maxShards contiguous chunks of at
// most ceiling entries, preserving order. Shards past the last needed
// one are empty, so the number of shards does not change between runs
// as the entry count fluctuates. name identifies the matrix in the
// error returned when the entries need more than maxShards shards.
func Shard[T any](name string, entries []T, maxShards, ceiling int) ([][]T, error) {
	if maxShards <= 0 {
		return nil, fmt.Errorf("%s: shard count must be positive, got %d", name, maxShards)
	}
	if ceiling <= 0 {
		return nil, fmt.Errorf("%s: size limit must be positive, got %d", name, ceiling)
	}

	required := RequiredShards(len(entries), ceiling)
	if required > maxShards {
		return nil, &CapacityError{
			Matrix:   name,
			Size:     len(entries),
			Required: required,
			Allowed:  maxShards,
		}
	}

	shards := make([][]T, maxShards)
	for index := range shards {
		start := min(index*ceiling, len(entries))
		end := min(start+ceiling, len(entries))
		shards[index] = entries[start:end:end]
	}
	return shards, nil
}
