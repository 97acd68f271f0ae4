// Package sizegroup implements the Size Grouper: partitioning
// discovered files by byte length and dropping groups that cannot contain
// duplicates.
package sizegroup

import "github.com/ivoronin/dupereconcile/internal/types"

// Group partitions files by size. Groups of cardinality 1 are dropped, and
// zero-byte files are excluded entirely.
func Group(files []*types.FileRecord) map[int64][]*types.FileRecord {
	bySize := make(map[int64][]*types.FileRecord)
	for _, f := range files {
		if f.Size == 0 {
			continue
		}
		bySize[f.Size] = append(bySize[f.Size], f)
	}
	for size, group := range bySize {
		if len(group) < 2 {
			delete(bySize, size)
		}
	}
	return bySize
}
