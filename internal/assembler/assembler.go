// Package assembler implements the Duplicate Assembler:
// folding (size, hash) -> files mappings from the Hash Worker Pool into
// DuplicateSets of cardinality >= 2.
package assembler

import (
	"sort"

	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Assemble folds hasher.GroupResults into the DuplicateSet list that is
// the primary output of a deduplication scan. Hashes with a single file
// are discarded.
func Assemble(groups []hasher.GroupResult) []*types.DuplicateSet {
	var sets []*types.DuplicateSet

	for _, g := range groups {
		for hash, files := range g.ByHash {
			if len(files) < 2 {
				continue
			}
			sets = append(sets, &types.DuplicateSet{
				Size:  g.Size,
				Hash:  hash,
				Files: files,
			})
		}
	}

	// Deterministic output order for callers that serialize or display the
	// result: set membership is unordered by nature, but a stable ordering
	// makes output and tests reproducible across runs.
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].Size != sets[j].Size {
			return sets[i].Size < sets[j].Size
		}
		return sets[i].Hash < sets[j].Hash
	})

	return sets
}
