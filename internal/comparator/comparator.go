// Package comparator implements the Directory Comparator:
// given a target root and one or more source roots, it computes the
// source files whose content has no hash-equivalent in the target.
package comparator

import (
	"github.com/ivoronin/dupereconcile/internal/assembler"
	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Compare hashes every non-empty file in sourceFiles and targetFiles (via
// the Hash Worker Pool), then returns the DirectoryDiff: every hashed source
// FileRecord whose hash is absent from the target's hash set. Zero-byte and
// unreadable source files have no hash and are not reported as missing.
//
// Unlike the scan/hash workflow, the comparator hashes every file
// regardless of size-group cardinality: a source file can be "missing" from the target even if its size
// is unique within the source set.
func Compare(pool *hasher.Pool, sourceFiles, targetFiles []*types.FileRecord) *types.DirectoryDiff {
	hashAll(pool, sourceFiles)
	hashAll(pool, targetFiles)

	present := make(map[string]bool, len(targetFiles))
	for _, f := range targetFiles {
		if f.HasHash() {
			present[f.Hash] = true
		}
	}

	var missing []*types.FileRecord
	for _, f := range sourceFiles {
		if !f.HasHash() {
			continue
		}
		if !present[f.Hash] {
			missing = append(missing, f)
		}
	}

	return &types.DirectoryDiff{Missing: missing}
}

// CompareAndDeduplicate runs Compare and, in addition, assembles
// DuplicateSets across the union of source and target files.
func CompareAndDeduplicate(pool *hasher.Pool, sourceFiles, targetFiles []*types.FileRecord) (*types.DirectoryDiff, []*types.DuplicateSet) {
	diff := Compare(pool, sourceFiles, targetFiles)

	all := make([]*types.FileRecord, 0, len(sourceFiles)+len(targetFiles))
	all = append(all, sourceFiles...)
	all = append(all, targetFiles...)

	groups := groupBySizeAndHash(all)
	return diff, assembler.Assemble(groups)
}

// hashAll assigns a Hash to every non-empty file in files that doesn't
// already have one, reusing the Hash Worker Pool's cache-aware hashing by
// passing the files to it grouped by size, with no singleton filtering.
// Zero-byte files are left unhashed.
func hashAll(pool *hasher.Pool, files []*types.FileRecord) {
	pending := make(map[int64][]*types.FileRecord)
	for _, f := range files {
		if f.HasHash() || f.Size == 0 {
			continue
		}
		pending[f.Size] = append(pending[f.Size], f)
	}
	if len(pending) == 0 {
		return
	}
	// Run discards its own grouping result here: hashGroup mutates each
	// FileRecord's Hash field in place, which is what the caller observes.
	pool.Run(pending)
}

// groupBySizeAndHash folds already-hashed files into the same GroupResult
// shape the Hash Worker Pool produces, so the Duplicate Assembler can be
// reused verbatim.
func groupBySizeAndHash(files []*types.FileRecord) []hasher.GroupResult {
	bySize := make(map[int64]*hasher.GroupResult)
	for _, f := range files {
		if !f.HasHash() {
			continue
		}
		g, ok := bySize[f.Size]
		if !ok {
			g = &hasher.GroupResult{Size: f.Size, ByHash: map[string][]*types.FileRecord{}}
			bySize[f.Size] = g
		}
		g.ByHash[f.Hash] = append(g.ByHash[f.Hash], f)
	}

	results := make([]hasher.GroupResult, 0, len(bySize))
	for _, g := range bySize {
		results = append(results, *g)
	}
	return results
}
