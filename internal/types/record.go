// Package types holds the data model shared across the scan/hash pipeline,
// the hash cache, and the action planner/executor.
package types

import "time"

// FileRecord describes a single regular file discovered by the Walker.
//
// Hash is empty until a Hash Worker or the Hash Cache fills it in. A
// FileRecord is treated as immutable once it has been handed to the
// Duplicate Assembler or the Directory Comparator.
type FileRecord struct {
	Path    string // absolute path
	Size    int64
	Hash    string // lowercase hex, empty until hashed
	ModTime time.Time
	CTime   time.Time // zero value if unavailable (non-Linux platforms)
}

// HasHash reports whether the record has been hashed yet.
func (f *FileRecord) HasHash() bool { return f.Hash != "" }

// DuplicateSet is a group of two or more files sharing size and hash.
//
// Invariant: all Files share Size and Hash; len(Files) >= 2.
type DuplicateSet struct {
	Size  int64
	Hash  string
	Files []*FileRecord
}

// DirectoryDiff is the output of the Directory Comparator: every source
// FileRecord whose hash has no match among the target root's files.
type DirectoryDiff struct {
	Missing []*FileRecord
}
