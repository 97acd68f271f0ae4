// Package testfs provides test infrastructure for building small file trees
// on disk and asserting their state afterward.
//
// Tests use a single FileTree type to seed a Harness:
//
//	given := testfs.FileTree{
//	    Volumes: []Volume{
//	        {Root: "src", Files: []File{
//	            {Path: "a.txt", Chunks: []Chunk{{Pattern: 'A', Size: "1MiB"}}},
//	        }},
//	    },
//	}
//	h := testfs.New(t, given)
//	// ... run a pipeline against h.Root()
//	h.AssertExists("src/a.txt")
//	h.AssertAbsent("src/b.txt")
package testfs

import "github.com/dustin/go-humanize"

// FileTree describes a filesystem state used to seed a Harness.
type FileTree struct {
	// Volumes group files under a subdirectory of the harness root.
	Volumes []Volume `json:"volumes"`
}

// Volume is a subdirectory of the harness root holding a set of files.
type Volume struct {
	// Root is relative to the harness root (e.g. "src", "target/nested").
	Root string `json:"root"`

	// Files to create under Root.
	Files []File `json:"files,omitempty"`
}

// File describes a single regular file to create.
type File struct {
	// Path is relative to the volume's Root.
	Path string `json:"path"`

	// Chunks specifies file content as a sequence of filled regions.
	// Each chunk fills its size with the pattern byte.
	Chunks []Chunk `json:"chunks,omitempty"`
}

// Chunk defines a region of file content filled with a pattern byte.
type Chunk struct {
	// Pattern is the fill byte for this chunk region.
	Pattern rune `json:"pattern"`

	// Size in IEC units (1024-based): "1KiB", "1MiB", "1GiB".
	Size string `json:"size"`
}

// TotalSize calculates the sum of all chunk sizes in bytes.
func (f *File) TotalSize() int64 {
	var total int64
	for _, c := range f.Chunks {
		size, _ := humanize.ParseBytes(c.Size)
		total += int64(size)
	}
	return total
}
