package testfs

import (
	"os"
	"path/filepath"
	"testing"
)

// -----------------------------------------------------------------------------
// Harness - Test Infrastructure API
// -----------------------------------------------------------------------------

// Harness provides test infrastructure using t.TempDir().
//
// Usage:
//
//	given := testfs.FileTree{
//	    Volumes: []Volume{
//	        {Root: "vol1", Files: []File{{Path: "a.txt", Chunks: []Chunk{{Pattern: 'A', Size: "1MiB"}}}}},
//	    },
//	}
//	h := testfs.New(t, given)
//	// ... run a pipeline against h.Root()
//	h.AssertExists("vol1/a.txt")
type Harness struct {
	t    *testing.T
	root string // Temporary directory root
}

// New creates a new Harness with the given FileTree specification.
//
// The temporary directory is automatically cleaned up by t.TempDir() mechanics.
func New(t *testing.T, given FileTree) *Harness {
	t.Helper()

	root := t.TempDir()
	h := &Harness{t: t, root: root}

	if err := SowFileTree(root, given); err != nil {
		t.Fatalf("failed to setup files: %v", err)
	}

	return h
}

// Root returns the temporary directory root path.
func (h *Harness) Root() string {
	return h.root
}

// Path joins a path relative to the harness root.
func (h *Harness) Path(rel string) string {
	return filepath.Join(h.root, rel)
}

// -----------------------------------------------------------------------------
// Assertions
// -----------------------------------------------------------------------------

// AssertExists fails the test if any of the given paths (relative to root)
// do not exist as regular files.
func (h *Harness) AssertExists(paths ...string) {
	h.t.Helper()
	for _, p := range paths {
		if info, err := os.Stat(h.Path(p)); err != nil {
			h.t.Errorf("expected %s to exist: %v", p, err)
		} else if info.IsDir() {
			h.t.Errorf("expected %s to be a regular file, got a directory", p)
		}
	}
}

// AssertAbsent fails the test if any of the given paths (relative to root)
// still exist.
func (h *Harness) AssertAbsent(paths ...string) {
	h.t.Helper()
	for _, p := range paths {
		if _, err := os.Stat(h.Path(p)); err == nil {
			h.t.Errorf("expected %s to be absent", p)
		} else if !os.IsNotExist(err) {
			h.t.Errorf("stat %s: %v", p, err)
		}
	}
}

// AssertContent fails the test if the file at path (relative to root) does
// not hold exactly want.
func (h *Harness) AssertContent(path, want string) {
	h.t.Helper()
	got, err := os.ReadFile(h.Path(path))
	if err != nil {
		h.t.Errorf("read %s: %v", path, err)
		return
	}
	if string(got) != want {
		h.t.Errorf("content of %s = %q, want %q", path, got, want)
	}
}

// CountFiles returns the number of regular files under root (relative path),
// recursively. Useful for asserting a directory's final cardinality after a
// batch of delete/move/copy jobs.
func (h *Harness) CountFiles(root string) int {
	h.t.Helper()
	count := 0
	err := filepath.WalkDir(h.Path(root), func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		h.t.Fatalf("walk %s: %v", root, err)
	}
	return count
}
