package comparator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/types"
)

func writeFile(t *testing.T, path, content string) *types.FileRecord {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return &types.FileRecord{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}

func TestCompareFindsMissingSourceFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "AAA")
	b := writeFile(t, filepath.Join(dir, "b.txt"), "BBB")
	c := writeFile(t, filepath.Join(dir, "c.txt"), "AAA")

	pool := hasher.New(hasher.XXHash, 2, nil, false, nil)
	diff := Compare(pool, []*types.FileRecord{a, b}, []*types.FileRecord{c})

	if len(diff.Missing) != 1 || diff.Missing[0].Path != b.Path {
		t.Errorf("Missing = %+v, want only b.txt", diff.Missing)
	}
}

func TestCompareEmptyWhenAllPresent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "X")
	target := writeFile(t, filepath.Join(dir, "t.txt"), "X")

	pool := hasher.New(hasher.XXHash, 2, nil, false, nil)
	diff := Compare(pool, []*types.FileRecord{a}, []*types.FileRecord{target})

	if len(diff.Missing) != 0 {
		t.Errorf("Missing = %+v, want empty", diff.Missing)
	}
}

func TestCompareAndDeduplicateReportsSetsAcrossRoots(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "X")
	b := writeFile(t, filepath.Join(dir, "b.txt"), "X")
	target := writeFile(t, filepath.Join(dir, "t.txt"), "X")

	pool := hasher.New(hasher.XXHash, 2, nil, false, nil)
	diff, sets := CompareAndDeduplicate(pool, []*types.FileRecord{a, b}, []*types.FileRecord{target})

	if len(diff.Missing) != 0 {
		t.Errorf("Missing = %+v, want empty (target already has content X)", diff.Missing)
	}
	if len(sets) != 1 || len(sets[0].Files) != 3 {
		t.Fatalf("sets = %+v, want one set spanning all 3 files", sets)
	}
}
