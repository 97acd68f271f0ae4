package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/ivoronin/dupereconcile/internal/filter"
)

func createFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func noFilter(t *testing.T) *filter.Filter {
	t.Helper()
	f, err := filter.New("", nil, nil)
	if err != nil {
		t.Fatalf("filter.New() error: %v", err)
	}
	return f
}

func paths(w []string) []string {
	sort.Strings(w)
	return w
}

func TestRunFindsNestedFiles(t *testing.T) {
	root := t.TempDir()
	createFile(t, filepath.Join(root, "a.txt"), "a")
	createFile(t, filepath.Join(root, "sub", "b.txt"), "bb")

	w := New([]string{root}, noFilter(t), 2, nil)
	files := w.Run()

	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
}

func TestRunSkipsDotfiles(t *testing.T) {
	root := t.TempDir()
	createFile(t, filepath.Join(root, "visible.txt"), "v")
	createFile(t, filepath.Join(root, ".hidden"), "h")

	w := New([]string{root}, noFilter(t), 2, nil)
	files := w.Run()

	if len(files) != 1 || filepath.Base(files[0].Path) != "visible.txt" {
		t.Errorf("got %v, want only visible.txt", files)
	}
}

func TestRunSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on windows")
	}
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	createFile(t, target, "real")
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Fatal(err)
	}

	w := New([]string{root}, noFilter(t), 2, nil)
	files := w.Run()

	if len(files) != 1 || filepath.Base(files[0].Path) != "real.txt" {
		t.Errorf("got %v, want only real.txt", files)
	}
}

func TestRunAppliesFilter(t *testing.T) {
	root := t.TempDir()
	createFile(t, filepath.Join(root, "keep.log"), "k")
	createFile(t, filepath.Join(root, "skip.tmp"), "s")

	f, err := filter.New("", nil, []string{"**/*.tmp"})
	if err != nil {
		t.Fatalf("filter.New() error: %v", err)
	}

	w := New([]string{root}, f, 2, nil)
	files := w.Run()

	if len(files) != 1 || filepath.Base(files[0].Path) != "keep.log" {
		t.Errorf("got %v, want only keep.log", files)
	}
}

func TestRunAcrossMultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	createFile(t, filepath.Join(rootA, "a.txt"), "a")
	createFile(t, filepath.Join(rootB, "b.txt"), "b")

	w := New([]string{rootA, rootB}, noFilter(t), 2, nil)
	files := w.Run()

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f.Path))
	}
	names = paths(names)
	if len(names) != 2 || names[0] != "a.txt" || names[1] != "b.txt" {
		t.Errorf("got %v, want [a.txt b.txt]", names)
	}
}

func TestRunToleratesNonExistentRoot(t *testing.T) {
	root := t.TempDir()
	createFile(t, filepath.Join(root, "a.txt"), "a")
	missing := filepath.Join(root, "does-not-exist")

	w := New([]string{root, missing}, noFilter(t), 2, nil)
	files := w.Run()

	if len(files) != 1 {
		t.Errorf("got %d files, want 1 (missing root warned, not fatal)", len(files))
	}
}
