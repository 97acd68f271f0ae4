package hasher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivoronin/dupereconcile/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) *types.FileRecord {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return &types.FileRecord{Path: path, Size: info.Size(), ModTime: info.ModTime()}
}

func TestRunHashesAndGroupsBySize(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "same")
	b := writeFile(t, dir, "b", "same")
	c := writeFile(t, dir, "c", "diff")

	pool := New(XXHash, 2, nil, false, nil)
	groups := pool.Run(map[int64][]*types.FileRecord{
		a.Size: {a, b, c},
	})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].ByHash) != 2 {
		t.Errorf("got %d distinct hashes, want 2", len(groups[0].ByHash))
	}
}

func TestRunSetsFileHash(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "content")

	pool := New(XXHash, 1, nil, false, nil)
	pool.Run(map[int64][]*types.FileRecord{a.Size: {a}})

	if a.Hash == "" {
		t.Error("expected FileRecord.Hash to be populated after Run")
	}
}

type fakeCache struct {
	lookups int
	stores  int
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Lookup(path string, _ int64, _ time.Time, _ string) (string, bool) {
	c.lookups++
	h, ok := c.entries[path]
	return h, ok
}

func (c *fakeCache) Store(path string, _ int64, _ time.Time, _ string, hash string) {
	c.stores++
	c.entries[path] = hash
}

func TestFastModeDisabledNeverConsultsLookupButStillStores(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "content")

	cache := newFakeCache()
	pool := New(XXHash, 1, cache, false, nil)
	pool.Run(map[int64][]*types.FileRecord{a.Size: {a}})

	if cache.lookups != 0 {
		t.Errorf("got %d lookups, want 0 when fast-mode is disabled", cache.lookups)
	}
	if cache.stores != 1 {
		t.Errorf("got %d stores, want 1 (cache-location still accumulates hashes)", cache.stores)
	}
}

func TestFastModeEnabledConsultsCache(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "content")

	cache := newFakeCache()
	cache.entries[a.Path] = "precomputed"

	pool := New(XXHash, 1, cache, true, nil)
	groups := pool.Run(map[int64][]*types.FileRecord{a.Size: {a}})

	if cache.lookups != 1 {
		t.Errorf("got %d lookups, want 1 when fast-mode is enabled", cache.lookups)
	}
	if _, ok := groups[0].ByHash["precomputed"]; !ok {
		t.Error("expected the cached hash to be used instead of re-hashing")
	}
}

func TestRunOmitsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	missing := &types.FileRecord{Path: filepath.Join(dir, "does-not-exist"), Size: 4}

	pool := New(XXHash, 1, nil, false, nil)
	groups := pool.Run(map[int64][]*types.FileRecord{missing.Size: {missing}})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].ByHash) != 0 {
		t.Errorf("got %d hashes, want 0 (unreadable file dropped, not fatal)", len(groups[0].ByHash))
	}
}
