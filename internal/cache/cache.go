// Package cache implements a persistent hash cache: a content-addressed
// store of prior hashes keyed by (path, size, mtime, algorithm) that lets
// repeat scans skip I/O, with atomic persistence.
//
// The on-disk form is namespaced by algorithm — one file per algorithm
// tag, named "file_hashes_<algorithm>.cache" — a whole-document JSON map
// of absolute path to {size, hash, mtime, algorithm}, loaded fully at open
// and rewritten fully (temp file + fsync + rename) at flush.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ivoronin/dupereconcile/internal/types"
)

// Cache is a persistent, in-memory-backed store of CacheEntry keyed by
// absolute path. Many readers and one writer are safe via the embedded
// RWMutex.
type Cache struct {
	path    string
	enabled bool

	mu      sync.RWMutex
	entries map[string]types.CacheEntry
	dirty   bool

	lastErr error
}

func cacheFileName(dir, algorithm string) string {
	return filepath.Join(dir, fmt.Sprintf("file_hashes_%s.cache", algorithm))
}

// Open loads the cache file for algorithm under dir, if it exists. dir=""
// disables the cache entirely (Lookup always misses, Store/Flush/Close are
// no-ops) — this lets callers construct a Cache unconditionally and branch
// only on whether caching was requested.
//
// A parse failure yields an empty cache and is never fatal; call LastError after Open to inspect it if desired.
func Open(dir, algorithm string) (*Cache, error) {
	if dir == "" {
		return &Cache{entries: map[string]types.CacheEntry{}}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	c := &Cache{
		path:    cacheFileName(dir, algorithm),
		enabled: true,
		entries: map[string]types.CacheEntry{},
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		c.lastErr = fmt.Errorf("read cache file: %w", err)
		return c, nil
	}

	var entries map[string]types.CacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt cache file: proceed with an empty cache, never abort.
		c.lastErr = fmt.Errorf("parse cache file: %w", err)
		return c, nil
	}
	c.entries = entries

	return c, nil
}

// LastError returns the most recent non-fatal load or flush error, or nil.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Lookup returns the cached hash for path if a valid entry exists: the
// algorithm, size, and mtime must all match the stored entry.
func (c *Cache) Lookup(path string, size int64, modTime time.Time, algorithm string) (string, bool) {
	if !c.enabled {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok || !entry.Valid(size, modTime, algorithm) {
		return "", false
	}
	return entry.Hash, true
}

// Store records a freshly computed hash for path. Writes accumulate in
// memory under a dirty flag; nothing touches disk until Flush.
func (c *Cache) Store(path string, size int64, modTime time.Time, algorithm, hash string) {
	if !c.enabled {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = types.CacheEntry{
		Size:      size,
		Hash:      hash,
		ModTime:   modTime,
		Algorithm: algorithm,
	}
	c.dirty = true
}

// Flush serializes the cache to a temp file alongside the target, fsyncs
// it, then renames over the target. A no-op when the cache is disabled or
// not dirty.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *Cache) flushLocked() error {
	if !c.enabled || !c.dirty {
		return nil
	}

	data, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	tmp := c.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("fsync temp cache file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}

	c.dirty = false
	return nil
}

// Close attempts a final flush and records any error internally (retrieve
// via LastError); it never propagates.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.flushLocked(); err != nil {
		c.lastErr = err
	}
}
