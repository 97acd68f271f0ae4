package types

import "time"

// CacheEntry is one record in the persistent Hash Cache, keyed externally
// by absolute path (see internal/cache).
type CacheEntry struct {
	Size      int64     `json:"size"`
	Hash      string    `json:"hash"`
	ModTime   time.Time `json:"mtime"`
	Algorithm string    `json:"algorithm"`
}

// Valid reports whether this entry can satisfy a lookup for a file with the
// given current size, mtime, and algorithm.
func (e *CacheEntry) Valid(size int64, modTime time.Time, algorithm string) bool {
	return e.Algorithm == algorithm && e.Size == size && e.ModTime.Equal(modTime)
}
