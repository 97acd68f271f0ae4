package hasher

import (
	"fmt"
	"sync"
	"time"

	"github.com/ivoronin/dupereconcile/internal/progress"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Cache is the subset of the hash cache's contract the worker pool needs:
// a lookup before hashing and a store after. Accepting an interface here
// (rather than the concrete internal/cache type) keeps the worker pool
// testable without a real cache and treats caching as an optional
// collaborator, not a hard dependency.
type Cache interface {
	Lookup(path string, size int64, modTime time.Time, algorithm string) (string, bool)
	Store(path string, size int64, modTime time.Time, algorithm, hash string)
}

// GroupResult is the Hash stage's output for one size group: files bucketed
// by hash.
type GroupResult struct {
	Size   int64
	ByHash map[string][]*types.FileRecord
}

// Pool is the Hash Worker Pool. It holds no per-run state, so Run may be
// called more than once on the same Pool.
type Pool struct {
	algorithm     Algorithm
	workers       int
	cache         Cache // nil disables caching entirely
	lookupEnabled bool  // gates Lookup; Store always runs when cache != nil
	bus           *progress.Bus
}

// New creates a Pool. cache may be nil to disable caching entirely.
// lookup gates whether the cache is consulted before hashing a file:
// cache-location alone enables the store, and lookup is the separate
// fast-mode knob on top of it, so a populated cache still accumulates
// hashes when lookup is false, it's just never consulted.
func New(algorithm Algorithm, workers int, cache Cache, lookup bool, bus *progress.Bus) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{algorithm: algorithm, workers: workers, cache: cache, lookupEnabled: lookup, bus: bus}
}

// Run hashes every file in every size group, distributing groups across
// workers. Ordering of emitted groups is not guaranteed. A per-file I/O or hashing error is warned and the file
// omitted from its group; it does not invalidate the rest of the group.
func (p *Pool) Run(groups map[int64][]*types.FileRecord) []GroupResult {
	type job struct {
		size  int64
		files []*types.FileRecord
	}

	jobCh := make(chan job, len(groups))
	for size, files := range groups {
		jobCh <- job{size: size, files: files}
	}
	close(jobCh)

	resultCh := make(chan GroupResult, len(groups))

	var wg sync.WaitGroup
	var completed int64
	var mu sync.Mutex
	total := len(groups)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				resultCh <- p.hashGroup(j.size, j.files)
				mu.Lock()
				completed++
				n := completed
				mu.Unlock()
				p.status("hashed %d of %d groups", n, total)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var results []GroupResult
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

func (p *Pool) hashGroup(size int64, files []*types.FileRecord) GroupResult {
	byHash := make(map[string][]*types.FileRecord)

	for _, f := range files {
		hash, ok := p.lookupCache(f)
		if !ok {
			var err error
			hash, err = HashFile(f.Path, p.algorithm)
			if err != nil {
				p.warn(err)
				continue
			}
			p.storeCache(f, hash)
		}
		f.Hash = hash
		byHash[hash] = append(byHash[hash], f)
	}

	return GroupResult{Size: size, ByHash: byHash}
}

func (p *Pool) lookupCache(f *types.FileRecord) (string, bool) {
	if p.cache == nil || !p.lookupEnabled {
		return "", false
	}
	return p.cache.Lookup(f.Path, f.Size, f.ModTime, string(p.algorithm))
}

func (p *Pool) storeCache(f *types.FileRecord, hash string) {
	if p.cache == nil {
		return
	}
	// Cache failures are non-fatal: the hash is still
	// returned, only the persistence side-effect is lost. Store itself
	// never returns an error (see internal/cache); any I/O failure
	// surfaces only on the next Flush.
	p.cache.Store(f.Path, f.Size, f.ModTime, string(p.algorithm), hash)
}

func (p *Pool) warn(err error) {
	if p.bus != nil {
		p.bus.Send(progress.StatusUpdate("hash", "warning: "+err.Error()))
	}
}

func (p *Pool) status(format string, args ...any) {
	if p.bus != nil {
		p.bus.Send(progress.StatusUpdate("hash", fmt.Sprintf(format, args...)))
	}
}
