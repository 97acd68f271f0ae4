// Package walker performs a parallel filesystem traversal, the first stage
// of the scan/hash pipeline.
//
// # Concurrency model
//
// The walker fans out one goroutine per discovered directory, bounded by a
// semaphore, and fans the results back in through a single collector
// goroutine: a breadth-controlled depth-first traversal. FileRecord carries
// no dev/ino sibling tracking, since duplicates here are identified by
// content hash rather than by shared inode.
package walker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/ivoronin/dupereconcile/internal/filter"
	"github.com/ivoronin/dupereconcile/internal/progress"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Walker discovers in-scope regular files under a set of root paths.
//
// Designed for single use: construct with New, call Run once.
type Walker struct {
	roots   []string
	filt    *filter.Filter
	workers int
	bus     *progress.Bus

	wg       sync.WaitGroup
	sem      types.Semaphore
	resultCh chan *types.FileRecord
	scanned  atomic.Int64
}

// New creates a Walker over roots, applying filt, using up to workers
// concurrent directory reads, reporting progress on bus (may be nil).
func New(roots []string, filt *filter.Filter, workers int, bus *progress.Bus) *Walker {
	if workers < 1 {
		workers = 1
	}
	return &Walker{roots: roots, filt: filt, workers: workers, bus: bus}
}

// Run walks every root and returns the discovered, in-scope FileRecords.
//
// Skipped unconditionally: dotfiles, symlinks, non-regular files, and
// paths that aren't valid UTF-8 (a portability tradeoff, kept deliberately
// simple rather than attempting lossy re-encoding).
// Metadata errors on a single entry are warned via the bus and the entry is
// dropped; they never abort traversal.
func (w *Walker) Run() []*types.FileRecord {
	w.sem = types.NewSemaphore(w.workers)
	w.resultCh = make(chan *types.FileRecord, 1000)

	var results []*types.FileRecord
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for r := range w.resultCh {
			results = append(results, r)
		}
	}()

	for _, root := range w.roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			w.warn(err)
			continue
		}
		w.walkDir(abs)
	}

	w.wg.Wait()
	close(w.resultCh)
	collectorWg.Wait()

	w.status("walked %d files, matched %d", w.scanned.Load(), int64(len(results)))
	return results
}

func (w *Walker) walkDir(dir string) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.sem.Acquire()
		subdirs, err := w.readDir(dir)
		w.sem.Release()
		if err != nil {
			w.warn(err)
			return
		}

		for _, sub := range subdirs {
			w.walkDir(sub)
		}
	}()
}

// readDir lists one directory, emitting matched files to resultCh and
// returning subdirectories to recurse into. This is the only place
// directory I/O happens, protected by the semaphore.
func (w *Walker) readDir(dir string) ([]string, error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = d.Close() }()

	var subdirs []string
	const batchSize = 1000
	for {
		entries, err := d.ReadDir(batchSize)
		if len(entries) == 0 {
			if err != nil && err != io.EOF {
				return subdirs, err
			}
			break
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if !utf8.ValidString(name) {
				w.warn(fmt.Errorf("skipping non-UTF-8 path under %s", dir))
				continue
			}

			full := filepath.Join(dir, name)

			if entry.IsDir() {
				subdirs = append(subdirs, full)
				continue
			}

			info, err := entry.Info()
			if err != nil {
				w.warn(err)
				continue
			}
			if info.Mode()&os.ModeSymlink != 0 || !info.Mode().IsRegular() {
				continue
			}

			n := w.scanned.Add(1)
			if n%100 == 0 {
				w.status("walked %d files", n)
			}

			if !w.filt.InScope(full) {
				continue
			}

			w.resultCh <- &types.FileRecord{
				Path:    full,
				Size:    info.Size(),
				ModTime: info.ModTime(),
				CTime:   ctime(info),
			}
		}
	}
	return subdirs, nil
}

func (w *Walker) warn(err error) {
	if w.bus != nil {
		w.bus.Send(progress.StatusUpdate("walk", "warning: "+err.Error()))
	}
}

func (w *Walker) status(format string, args ...any) {
	if w.bus != nil {
		w.bus.Send(progress.StatusUpdate("walk", fmt.Sprintf(format, args...)))
	}
}
