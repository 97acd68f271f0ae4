// Package strategy implements the Selection Strategy: a pure
// function choosing the "keeper" of a DuplicateSet under a deterministic
// rule.
package strategy

import (
	"sort"
	"time"

	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Select picks the keeper and the remaining files of set under strategy.
// Cardinality < 2 is a contract violation: callers must filter
// singleton sets before invoking this.
func Select(set *types.DuplicateSet, s types.SelectionStrategy) (keeper *types.FileRecord, others []*types.FileRecord, err error) {
	if len(set.Files) < 2 {
		return nil, nil, errs.Newf(errs.PlanError, "duplicate set has cardinality %d, want >= 2", len(set.Files))
	}

	files := make([]*types.FileRecord, len(set.Files))
	copy(files, set.Files)

	less, ok := comparators[s]
	if !ok {
		return nil, nil, errs.Newf(errs.InvalidConfig, "unknown selection strategy %q", s)
	}

	sort.Slice(files, func(i, j int) bool { return less(files[i], files[j]) })

	keeper = files[0]
	others = files[1:]
	return keeper, others, nil
}

// comparators maps each strategy to a "best-first" less function: the
// keeper is whichever element the sort places first. Ties are always
// broken by lexicographic path order, so the result is a pure function of
// the set's contents.
var comparators = map[types.SelectionStrategy]func(a, b *types.FileRecord) bool{
	types.StrategyShortestPath: func(a, b *types.FileRecord) bool {
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		return a.Path < b.Path
	},
	types.StrategyLongestPath: func(a, b *types.FileRecord) bool {
		if len(a.Path) != len(b.Path) {
			return len(a.Path) > len(b.Path)
		}
		return a.Path < b.Path
	},
	types.StrategyNewestMtime: func(a, b *types.FileRecord) bool {
		am, bm := mtimeOrEpoch(a), mtimeOrEpoch(b)
		if !am.Equal(bm) {
			return am.After(bm)
		}
		return a.Path < b.Path
	},
	types.StrategyOldestMtime: func(a, b *types.FileRecord) bool {
		am, bm := mtimeOrNow(a), mtimeOrNow(b)
		if !am.Equal(bm) {
			return am.Before(bm)
		}
		return a.Path < b.Path
	},
}

// mtimeOrEpoch treats a missing mtime as the Unix epoch: the oldest
// possible time, so an unknown mtime never wins "newest".
func mtimeOrEpoch(f *types.FileRecord) time.Time {
	if f.ModTime.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return f.ModTime
}

// mtimeOrNow treats a missing mtime as the current time: the newest
// possible time, so an unknown mtime never wins "oldest".
func mtimeOrNow(f *types.FileRecord) time.Time {
	if f.ModTime.IsZero() {
		return time.Now()
	}
	return f.ModTime
}
