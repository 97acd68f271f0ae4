// Package pipeline wires the scan/hash/plan/execute stages together under
// a Config: Walker -> Filter -> Size Grouper -> (Hash Cache | Hash Worker
// Pool) -> Duplicate Assembler -> (Directory Comparator) -> Action Planner
// -> Action Executor.
package pipeline

import (
	"time"

	"github.com/ivoronin/dupereconcile/internal/assembler"
	"github.com/ivoronin/dupereconcile/internal/cache"
	"github.com/ivoronin/dupereconcile/internal/comparator"
	"github.com/ivoronin/dupereconcile/internal/config"
	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/executor"
	"github.com/ivoronin/dupereconcile/internal/filter"
	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/output"
	"github.com/ivoronin/dupereconcile/internal/planner"
	"github.com/ivoronin/dupereconcile/internal/progress"
	"github.com/ivoronin/dupereconcile/internal/sizegroup"
	"github.com/ivoronin/dupereconcile/internal/types"
	"github.com/ivoronin/dupereconcile/internal/walker"
)

// Result is everything a caller (CLI or TUI) might want after a run.
type Result struct {
	DuplicateSets []*types.DuplicateSet
	Diff          *types.DirectoryDiff
	Batch         *executor.BatchResult
}

// Run executes the workflow implied by cfg, reporting progress on bus
// (may be nil). On abort it returns the *errs.Error that stopped the run:
// InvalidConfig from validation or filter construction, or the planner's
// PlanError.
func Run(cfg config.Config, bus *progress.Bus) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filt, err := filter.New(cfg.FilterFrom, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	var c *cache.Cache
	if cfg.CacheLocation != "" {
		c, err = cache.Open(cfg.CacheLocation, string(cfg.Algorithm))
		if err != nil {
			// CacheLoadError is recovered locally: warn and run uncached.
			if bus != nil {
				bus.Send(progress.StatusUpdate("cache", "warning: "+errs.New(errs.CacheLoadError, err).Error()))
			}
			c = nil
		} else {
			defer c.Close()
		}
	}

	var hashCache hasher.Cache
	if c != nil {
		hashCache = c
	}
	pool := hasher.New(cfg.Algorithm, cfg.Parallel, hashCache, cfg.FastMode, bus)

	var result Result
	var err2 error

	if cfg.CopyMissing {
		result, err2 = runCopyMissing(cfg, filt, pool, bus)
	} else {
		result, err2 = runDeduplicate(cfg, filt, pool, bus)
	}
	if err2 != nil {
		return nil, err2
	}

	if cfg.Output != "" {
		if err := output.Write(cfg.Output, cfg.Format, result.DuplicateSets); err != nil && bus != nil {
			bus.Send(progress.ErrorEvent("output", err))
		}
	}

	return &result, nil
}

func runDeduplicate(cfg config.Config, filt *filter.Filter, pool *hasher.Pool, bus *progress.Bus) (Result, error) {
	start := time.Now()

	w := walker.New(cfg.Directories, filt, cfg.Parallel, bus)
	files := w.Run()

	groups := sizegroup.Group(files)
	hashed := pool.Run(groups)
	sets := assembler.Assemble(hashed)

	var batch *executor.BatchResult
	mode := cfg.PlannerMode()
	if mode != planner.ModeListOnly {
		jobs, err := planner.Plan(sets, cfg.Mode, mode, cfg.MoveTo)
		if err != nil {
			return Result{}, err
		}
		b := executor.New(cfg.DryRun, bus).Run(jobs)
		batch = &b
	}

	send(bus, sets, files, start)
	return Result{DuplicateSets: sets, Batch: batch}, nil
}

func runCopyMissing(cfg config.Config, filt *filter.Filter, pool *hasher.Pool, bus *progress.Bus) (Result, error) {
	start := time.Now()

	sourceRoots := cfg.SourceRoots()
	targetRoot := cfg.TargetRoot()
	if targetRoot == "" {
		return Result{}, errs.Newf(errs.InvalidConfig, "copy-missing requires a target root")
	}

	sourceFiles := walker.New(sourceRoots, filt, cfg.Parallel, bus).Run()
	targetFiles := walker.New([]string{targetRoot}, filt, cfg.Parallel, bus).Run()

	var diff *types.DirectoryDiff
	var sets []*types.DuplicateSet
	if cfg.Deduplicate {
		diff, sets = comparator.CompareAndDeduplicate(pool, sourceFiles, targetFiles)
	} else {
		diff = comparator.Compare(pool, sourceFiles, targetFiles)
	}

	jobs, err := planner.PlanCopyMissing(diff, targetRoot)
	if err != nil {
		return Result{}, err
	}
	batch := executor.New(cfg.DryRun, bus).Run(jobs)

	send(bus, sets, append(sourceFiles, targetFiles...), start)
	return Result{DuplicateSets: sets, Diff: diff, Batch: &batch}, nil
}

func send(bus *progress.Bus, sets []*types.DuplicateSet, files []*types.FileRecord, start time.Time) {
	if bus == nil {
		return
	}
	var totalBytes, dupBytes int64
	for _, f := range files {
		totalBytes += f.Size
	}
	for _, s := range sets {
		dupBytes += s.Size * int64(len(s.Files)-1)
	}
	bus.Send(progress.CompletedEvent(progress.Result{
		DuplicateSets:  len(sets),
		TotalFiles:     len(files),
		TotalBytes:     totalBytes,
		DuplicateBytes: dupBytes,
		Elapsed:        time.Since(start),
	}))
}
