// Package config defines the Config record the core pipeline is driven
// by.
package config

import (
	"os"
	"runtime"

	"github.com/ivoronin/dupereconcile/internal/errs"
	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/output"
	"github.com/ivoronin/dupereconcile/internal/planner"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// Config is the fully-populated, validated configuration the core pipeline
// consumes.
type Config struct {
	Directories []string // scan roots; if >= 2, last one is the default target
	Target      string   // overrides target root for compare/copy modes

	Deduplicate bool // cross-root duplicate detection in addition to copy-missing
	CopyMissing bool // directory-compare-and-copy workflow instead of intra-tree dedup
	Delete      bool // execute delete jobs after planning
	MoveTo      string

	Algorithm hasher.Algorithm
	Parallel  int
	Mode      types.SelectionStrategy

	Include    []string
	Exclude    []string
	FilterFrom string

	CacheLocation string
	FastMode      bool

	DryRun bool

	Output string
	Format output.Format

	ShowProgress bool
}

// Default returns a Config with the documented defaults applied: one
// worker per logical core, shortest-path selection, progress enabled.
func Default() Config {
	return Config{
		Algorithm:    hasher.SHA256,
		Parallel:     runtime.NumCPU(),
		Mode:         types.StrategyShortestPath,
		ShowProgress: true,
	}
}

// Validate checks the invariants the pipeline requires before it starts:
// at least one directory, every directory and the target (when resolvable)
// existing and being a directory, a recognized algorithm, a
// recognized strategy, a positive worker count, fast-mode requiring a
// cache location, and (when set) a recognized output format.
func (c Config) Validate() error {
	if len(c.Directories) == 0 {
		return errs.Newf(errs.InvalidConfig, "at least one directory is required")
	}
	for _, dir := range c.Directories {
		if err := checkIsDir(dir); err != nil {
			return err
		}
	}
	if c.Target != "" {
		if err := checkIsDir(c.Target); err != nil {
			return err
		}
	}
	if !hasher.Valid(c.Algorithm) {
		return errs.Newf(errs.InvalidConfig, "unknown algorithm %q", c.Algorithm)
	}
	if !types.ValidStrategy(c.Mode) {
		return errs.Newf(errs.InvalidConfig, "unknown selection strategy %q", c.Mode)
	}
	if c.Parallel < 1 {
		return errs.Newf(errs.InvalidConfig, "parallel must be >= 1, got %d", c.Parallel)
	}
	if c.FastMode && c.CacheLocation == "" {
		return errs.Newf(errs.InvalidConfig, "fast-mode requires cache-location")
	}
	if c.Output != "" && !output.Valid(c.Format) {
		return errs.Newf(errs.InvalidConfig, "unknown output format %q", c.Format)
	}
	return nil
}

// checkIsDir stats path and fails fast with InvalidConfig when it's missing
// or not a directory, matching the original_source CLI's preflight stat of
// every source and target root before any scanning begins.
func checkIsDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errs.Newf(errs.InvalidConfig, "directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return errs.Newf(errs.InvalidConfig, "%q is not a directory", path)
	}
	return nil
}

// TargetRoot resolves the effective target root.
func (c Config) TargetRoot() string {
	if c.Target != "" {
		return c.Target
	}
	if len(c.Directories) >= 2 {
		return c.Directories[len(c.Directories)-1]
	}
	return ""
}

// SourceRoots resolves the effective source roots: every directory except
// the resolved target root when one was implied by directory position.
func (c Config) SourceRoots() []string {
	if c.Target != "" {
		return c.Directories
	}
	if len(c.Directories) >= 2 {
		return c.Directories[:len(c.Directories)-1]
	}
	return c.Directories
}

// PlannerMode derives the planner.Mode implied by this configuration.
func (c Config) PlannerMode() planner.Mode {
	switch {
	case c.Delete:
		return planner.ModeDelete
	case c.MoveTo != "":
		return planner.ModeMove
	default:
		return planner.ModeListOnly
	}
}
