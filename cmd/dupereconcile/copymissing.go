package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ivoronin/dupereconcile/internal/config"
	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/output"
	"github.com/ivoronin/dupereconcile/internal/pipeline"
	"github.com/ivoronin/dupereconcile/internal/types"
)

type copyMissingOptions struct {
	commonOptions
	target      string
	deduplicate bool
}

// newCopyMissingCmd builds the directory-compare-and-copy workflow: mirror
// one or more source roots into a target root by copying only the files
// whose content the target doesn't already have.
func newCopyMissingCmd() *cobra.Command {
	opts := &copyMissingOptions{}

	cmd := &cobra.Command{
		Use:   "copy-missing [sources...]",
		Short: "Copy files from source trees into a target tree when their content is missing there",
		Long: `Compares one or more source directory trees against a target tree by
content hash and copies every source file whose hash has no match in the
target. With --deduplicate, also reports duplicate sets across the union
of all source and target files.

--target may be omitted when at least two directories are given: the
last one is then used as the target and the rest as sources.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCopyMissing(args, opts)
		},
	}

	bindCommonFlags(cmd, &opts.commonOptions, runtime.NumCPU())
	cmd.Flags().StringVar(&opts.target, "target", "", "Target root (defaults to the last source directory when >= 2 are given)")
	cmd.Flags().BoolVar(&opts.deduplicate, "deduplicate", false, "Also report duplicate sets across all source and target files")

	return cmd
}

func runCopyMissing(sources []string, opts *copyMissingOptions) error {
	cfg := config.Config{
		Directories:   sources,
		Target:        opts.target,
		CopyMissing:   true,
		Deduplicate:   opts.deduplicate,
		Algorithm:     hasher.Algorithm(opts.algorithm),
		Parallel:      opts.parallel,
		Mode:          types.SelectionStrategy(opts.mode),
		Include:       opts.include,
		Exclude:       opts.exclude,
		FilterFrom:    opts.filterFrom,
		CacheLocation: opts.cacheLocation,
		FastMode:      opts.fastMode,
		DryRun:        opts.dryRun,
		Output:        opts.outputFile,
		Format:        output.Format(opts.format),
		ShowProgress:  !opts.noProgress,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bus, meter := newBus(cfg.ShowProgress)
	var result *pipeline.Result
	err := runWithMeter(bus, meter, func() error {
		var runErr error
		result, runErr = pipeline.Run(cfg, bus)
		return runErr
	})
	if err != nil {
		return err
	}

	fmt.Printf("copied missing files: %d succeeded, %d failed\n",
		result.Batch.SuccessCount, result.Batch.FailureCount)
	if opts.deduplicate {
		fmt.Printf("found %d duplicate set(s) across source and target\n", len(result.DuplicateSets))
	}
	return nil
}
