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

type scanOptions struct {
	commonOptions
	deleteFlag bool
	moveTo     string
}

// newScanCmd builds the intra-tree deduplication workflow: list-only by
// default, or delete/move when the matching flags are set.
func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [directories...]",
		Short: "Find duplicate files within one or more directory trees",
		Long: `Scans one or more directory trees for duplicate files.

By default, duplicate sets are reported but nothing is modified. Use
--delete to remove every non-keeper file, or --move-to DIR to relocate
them instead, under the selection strategy chosen by --mode.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScan(args, opts)
		},
	}

	bindCommonFlags(cmd, &opts.commonOptions, runtime.NumCPU())
	cmd.Flags().BoolVar(&opts.deleteFlag, "delete", false, "Execute delete jobs after planning")
	cmd.Flags().StringVar(&opts.moveTo, "move-to", "", "Execute move jobs to this directory")

	return cmd
}

func runScan(directories []string, opts *scanOptions) error {
	cfg := config.Config{
		Directories:   directories,
		Delete:        opts.deleteFlag,
		MoveTo:        opts.moveTo,
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

	fmt.Printf("found %d duplicate set(s)\n", len(result.DuplicateSets))
	if result.Batch != nil {
		reportBatch("jobs", result.Batch.SuccessCount, result.Batch.FailureCount)
	}
	return nil
}
