package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivoronin/dupereconcile/internal/hasher"
	"github.com/ivoronin/dupereconcile/internal/output"
	"github.com/ivoronin/dupereconcile/internal/progress"
	"github.com/ivoronin/dupereconcile/internal/types"
)

// commonOptions holds the flags shared by every subcommand.
type commonOptions struct {
	algorithm     string
	parallel      int
	mode          string
	include       []string
	exclude       []string
	filterFrom    string
	cacheLocation string
	fastMode      bool
	dryRun        bool
	noProgress    bool
	outputFile    string
	format        string
}

func bindCommonFlags(cmd *cobra.Command, o *commonOptions, defaultParallel int) {
	cmd.Flags().StringVar(&o.algorithm, "algorithm", string(hasher.SHA256), "Hash algorithm: md5, sha1, sha256, blake3, xxhash, crc32, fnv1a")
	cmd.Flags().IntVar(&o.parallel, "parallel", defaultParallel, "Number of parallel hash workers")
	cmd.Flags().StringVar(&o.mode, "mode", string(types.StrategyShortestPath), "Selection strategy: shortest-path, longest-path, newest-mtime, oldest-mtime")
	cmd.Flags().StringSliceVar(&o.include, "include", nil, "Glob patterns to include")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "Glob patterns to exclude")
	cmd.Flags().StringVar(&o.filterFrom, "filter-from", "", "Path to a filter file (+/- pattern lines)")
	cmd.Flags().StringVar(&o.cacheLocation, "cache-location", "", "Directory for the persistent hash cache")
	cmd.Flags().BoolVar(&o.fastMode, "fast-mode", false, "Enable cache lookups (requires --cache-location)")
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "Log intended actions without modifying the filesystem")
	cmd.Flags().BoolVar(&o.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "Write the duplicate set list to this file")
	cmd.Flags().StringVar(&o.format, "format", string(output.FormatJSON), "Output format: json, toml")
}

func newBus(showProgress bool) (*progress.Bus, *progress.Meter) {
	bus := progress.NewBus(256)
	meter := progress.NewMeter(showProgress)
	return bus, meter
}

func runWithMeter(bus *progress.Bus, meter *progress.Meter, work func() error) error {
	done := make(chan struct{})
	go func() {
		meter.Run(bus.Events())
		close(done)
	}()

	err := work()
	bus.Close()
	<-done
	return err
}

func reportBatch(label string, successCount, failureCount int) {
	fmt.Printf("%s: %d succeeded, %d failed\n", label, successCount, failureCount)
}
