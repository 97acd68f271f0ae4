// Command dupereconcile is the CLI surface for the core engine: a thin
// cobra binary that builds a config.Config and calls into
// internal/pipeline: a Config struct crosses into the core, with no
// scan/hash/plan logic living in cmd/ itself.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:     "dupereconcile",
		Short:   "Find and reconcile duplicate files across directory trees",
		Version: version + " (" + commit + ")",
	}

	root.AddCommand(newScanCmd())
	root.AddCommand(newCopyMissingCmd())

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
