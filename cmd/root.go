package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldprint/slicer/cmd/fill"
	"github.com/fieldprint/slicer/pkg/common"
)

var (
	// Global flags
	verbose    bool
	workers    string
	workingDir string

	// Parsed workers value
	WorkersCount int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slicer",
	Short: "Direction-field path planner for extrusion printing",
	Long: `slicer plans ordered nozzle paths for extrusion printing from a shape
mask and a preferred-direction field.

It provides commands for:
  - Optimising a fill's tunable parameters against a desired pattern
  - Ordering the resulting paths into a low-idle-travel emission sequence
  - Exporting coverage and path data back to disk`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.VerboseEnabled = verbose

		count, err := parseWorkers(workers)
		if err != nil {
			return fmt.Errorf("invalid --workers value: %w", err)
		}
		WorkersCount = count
		common.Verbose("Workers: %d (from flag: %s)", WorkersCount, workers)

		if workingDir != "" {
			common.Verbose("Changing working directory to: %s", workingDir)
			if err := os.Chdir(workingDir); err != nil {
				return fmt.Errorf("failed to change working directory: %w", err)
			}
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVarP(&workers, "workers", "j", "half", "number of concurrent workers (integer, 'half', or 'full')")
	rootCmd.PersistentFlags().StringVarP(&workingDir, "working-dir", "w", "", "working directory to resolve relative paths against")

	rootCmd.AddCommand(fill.GetCommand(func() int { return WorkersCount }))
}

// parseWorkers parses the workers flag value
// Accepts: "full" -> NumCPU(), "half" -> NumCPU()/2, or integer string -> that value
func parseWorkers(value string) (int, error) {
	value = strings.TrimSpace(strings.ToLower(value))

	switch value {
	case "full":
		return runtime.NumCPU(), nil
	case "half":
		count := runtime.NumCPU() / 2
		if count < 1 {
			count = 1
		}
		return count, nil
	default:
		count, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("must be 'full', 'half', or a positive integer (got: %s)", value)
		}
		if count < 1 {
			return 0, fmt.Errorf("must be at least 1 (got: %d)", count)
		}
		return count, nil
	}
}
