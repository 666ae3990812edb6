package cmd

import (
	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/spf13/cobra"
)

var numberCmd = &cobra.Command{
	Use:   "number [file|-]",
	Short: "Profile a stream of numbers, one per line",
	Long: `Reads one value per line and reports count, empty and error counts, min,
max, sum, mean and population standard deviation. Values that do not parse as
finite decimal numbers are counted as errors.`,
	Example: `  seq 1 5 | colstat number
  colstat number -p 2 latencies.txt.gz`,
	Args: cobra.MaximumNArgs(1),
	RunE: profileCommand(profile.ModeNumber),
}

func init() {
	rootCmd.AddCommand(numberCmd)
}
