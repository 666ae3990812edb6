package cmd

import (
	"errors"
	"os"

	cfgpkg "github.com/KaramelBytes/colstat-cli/internal/config"
	"github.com/KaramelBytes/colstat-cli/internal/input"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags (override config when set)
	cfgFile             string
	debug               bool
	flagDelimiter       string
	flagOutputDelimiter string
	flagPrecision       int
	flagZeroAsEmpty     bool
	flagCardinality     string
	flagCardinalityCap  int
	flagSketchPrecision int
	flagMaxLineSize     string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "colstat",
	Short: "colstat: single-pass statistics for delimited line streams",
	Long: `colstat reads newline-delimited records from a file or stdin and prints
summary statistics in one pass: numeric profiles, per-group numeric or string
profiles, and per-column profiles of CSV input.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(color.Error, "✗ Error:", err)
		if errors.Is(err, input.ErrInteractive) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = loadConfig

	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.colstat/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVarP(&flagDelimiter, "delimiter", "d", ",", "input field delimiter (a character, or tab/comma/semicolon/pipe/space)")
	f.StringVarP(&flagOutputDelimiter, "output-delimiter", "D", "", "print delimited text instead of a table")
	f.IntVarP(&flagPrecision, "precision", "p", 0, "decimal places for floating point statistics")
	f.BoolVarP(&flagZeroAsEmpty, "zero-as-empty", "z", false, "treat numeric zero as an empty value")
	f.StringVar(&flagCardinality, "cardinality", "exact", "distinct counting strategy: exact or sketch")
	f.IntVar(&flagCardinalityCap, "cardinality-cap", 0, "stop exact distinct counting after this many values (0 disables)")
	f.IntVar(&flagSketchPrecision, "sketch-precision", 0, "HyperLogLog precision for --cardinality sketch (4-16)")
	f.StringVar(&flagMaxLineSize, "max-line-size", "", "longest accepted input line, e.g. 64KB or 16MB")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}

	// Apply CLI overrides if provided
	f := cmd.Root().PersistentFlags()
	if f.Changed("delimiter") {
		c.InputDelimiter = flagDelimiter
	}
	if f.Changed("output-delimiter") {
		c.OutputDelimiter = flagOutputDelimiter
	}
	if f.Changed("precision") {
		c.Precision = flagPrecision
	}
	if f.Changed("zero-as-empty") {
		c.ZeroAsEmpty = flagZeroAsEmpty
	}
	if f.Changed("cardinality") {
		c.CardinalityStrategy = flagCardinality
	}
	if f.Changed("cardinality-cap") {
		c.CardinalityCap = flagCardinalityCap
	}
	if f.Changed("sketch-precision") {
		c.SketchPrecision = flagSketchPrecision
	}
	if f.Changed("max-line-size") {
		c.MaxLineSize = flagMaxLineSize
	}
	if debug {
		c.LogLevel = "DEBUG"
	}
	cfg = c
	return nil
}
