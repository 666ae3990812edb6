package cmd

import (
	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/spf13/cobra"
)

var csvCmd = &cobra.Command{
	Use:   "csv [file|-]",
	Short: "Profile every column of a delimited file with a header row",
	Long: `The first line names the columns. Every field of the following lines is
profiled as a string, as a number and by its length. Extra fields on a row are
ignored and short rows only contribute to the columns they reach. No quoting is
recognized.`,
	Example: `  colstat csv data.csv
  colstat csv -d tab -D tab export.tsv.zst`,
	Args: cobra.MaximumNArgs(1),
	RunE: profileCommand(profile.ModeCSV),
}

func init() {
	rootCmd.AddCommand(csvCmd)
}
