package cmd

import (
	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/spf13/cobra"
)

var groupNumberCmd = &cobra.Command{
	Use:   "group-number [file|-]",
	Short: "Profile numbers per group key",
	Long: `Each line is "<key><delim><value>". The value is everything after the last
delimiter, so keys may themselves contain the delimiter and are printed as
separate columns. Lines without a delimiter are counted under <INVALID>.`,
	Example: `  printf 'g1,10\ng1,20\ng2,30\n' | colstat group-number
  colstat group-number -d ';' -D ';' sales.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: profileCommand(profile.ModeGroupNumber),
}

var groupStringCmd = &cobra.Command{
	Use:   "group-string [file|-]",
	Short: "Profile string values and their lengths per group key",
	Long: `Each line is "<key><delim><value>". Reports distinct count, lexicographic
min and max, and byte length statistics for the values of every group.`,
	Example: `  colstat group-string --cardinality sketch events.tsv -d tab`,
	Args:    cobra.MaximumNArgs(1),
	RunE:    profileCommand(profile.ModeGroupString),
}

func init() {
	rootCmd.AddCommand(groupNumberCmd)
	rootCmd.AddCommand(groupStringCmd)
}
