package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [branch]",
	Short: "Merge the given branch into the current branch",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Merge(cmd.Context(), os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
