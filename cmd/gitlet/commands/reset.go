package commands

import (
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [commit]",
	Short: "Move the current branch to a commit and rebuild the working tree",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Reset(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
