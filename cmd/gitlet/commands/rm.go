package commands

import (
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [file]",
	Short: "Unstage a file, or mark a tracked file for removal",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Remove(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
