package commands

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Stage a file for the next commit",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Add(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
