package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [message]",
	Short: "List the ids of all commits with the given message",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Find(cmd.Context(), os.Stdout, args[0])
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
