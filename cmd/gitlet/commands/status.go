package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches, staged changes and working-tree state",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Status(cmd.Context(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
