package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the history of the current branch",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Log(cmd.Context(), os.Stdout)
	},
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit in the repository",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.GlobalLog(cmd.Context(), os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
}
