package commands

import (
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:   "branch [name]",
	Short: "Create a new branch pointing at the current head",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.Branch(args[0])
	},
}

var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch [name]",
	Short: "Delete a branch pointer",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return R.RemoveBranch(args[0])
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
}
