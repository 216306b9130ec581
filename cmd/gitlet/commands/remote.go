package commands

import (
	"os"

	"gitlet/pkg/remote"

	"github.com/spf13/cobra"
)

var addRemoteCmd = &cobra.Command{
	Use:   "add-remote [name] [path]",
	Short: "Register another on-disk repository under a name",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return remote.NewManager(R).Add(args[0], args[1])
	},
}

var rmRemoteCmd = &cobra.Command{
	Use:   "rm-remote [name]",
	Short: "Forget a configured remote",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return remote.NewManager(R).Remove(args[0])
	},
}

var pushCmd = &cobra.Command{
	Use:   "push [remote] [branch]",
	Short: "Fast-forward a remote branch to the local head",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return remote.NewManager(R).Push(cmd.Context(), args[0], args[1])
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [remote] [branch]",
	Short: "Copy a remote branch's history into a local mirror branch",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return remote.NewManager(R).Fetch(cmd.Context(), args[0], args[1])
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull [remote] [branch]",
	Short: "Fetch a remote branch and merge its mirror into the current branch",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := remote.NewManager(R).Fetch(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return R.Merge(cmd.Context(), os.Stdout, remote.MirrorBranch(args[0], args[1]))
	},
}

func init() {
	rootCmd.AddCommand(addRemoteCmd)
	rootCmd.AddCommand(rmRemoteCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pullCmd)
}
