package commands

import (
	"os"

	"gitlet/pkg/repo"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a repository in the current directory",
	Long:  `Create the metadata directory, the initial commit, and the master branch.`,
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		R, err = repo.Init(wd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
