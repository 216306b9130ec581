package commands

import (
	"gitlet/pkg/usererr"

	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit [message]",
	Short: "Record the staged changes as a new commit",
	// 消息缺席与消息为空走同一条路，由提交引擎按固定顺序报错
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return usererr.New("Incorrect operands.")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		msg := ""
		if len(args) == 1 {
			msg = args[0]
		}
		return R.Commit(cmd.Context(), msg)
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
