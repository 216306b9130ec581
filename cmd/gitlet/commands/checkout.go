package commands

import (
	"os"

	"gitlet/pkg/usererr"

	"github.com/spf13/cobra"
)

// checkout 有三种形态：
//
//	checkout [branch]
//	checkout -- [file]
//	checkout [commit] -- [file]
//
// 字面量 "--" 是操作数的一部分，关掉 flag 解析让它原样进来
var checkoutCmd = &cobra.Command{
	Use:                "checkout",
	Short:              "Restore a file or switch to a branch",
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		switch {
		case len(args) == 1:
			return R.CheckoutBranch(ctx, os.Stdout, args[0])
		case len(args) == 2 && args[0] == "--":
			return R.CheckoutFile(ctx, args[1])
		case len(args) == 3 && args[1] == "--":
			return R.CheckoutFileAt(ctx, args[0], args[2])
		default:
			return usererr.New("Incorrect operands.")
		}
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}
