package commands

import (
	"fmt"
	"log/slog"
	"os"

	"gitlet/pkg/config"
	"gitlet/pkg/repo"
	"gitlet/pkg/usererr"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	// 全局仓库实例，供子命令使用
	R *repo.Repository
)

var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "Gitlet: a miniature content-addressed version-control system",
	// 命令输出就是对外接口，cobra 自带的错误与 usage 回显全部关掉
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.ArbitraryArgs,
	// 空参数与未知命令都落到这里
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return usererr.New("Please enter a command.")
		}
		return usererr.New("No command with that name exists.")
	},
	// 【关键】PersistentPreRunE 会在所有子命令执行前运行
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init 是去创建环境的，help 和根命令本身 (空参数/未知命令) 不需要仓库
		if cmd.Name() == "init" || cmd.Name() == "help" || cmd.Parent() == nil {
			return nil
		}

		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		R, err = repo.Open(wd)
		return err
	},
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

// Execute 是入口。返回进程退出码：
// 用户错误打印到 stdout 并按成功状态退出，内部错误才是非零
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if ue, ok := usererr.From(err); ok {
			fmt.Println(ue.Msg)
			return 0
		}
		fmt.Fprintln(os.Stderr, "gitlet:", err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml, else $HOME/.gitlet/config.yaml)")
}

// initConfig 读取配置文件和环境变量，并装好日志
func initConfig() {
	if err := config.Load(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Config error:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel(),
	})))
}

// exactArgs 操作数个数校验，差一个都按统一口径报错
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usererr.New("Incorrect operands.")
		}
		return nil
	}
}
