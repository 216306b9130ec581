package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// 默认值。配置文件与环境变量都缺省时，行为与硬编码布局完全一致。
const (
	DefaultRepoDir    = ".gitlet"
	DefaultIgnoreFile = ".gitletignore"
)

// Load 初始化 Viper 配置
// cfgFile: 可选，用户显式指定的配置文件路径
// 注意：这里不往 stdout 打印任何内容，命令输出是对外接口的一部分
func Load(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 搜索顺序：当前目录 -> 主目录下的 .gitlet
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, DefaultRepoDir))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config") // 找 config.yaml
	}

	// 读取环境变量 (GITLET_REPO_DIR 等)
	viper.SetEnvPrefix("GITLET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// 没找到配置文件不算错；找到了但格式坏了才是错
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("repo.dir", DefaultRepoDir)
	viper.SetDefault("ignore.file", DefaultIgnoreFile)
	viper.SetDefault("log.level", "warn")
}

// RepoDirName 仓库元数据目录名
func RepoDirName() string {
	if v := viper.GetString("repo.dir"); v != "" {
		return v
	}
	return DefaultRepoDir
}

// IgnoreFileName 工作区扫描的忽略文件名
func IgnoreFileName() string {
	if v := viper.GetString("ignore.file"); v != "" {
		return v
	}
	return DefaultIgnoreFile
}

// LogLevel 解析日志级别配置
func LogLevel() slog.Level {
	switch viper.GetString("log.level") {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
