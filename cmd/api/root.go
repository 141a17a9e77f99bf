package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookhub/internal/infrastructure/config"
	"github.com/xiebiao/bookhub/internal/infrastructure/logger"
)

// rootOptions 所有子命令共享的参数
type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bookhub",
		Short: "BookHub图书目录浏览服务",
		Long: `BookHub提供图书、作者、出版社三个目录列表的搜索、分面、排序与分页。

配置来源(优先级从高到低)：环境变量(BOOKHUB_前缀) > 配置文件 > 默认值。
当前目录下的.env会在启动时加载。`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env不存在时忽略
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"配置文件路径(默认在./config和当前目录查找config.yaml)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newQueryCmd(opts))

	return cmd
}

// bootstrap 加载配置并创建日志
func (o *rootOptions) bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}
