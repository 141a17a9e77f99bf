package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookhub/pkg/tracing"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动HTTP服务",
		Example: `  # 使用默认配置启动(端口8080)
  bookhub serve

  # 指定配置文件和端口
  bookhub serve -c config/config.yaml --port 9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 1. 配置与日志
			cfg, logger, err := opts.bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			// 2. 链路追踪(未启用时使用全局no-op实现)
			if cfg.Tracing.Enabled {
				shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
				if err != nil {
					return err
				}
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						logger.Warn("关闭Tracer失败", zap.Error(err))
					}
				}()
			}

			// 3. 依赖注入
			app, cleanup, err := InitializeApp(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			// 4. 启动HTTP服务器
			srv := &http.Server{
				Addr:         cfg.Server.Addr(),
				Handler:      app.Engine,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("🚀 服务启动成功",
					zap.String("addr", srv.Addr),
					zap.String("auth_mode", cfg.Auth.Mode),
					zap.Bool("swagger", cfg.Server.Swagger),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// 5. 优雅关闭：等待信号(由fang取消context)或服务器错误
			select {
			case <-cmd.Context().Done():
				logger.Info("⏳ 正在优雅关闭服务...")
				ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					logger.Error("服务器强制关闭", zap.Error(err))
					return err
				}
				logger.Info("✓ HTTP服务器已关闭")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "监听端口(覆盖server.port)")

	return cmd
}
