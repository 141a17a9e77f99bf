// BookHub 图书目录浏览服务
//
// @title           BookHub API
// @version         1.0
// @description     图书目录浏览服务：图书、作者、出版社的搜索、分面、排序与分页
// @host            localhost:8080
// @BasePath        /
package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
)

const version = "1.0.0"

func main() {
	// fang提供--version、补全、错误样式；收到SIGINT/SIGTERM时取消命令的context
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
