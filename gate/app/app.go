package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mahjong-rtsim/common/config"
	"mahjong-rtsim/common/http"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/core/container"
	"mahjong-rtsim/gate/api"
)

// Run 1.创建依赖容器并启动 Worker。 2.启动 HTTP 服务。 3.收到信号后优雅停止。
func Run(ctx context.Context) error {
	c, err := container.NewSimContainer(ctx, config.Conf)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Worker.Start(ctx); err != nil {
		return fmt.Errorf("Worker 启动失败: %w", err)
	}

	// 使用 common 封装的 gin 库 http-server
	server := http.NewHttpServer(
		http.WithPort(config.Conf.HttpPort),
		http.WithMode(config.Conf.Log.Level),
		http.WithErrorMapper(api.MapError),
	)

	// 中间处理器注册
	server.Use(
		http.RequestIDMiddleware(),
		http.CorsMiddleware(),
		http.SecurityMiddleware(),
		http.LoggerMiddleware(),
	)

	// 路由注册
	api.RegisterRoutes(server, c.Worker)

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", config.Conf.HttpPort)
		errCh <- server.Start()
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sig)
	select {
	case <-ctx.Done():
		stop()
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP 服务器启动失败: %w", err)
		}
		return nil
	case s := <-sig:
		stop()
		if s == syscall.SIGHUP {
			log.Info("挂起信号，服务停止")
		} else {
			log.Info("中断信号，服务停止")
		}
		return nil
	}
}
