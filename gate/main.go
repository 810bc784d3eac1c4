package main

import (
	"context"
	"fmt"
	"os"

	"mahjong-rtsim/common/config"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/common/metrics"
	"mahjong-rtsim/gate/app"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "rtsim",
	Short: "实时牌面服务",
	Long:  `实时牌面服务：载入识别快照、编辑牌面、调用远程计算、记录牌谱`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Load(configFile); err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(config.Conf.AppName, config.Conf.Log.Level)
		log.Info("配置文件: %+v", config.Conf)
		// 日志级别支持热更新
		config.OnChange(func(c *config.Config) {
			log.SetLevel(c.Log.Level)
		})

		if config.Conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", config.Conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", config.Conf.MetricPort)); err != nil {
					log.Error("监控服务异常: %v", err)
				}
			}()
		}

		if err := app.Run(context.Background()); err != nil {
			log.Error("发生异常: %v", err)
			os.Exit(-1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "configFile", "", "resource file")
	rootCmd.MarkFlagRequired("configFile")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}
