package api

import (
	"time"

	"mahjong-rtsim/common/http"
	"mahjong-rtsim/runtime/game"
)

func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "rtsim",
	})
	return nil
}

// HealthHandler 返回进程负载、连接数和计算状态
func HealthHandler(worker *game.Worker) http.HandlerFunc {
	return func(c *http.Context) error {
		c.Success(map[string]interface{}{
			"healthy":   true,
			"load":      worker.Monitor.Load(),
			"recording": worker.Recorder.Recording(),
			"nats":      worker.Bridge != nil && worker.Bridge.IsConnected(),
			"timestamp": time.Now().Unix(),
		})
		return nil
	}
}
