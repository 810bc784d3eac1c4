package api

import (
	"mahjong-rtsim/common/http"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/runtime/game"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, worker *game.Worker) {
	server.GET("/ping", PingHandler)
	server.GET("/health", HealthHandler(worker))
	server.GET("/ws", func(c *http.Context) error {
		if err := worker.Hub.Serve(c.Writer(), c.Request()); err != nil {
			// 升级失败时 websocket 已写回响应
			log.Warn("websocket 升级失败: %v", err)
		}
		return nil
	})

	v1 := server.Group("/api/v1")
	{
		board := v1.Group("/board")
		bh := NewBoardHandler(worker.Session)
		{
			board.GET("", bh.View)
			board.POST("/reset", bh.Reset)
			board.POST("/snapshot", bh.LoadSnapshot)
			board.POST("/select", bh.Select)
			board.POST("/deselect", bh.Deselect)
			board.POST("/pick", bh.Pick)
			board.POST("/remove", bh.Remove)
			board.POST("/turn", bh.AdvanceTurn)
			board.POST("/round-wind", bh.ToggleRoundWind)
			board.POST("/self-wind", bh.RotateSelfWind)
			board.GET("/candidates", bh.Candidates)
			board.POST("/melds", bh.Commit)
			board.POST("/melds/break", bh.Break)
		}

		v1.POST("/calc", CalcHandler(worker))

		kifu := v1.Group("/kifu")
		kh := NewKifuHandler(worker)
		{
			kifu.GET("", kh.List)
			kifu.POST("/start", kh.Start)
			kifu.POST("/record", kh.Record)
			kifu.POST("/stop", kh.Stop)
			kifu.GET("/:name", kh.Get)
			kifu.POST("/:name/steps/:step/load", kh.LoadStep)
		}
	}
}
