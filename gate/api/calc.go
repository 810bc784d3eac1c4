package api

import (
	"fmt"

	"mahjong-rtsim/common/http"
	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

// CalcHandler 默认一般形向听，考虑降向听和手替
func CalcHandler(worker *game.Worker) http.HandlerFunc {
	return func(c *http.Context) error {
		req := dto.CalcReq{
			SyantenType: mahjong.SyantenNormal,
			Flag:        mahjong.CalcSyantenDown | mahjong.CalcTegawari,
		}
		// 请求体可以为空
		if c.Request().ContentLength != 0 {
			if err := c.BindJSON(&req); err != nil {
				return fmt.Errorf("%w: %v", dto.ErrInvalidRequest, err)
			}
		}
		resp, err := worker.Calculate(c.Ctx(), req)
		if err != nil {
			return err
		}
		c.Success(resp)
		return nil
	}
}
