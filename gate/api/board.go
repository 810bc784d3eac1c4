package api

import (
	"fmt"

	"mahjong-rtsim/common/http"
	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

// BoardHandler 牌面编辑接口，全部经由 Session 串行执行
type BoardHandler struct {
	session *game.Session
}

func NewBoardHandler(session *game.Session) *BoardHandler {
	return &BoardHandler{session: session}
}

// respond 成功时返回最新牌面
func respond(c *http.Context, view mahjong.View, err error) error {
	if err != nil {
		return err
	}
	c.Success(view)
	return nil
}

func (h *BoardHandler) View(c *http.Context) error {
	c.Success(h.session.View())
	return nil
}

func (h *BoardHandler) Reset(c *http.Context) error {
	view, err := h.session.Reset()
	return respond(c, view, err)
}

// LoadSnapshot 请求体就是识别端输出的 JSON
func (h *BoardHandler) LoadSnapshot(c *http.Context) error {
	data, err := c.GetRawData()
	if err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInvalidRequest, err)
	}
	view, report, err := h.session.LoadSnapshot(data)
	if err != nil {
		return err
	}
	c.Success(dto.SnapshotResp{View: view, Report: report})
	return nil
}

func (h *BoardHandler) Select(c *http.Context) error {
	var sel mahjong.Selection
	if err := c.BindJSON(&sel); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInvalidRequest, err)
	}
	view, err := h.session.Click(sel)
	return respond(c, view, err)
}

func (h *BoardHandler) Deselect(c *http.Context) error {
	view, err := h.session.Deselect()
	return respond(c, view, err)
}

func (h *BoardHandler) Pick(c *http.Context) error {
	var req dto.PickReq
	if err := c.BindJSON(&req); err != nil || req.Tile == nil {
		return fmt.Errorf("%w: tile is required", dto.ErrInvalidRequest)
	}
	view, err := h.session.Pick(mahjong.TileID(*req.Tile))
	return respond(c, view, err)
}

func (h *BoardHandler) Remove(c *http.Context) error {
	view, err := h.session.Remove()
	return respond(c, view, err)
}

func (h *BoardHandler) AdvanceTurn(c *http.Context) error {
	view, err := h.session.AdvanceTurn()
	return respond(c, view, err)
}

func (h *BoardHandler) ToggleRoundWind(c *http.Context) error {
	view, err := h.session.ToggleRoundWind()
	return respond(c, view, err)
}

func (h *BoardHandler) RotateSelfWind(c *http.Context) error {
	view, err := h.session.RotateSelfWind()
	return respond(c, view, err)
}

func (h *BoardHandler) Candidates(c *http.Context) error {
	c.Success(h.session.Candidates())
	return nil
}

// Commit index 指向 Candidates 返回的列表
func (h *BoardHandler) Commit(c *http.Context) error {
	var req dto.CommitReq
	if err := c.BindJSON(&req); err != nil || req.Index == nil {
		return fmt.Errorf("%w: index is required", dto.ErrInvalidRequest)
	}
	view, err := h.session.CommitAt(*req.Index)
	return respond(c, view, err)
}

func (h *BoardHandler) Break(c *http.Context) error {
	req := dto.BreakReq{Seat: mahjong.SeatSelf}
	if err := c.BindJSON(&req); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInvalidRequest, err)
	}
	view, err := h.session.Break(req.Seat, req.MeldIndex)
	return respond(c, view, err)
}
