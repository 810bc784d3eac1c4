package api

import (
	"fmt"
	"strconv"

	"mahjong-rtsim/common/http"
	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game"
)

const defaultKifuListLimit = 50

type KifuHandler struct {
	worker *game.Worker
}

func NewKifuHandler(worker *game.Worker) *KifuHandler {
	return &KifuHandler{worker: worker}
}

func (h *KifuHandler) Start(c *http.Context) error {
	if err := h.worker.Recorder.Start(c.Ctx()); err != nil {
		return err
	}
	// 开始时先记下当前牌面
	appended, err := h.worker.Record(c.Ctx())
	if err != nil {
		return err
	}
	c.Success(dto.RecordResp{Appended: appended})
	return nil
}

func (h *KifuHandler) Record(c *http.Context) error {
	appended, err := h.worker.Record(c.Ctx())
	if err != nil {
		return err
	}
	c.Success(dto.RecordResp{Appended: appended})
	return nil
}

func (h *KifuHandler) Stop(c *http.Context) error {
	var req dto.KifuStopReq
	if err := c.BindJSON(&req); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrInvalidRequest, err)
	}
	record, err := h.worker.Recorder.Stop(c.Ctx(), req.Name)
	if err != nil {
		return err
	}
	c.SuccessWithMessage("牌谱已保存", record.Summary())
	return nil
}

func (h *KifuHandler) List(c *http.Context) error {
	limit, err := strconv.Atoi(c.GetQueryWithDefault("limit", strconv.Itoa(defaultKifuListLimit)))
	if err != nil || limit <= 0 {
		return fmt.Errorf("%w: limit must be a positive integer", dto.ErrInvalidRequest)
	}
	list, err := h.worker.Recorder.List(c.Ctx(), limit)
	if err != nil {
		return err
	}
	c.Success(list)
	return nil
}

func (h *KifuHandler) Get(c *http.Context) error {
	record, err := h.worker.Recorder.Get(c.Ctx(), c.GetParam("name"))
	if err != nil {
		return err
	}
	c.Success(record)
	return nil
}

// LoadStep 把第 step 帧载入为当前牌面
func (h *KifuHandler) LoadStep(c *http.Context) error {
	step, err := strconv.Atoi(c.GetParam("step"))
	if err != nil {
		return fmt.Errorf("%w: step must be an integer", dto.ErrInvalidRequest)
	}
	view, report, err := h.worker.LoadStep(c.Ctx(), c.GetParam("name"), step)
	if err != nil {
		return err
	}
	c.Success(dto.SnapshotResp{View: view, Report: report})
	return nil
}
