package dto

import (
	"mahjong-rtsim/runtime/calc"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

// 推送消息类型
const (
	PushBoard  = "board"
	PushCalc   = "calc"
	PushLoaded = "snapshot"
)

// Push websocket / nats 上的推送外壳
type Push struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type PickReq struct {
	Tile *int `json:"tile"`
}

type CommitReq struct {
	Index *int `json:"index"`
}

type BreakReq struct {
	Seat      mahjong.Seat `json:"seat"`
	MeldIndex int          `json:"meld_index"`
}

type CalcReq struct {
	SyantenType mahjong.SyantenType `json:"syanten_type"`
	Flag        mahjong.ExpOption   `json:"flag"`
}

type KifuStopReq struct {
	Name string `json:"name"`
}

type SnapshotResp struct {
	View   mahjong.View        `json:"view"`
	Report *mahjong.LoadReport `json:"report"`
}

type CalcResp struct {
	Payload *mahjong.CalcPayload `json:"payload"`
	Result  *calc.Result         `json:"result"`
}

type RecordResp struct {
	Appended bool `json:"appended"`
}
