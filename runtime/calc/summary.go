package calc

import (
	"encoding/json"
	"fmt"
	"sort"

	"mahjong-rtsim/runtime/game/engines/mahjong"
)

type requiredTile struct {
	Tile  mahjong.TileID `json:"tile"`
	Count int            `json:"count"`
}

type remoteCandidate struct {
	Tile          mahjong.TileID `json:"tile"`
	RequiredTiles []requiredTile `json:"required_tiles"`
	SyantenDown   bool           `json:"syanten_down"`
	ExpValues     []float64      `json:"exp_values"`
	WinProbs      []float64      `json:"win_probs"`
	TenpaiProbs   []float64      `json:"tenpai_probs"`
}

type remoteResult struct {
	ResultType int `json:"result_type"`
	Syanten    struct {
		Normal int `json:"normal"`
		Tiitoi int `json:"tiitoi"`
		Kokusi int `json:"kokusi"`
	} `json:"syanten"`
	TimeUs     int64             `json:"time_us"`
	Candidates []remoteCandidate `json:"candidates"`
}

// Syanten 三种形各自的向听数
type Syanten struct {
	Normal  int `json:"normal"`
	Chiitoi int `json:"chiitoi"`
	Kokushi int `json:"kokushi"`
}

// DiscardOption 打出某张牌后的评估，概率取当前巡目
type DiscardOption struct {
	Tile          mahjong.TileID   `json:"tile"`
	RequiredTiles []mahjong.TileID `json:"required_tiles"`
	RequiredCount int              `json:"required_count"`
	SyantenDown   bool             `json:"syanten_down"`
	ExpValue      *float64         `json:"exp_value,omitempty"`
	WinProb       *float64         `json:"win_prob,omitempty"`
	TenpaiProb    *float64         `json:"tenpai_prob,omitempty"`
}

// Summary 前端展示用的计算结果
// ResultType 0 只有向听与有效牌，1 带期望值与概率
type Summary struct {
	ResultType int             `json:"result_type"`
	Syanten    Syanten         `json:"syanten"`
	TimeUs     int64           `json:"time_us"`
	Options    []DiscardOption `json:"options"`
}

// Summarize 从计算端 response 中提取每个打牌选项
func Summarize(raw json.RawMessage, turn int) (*Summary, error) {
	var r remoteResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: bad result: %v", ErrRemoteUnavailable, err)
	}
	s := &Summary{
		ResultType: r.ResultType,
		Syanten: Syanten{
			Normal:  r.Syanten.Normal,
			Chiitoi: r.Syanten.Tiitoi,
			Kokushi: r.Syanten.Kokusi,
		},
		TimeUs:  r.TimeUs,
		Options: make([]DiscardOption, 0, len(r.Candidates)),
	}
	idx := turn - 1
	for _, c := range r.Candidates {
		opt := DiscardOption{
			Tile:          c.Tile,
			RequiredTiles: make([]mahjong.TileID, 0, len(c.RequiredTiles)),
			SyantenDown:   c.SyantenDown,
		}
		for _, rt := range c.RequiredTiles {
			opt.RequiredTiles = append(opt.RequiredTiles, rt.Tile)
			opt.RequiredCount += rt.Count
		}
		if r.ResultType == 1 {
			opt.ExpValue = at(c.ExpValues, idx)
			opt.WinProb = at(c.WinProbs, idx)
			opt.TenpaiProb = at(c.TenpaiProbs, idx)
		}
		s.Options = append(s.Options, opt)
	}
	sort.SliceStable(s.Options, func(i, j int) bool {
		a, b := s.Options[i], s.Options[j]
		if a.ExpValue != nil && b.ExpValue != nil && *a.ExpValue != *b.ExpValue {
			return *a.ExpValue > *b.ExpValue
		}
		return a.RequiredCount > b.RequiredCount
	})
	return s, nil
}

func at(values []float64, idx int) *float64 {
	if idx < 0 || idx >= len(values) {
		return nil
	}
	v := values[idx]
	return &v
}
