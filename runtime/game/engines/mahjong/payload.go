package mahjong

import "fmt"

// CalcVersion 计算端协议版本
const CalcVersion = "0.9.0"

// SyantenType 向听数的计算方式
type SyantenType int

const (
	SyantenNormal  SyantenType = 1 // 一般形
	SyantenChiitoi SyantenType = 2 // 七对子
	SyantenKokushi SyantenType = 4 // 国士无双
)

// ExpOption 期望值计算选项，按位组合
type ExpOption int

const (
	CalcSyantenDown  ExpOption = 1 << iota // 考虑降向听
	CalcTegawari                           // 考虑手替
	CalcDoubleReach                        // 考虑两立直
	CalcIppatsu                            // 考虑一发
	CalcHaitei                             // 考虑海底摸月
	CalcUradora                            // 考虑里宝牌
	CalcAkaTsumo                           // 考虑摸到赤牌
	MaximizeWinProb                        // 以和了率最大为目标，不指定则以期望值最大为目标

	allExpOptions = MaximizeWinProb<<1 - 1
)

// 计算端的副露种类编号
const (
	calcMeldPon    = 1
	calcMeldChi    = 2
	calcMeldAnkan  = 3
	calcMeldMinkan = 4
	calcMeldKakan  = 5
)

// MeldBlock 计算端的副露格式
type MeldBlock struct {
	Type          int      `json:"type"`
	Tiles         []TileID `json:"tiles"`
	DiscardedTile TileID   `json:"discarded_tile"`
	From          int      `json:"from"`
}

// CalcRequest 发给计算端的请求体
type CalcRequest struct {
	Version        string      `json:"version"`
	Zikaze         TileID      `json:"zikaze"`
	Bakaze         TileID      `json:"bakaze"`
	Turn           int         `json:"turn"`
	SyantenType    SyantenType `json:"syanten_type"`
	DoraIndicators []TileID    `json:"dora_indicators"`
	Flag           ExpOption   `json:"flag"`
	HandTiles      []TileID    `json:"hand_tiles"`
	MeldedBlocks   []MeldBlock `json:"melded_blocks"`
	Counts         []int       `json:"counts"`
}

// CalcPayload 牌面的完整序列化：请求体加四家牌河
type CalcPayload struct {
	Request    CalcRequest `json:"fixes_pai_info"`
	RiverTiles []TileID    `json:"fixes_river_tiles"`
}

// BuildCalcPayload 序列化自家视角的牌面
// 手牌加副露折算必须是 13 或 14 张
func BuildCalcPayload(b *Board, syanten SyantenType, flag ExpOption) (*CalcPayload, error) {
	switch syanten {
	case SyantenNormal, SyantenChiitoi, SyantenKokushi:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSyanten, syanten)
	}
	if flag < 0 || flag&^allExpOptions != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFlag, flag)
	}

	hand := b.ConcealedTiles()
	if size := len(hand) + 3*len(b.Melds[SeatSelf]); size < MaxHandTiles || size > FullHandTiles {
		return nil, fmt.Errorf("%w: %d tiles", ErrHandSize, size)
	}

	blocks := make([]MeldBlock, 0, len(b.Melds[SeatSelf]))
	for _, m := range b.Melds[SeatSelf] {
		blocks = append(blocks, meldBlockOf(m))
	}

	zikaze, bakaze := b.SelfWind, b.RoundWind
	if zikaze < East || zikaze > North {
		zikaze = East
	}
	if bakaze < East || bakaze > North {
		bakaze = East
	}

	dora := append([]TileID{}, b.DoraIndicators...)
	return &CalcPayload{
		Request: CalcRequest{
			Version:        CalcVersion,
			Zikaze:         zikaze,
			Bakaze:         bakaze,
			Turn:           b.Turn,
			SyantenType:    syanten,
			DoraIndicators: dora,
			Flag:           flag,
			HandTiles:      hand,
			MeldedBlocks:   blocks,
			Counts:         RemainingCounts(b),
		},
		RiverTiles: append([]TileID{}, b.RiverTiles()...),
	}, nil
}

func meldBlockOf(m Meld) MeldBlock {
	block := MeldBlock{
		Tiles: append([]TileID{}, m.Tiles...),
		From:  0,
	}
	if len(m.Tiles) > 0 {
		block.DiscardedTile = m.Tiles[0]
	}
	if m.CalledTile != NoTile {
		block.DiscardedTile = m.CalledTile
	}
	switch {
	case m.Type == MeldChi:
		block.Type = calcMeldChi
	case m.Type == MeldPon:
		block.Type = calcMeldPon
	case m.Type == MeldAnkan:
		block.Type = calcMeldAnkan
	case m.Type == MeldMinkan && m.AddedTile != NoTile:
		block.Type = calcMeldKakan
	case m.Type == MeldMinkan:
		block.Type = calcMeldMinkan
	default:
		// 识别不出的副露按张数推断
		if len(m.Tiles) == 4 {
			block.Type = calcMeldMinkan
		} else {
			block.Type = calcMeldPon
		}
	}
	return block
}

// RemainingCounts 自家视角下每种牌剩余的张数
// 0..33 初始 4 张，34..36 表示赤五是否还在；看到赤五时同时扣减对应的普通五
func RemainingCounts(b *Board) []int {
	counts := make([]int, TileIDCount)
	for i := 0; i < TileKinds; i++ {
		counts[i] = 4
	}
	for i := TileKinds; i < TileIDCount; i++ {
		counts[i] = 1
	}
	for _, t := range b.AllTiles() {
		if !IsValid(t) {
			continue
		}
		c := Canonical(t)
		counts[c]--
		if IsRedFive(c) {
			counts[Normalize(c)]--
		}
	}
	for i := range counts {
		if counts[i] < 0 {
			counts[i] = 0
		}
	}
	return counts
}
