package mahjong

import (
	"encoding/json"
	"fmt"
	"slices"
)

type MeldType int

const (
	MeldUnknown MeldType = iota
	MeldChi
	MeldPon
	MeldMinkan // 大明杠与加杠都记为明杠
	MeldAnkan
)

var meldTypeNames = map[MeldType]string{
	MeldUnknown: "unknown",
	MeldChi:     "chi",
	MeldPon:     "pon",
	MeldMinkan:  "minkan",
	MeldAnkan:   "ankan",
}

func (t MeldType) String() string {
	if name, ok := meldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t MeldType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *MeldType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for k, v := range meldTypeNames {
		if v == name {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown meld type %q", name)
}

// Meld 副露
type Meld struct {
	Type         MeldType
	Tiles        []TileID
	From         Seat   // 放铳者，SeatNone 表示不明
	ExposedIndex int    // 横置牌位置，-1 表示没有
	CalledTile   TileID // 从牌河取来的牌，NoTile 表示不是鸣牌
	CalledIndex  int    // 鸣牌在放铳者牌河中的位置，拆副露时放回原处；-1 表示不明
	AddedTile    TileID // 加杠补上的牌
}

func (m Meld) clone() Meld {
	m.Tiles = slices.Clone(m.Tiles)
	return m
}

// IsCalled 通过鸣他家的牌组成
func (m Meld) IsCalled() bool {
	return m.CalledTile != NoTile && m.From.Valid() && m.From != SeatSelf
}

// ClassifyMeld 根据牌型推断副露种类，用于识别结果
// 3 张同种为碰，3 张同花色连续为吃，4 张同种为暗杠，其余为 unknown
func ClassifyMeld(tiles []TileID) Meld {
	sorted := slices.Clone(tiles)
	sortMeldTiles(sorted)
	m := Meld{
		Type:         MeldUnknown,
		Tiles:        sorted,
		From:         SeatNone,
		ExposedIndex: -1,
		CalledTile:   NoTile,
		CalledIndex:  -1,
		AddedTile:    NoTile,
	}
	switch {
	case len(sorted) == 3 && sameKind(sorted):
		m.Type = MeldPon
		m.ExposedIndex = 1
	case len(sorted) == 3 && isSequence(sorted):
		m.Type = MeldChi
		m.ExposedIndex = 1
	case len(sorted) == 4 && sameKind(sorted):
		m.Type = MeldAnkan
	}
	return m
}

func sameKind(tiles []TileID) bool {
	if len(tiles) == 0 {
		return false
	}
	n := Normalize(tiles[0])
	for _, t := range tiles[1:] {
		if Normalize(t) != n {
			return false
		}
	}
	return true
}

// isSequence tiles 需已按牌种排好序
func isSequence(tiles []TileID) bool {
	if len(tiles) != 3 {
		return false
	}
	first, ok := SuitRankOf(tiles[0])
	if !ok {
		return false
	}
	for i, t := range tiles[1:] {
		sr, ok := SuitRankOf(t)
		if !ok || sr.Suit != first.Suit || sr.Rank != first.Rank+i+1 {
			return false
		}
	}
	return true
}
