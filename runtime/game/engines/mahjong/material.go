package mahjong

import (
	"fmt"
	"slices"
)

// TileID 牌的编号，与识别端、计算端共用同一套编号
type TileID int

const (
	// 万子 (0-8)
	Man1 TileID = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red

	// 赤宝牌 (34-36)
	RedMan5
	RedPin5
	RedSo5
)

const (
	TileKinds   = 34 // 不区分赤牌的牌种数
	TileIDCount = 37 // 含赤牌的编号数

	// 识别端附加在编号上的区段
	RotatedOffset    = 100  // 横置的牌
	SuspiciousOffset = 1000 // 置信度低的牌

	NoTile   TileID = -1 // 空位（例如没有摸牌）
	TileBack TileID = -2 // 背面朝上，只用于展示
)

var redToPlain = map[TileID]TileID{
	RedMan5: Man5,
	RedPin5: Pin5,
	RedSo5:  So5,
}

var plainToRed = map[TileID]TileID{
	Man5: RedMan5,
	Pin5: RedPin5,
	So5:  RedSo5,
}

// Canonical 去掉识别区段，保留赤牌身份
func Canonical(id TileID) TileID {
	if id < 0 {
		return id
	}
	for id >= SuspiciousOffset {
		id -= SuspiciousOffset
	}
	for id >= RotatedOffset {
		id -= RotatedOffset
	}
	return id
}

// Normalize 去掉识别区段，并把赤五折算成普通五，用于比较牌种
func Normalize(id TileID) TileID {
	c := Canonical(id)
	if plain, ok := redToPlain[c]; ok {
		return plain
	}
	return c
}

func IsValid(id TileID) bool {
	c := Canonical(id)
	return c >= 0 && c < TileIDCount
}

func IsRedFive(id TileID) bool {
	_, ok := redToPlain[Canonical(id)]
	return ok
}

func IsHonor(id TileID) bool {
	n := Normalize(id)
	return n >= East && n < TileKinds
}

// RedOf 普通五对应的赤五
func RedOf(id TileID) (TileID, bool) {
	red, ok := plainToRed[Normalize(id)]
	return red, ok
}

type Suit int

const (
	SuitMan Suit = iota
	SuitPin
	SuitSo
)

func (s Suit) String() string {
	switch s {
	case SuitMan:
		return "m"
	case SuitPin:
		return "p"
	case SuitSo:
		return "s"
	}
	return "?"
}

// SuitRank 数牌的花色与点数，点数 1-9
type SuitRank struct {
	Suit Suit
	Rank int
}

// SuitRankOf 字牌和非法编号返回 false
func SuitRankOf(id TileID) (SuitRank, bool) {
	if !IsValid(id) {
		return SuitRank{}, false
	}
	n := Normalize(id)
	if n >= East {
		return SuitRank{}, false
	}
	return SuitRank{Suit: Suit(n / 9), Rank: int(n%9) + 1}, true
}

var honorNames = [...]string{"E", "S", "W", "N", "P", "F", "C"}

// String 数牌写作 1m..9s，赤五写作 0m/0p/0s
func (t TileID) String() string {
	switch {
	case t == NoTile:
		return "-"
	case t == TileBack:
		return "#"
	case !IsValid(t):
		return fmt.Sprintf("?%d", int(t))
	}
	c := Canonical(t)
	if IsRedFive(c) {
		sr, _ := SuitRankOf(c)
		return "0" + sr.Suit.String()
	}
	if c >= East {
		return honorNames[c-East]
	}
	sr, _ := SuitRankOf(c)
	return fmt.Sprintf("%d%s", sr.Rank, sr.Suit)
}

// sortTiles 按编号升序，赤五排在最后
func sortTiles(tiles []TileID) {
	slices.Sort(tiles)
}

// sortMeldTiles 副露内按牌种排序，赤五与同点数普通五相邻
func sortMeldTiles(tiles []TileID) {
	slices.SortStableFunc(tiles, func(a, b TileID) int {
		if na, nb := Normalize(a), Normalize(b); na != nb {
			return int(na - nb)
		}
		return int(Canonical(a) - Canonical(b))
	})
}

// nextWind 从 w 顺延 step 个风位，w 不是风牌时按东处理
func nextWind(w TileID, step int) TileID {
	if w < East || w > North {
		w = East
	}
	return East + (w-East+TileID(step))%4
}
