package mahjong

import "slices"

const (
	MaxTurn           = 22
	MaxDoraIndicators = 5
	MaxHandTiles      = 13
	FullHandTiles     = 14
)

// LastDiscard 可被鸣的最新一张舍牌
type LastDiscard struct {
	Tile  TileID `json:"tile"`
	From  Seat   `json:"from"`
	Index int    `json:"index"`
}

// Board 牌面状态
//
// 所有修改都先 clone，再通过 touch* 复制将要改动的分支，旧的 Board 不会被改写
type Board struct {
	Turn           int
	RoundWind      TileID
	SelfWind       TileID
	Hand           []TileID
	Drawn          TileID
	Discards       [4][]TileID
	Melds          [4][]Meld
	DoraIndicators []TileID
	LastDiscard    *LastDiscard
}

func NewBoard() *Board {
	b := &Board{
		Turn:           1,
		RoundWind:      East,
		SelfWind:       East,
		Hand:           []TileID{},
		Drawn:          NoTile,
		DoraIndicators: []TileID{},
	}
	for _, s := range allSeats {
		b.Discards[s] = []TileID{}
		b.Melds[s] = []Meld{}
	}
	return b
}

// clone 浅拷贝，切片仍与原 Board 共享
func (b *Board) clone() *Board {
	next := *b
	if b.LastDiscard != nil {
		ld := *b.LastDiscard
		next.LastDiscard = &ld
	}
	return &next
}

func (b *Board) touchHand() {
	b.Hand = slices.Clone(b.Hand)
}

func (b *Board) touchDiscards(seat Seat) {
	b.Discards[seat] = slices.Clone(b.Discards[seat])
}

func (b *Board) touchMelds(seat Seat) {
	melds := make([]Meld, len(b.Melds[seat]))
	for i, m := range b.Melds[seat] {
		melds[i] = m.clone()
	}
	b.Melds[seat] = melds
}

func (b *Board) touchDora() {
	b.DoraIndicators = slices.Clone(b.DoraIndicators)
}

// Copy 完整深拷贝，交给外部使用
func (b *Board) Copy() *Board {
	next := b.clone()
	next.touchHand()
	next.touchDora()
	for _, s := range allSeats {
		next.touchDiscards(s)
		next.touchMelds(s)
	}
	return next
}

func (b *Board) HasDrawn() bool {
	return b.Drawn != NoTile
}

// HandCapacity 自家每有一组副露，手牌上限减 3
func (b *Board) HandCapacity() int {
	c := MaxHandTiles - 3*len(b.Melds[SeatSelf])
	if c < 0 {
		return 0
	}
	return c
}

// CanDraw 摸牌位是否可用
func (b *Board) CanDraw() bool {
	return !b.HasDrawn() && len(b.Hand)+3*len(b.Melds[SeatSelf]) < FullHandTiles
}

// ConcealedTiles 手牌加摸牌
func (b *Board) ConcealedTiles() []TileID {
	tiles := slices.Clone(b.Hand)
	if b.HasDrawn() {
		tiles = append(tiles, b.Drawn)
	}
	return tiles
}

// AllTiles 场上所有可见的牌
func (b *Board) AllTiles() []TileID {
	tiles := b.ConcealedTiles()
	for _, s := range allSeats {
		tiles = append(tiles, b.Discards[s]...)
		for _, m := range b.Melds[s] {
			tiles = append(tiles, m.Tiles...)
		}
	}
	return append(tiles, b.DoraIndicators...)
}

// RiverTiles 四家牌河按 自家、下家、对家、上家 顺序拼接
func (b *Board) RiverTiles() []TileID {
	var tiles []TileID
	for _, s := range allSeats {
		tiles = append(tiles, b.Discards[s]...)
	}
	return tiles
}

// PlayerWinds 由自风推出四家自风
func (b *Board) PlayerWinds() [4]TileID {
	var winds [4]TileID
	for _, s := range allSeats {
		winds[s] = nextWind(b.SelfWind, int(s))
	}
	return winds
}

func (b *Board) sortHand() {
	sortTiles(b.Hand)
}

// AdvanceTurn 巡目 1..22 循环
func (b *Board) AdvanceTurn() *Board {
	next := b.clone()
	next.Turn = next.Turn%MaxTurn + 1
	return next
}

// ToggleRoundWind 东场与南场切换
func (b *Board) ToggleRoundWind() *Board {
	next := b.clone()
	if next.RoundWind == East {
		next.RoundWind = South
	} else {
		next.RoundWind = East
	}
	return next
}

// RotateSelfWind 自风按 东南西北 轮换，其他三家随之变化
func (b *Board) RotateSelfWind() *Board {
	next := b.clone()
	next.SelfWind = nextWind(next.SelfWind, 1)
	return next
}

func removeAt(tiles []TileID, i int) []TileID {
	return append(tiles[:i], tiles[i+1:]...)
}

func lastIndexOf(tiles []TileID, t TileID) int {
	for i := len(tiles) - 1; i >= 0; i-- {
		if tiles[i] == t {
			return i
		}
	}
	return -1
}
