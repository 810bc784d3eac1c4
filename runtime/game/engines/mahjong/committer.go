package mahjong

import (
	"fmt"
	"slices"

	"mahjong-rtsim/common/log"
)

// Commit 执行一个副露候选，返回新的牌面；失败时原牌面不变
func Commit(b *Board, c Candidate) (*Board, error) {
	next := b.clone()
	next.touchHand()
	for _, t := range c.Tiles {
		if !takeConcealed(next, t) {
			return b, fmt.Errorf("%w: %s is not in hand", ErrSlotMismatch, t)
		}
	}

	var meld Meld
	switch {
	case c.Type.reactive():
		if !c.From.Valid() || c.From == SeatSelf {
			return b, fmt.Errorf("%w: cannot call from %s", ErrSlotMismatch, c.From)
		}
		next.touchDiscards(c.From)
		pile := next.Discards[c.From]
		idx := lastIndexOf(pile, c.CalledTile)
		if idx < 0 {
			return b, fmt.Errorf("%w: %s not in %s discards", ErrSlotMismatch, c.CalledTile, c.From)
		}
		next.Discards[c.From] = removeAt(pile, idx)

		tiles := append(slices.Clone(c.Tiles), c.CalledTile)
		sortMeldTiles(tiles)
		meld = Meld{
			Tiles:       tiles,
			From:        c.From,
			CalledTile:  c.CalledTile,
			CalledIndex: idx,
			AddedTile:   NoTile,
		}
		switch c.Type {
		case CandidateChi:
			if len(tiles) != 3 || !isSequence(tiles) {
				return b, fmt.Errorf("%w: %v is not a sequence", ErrSlotMismatch, tiles)
			}
			meld.Type = MeldChi
			meld.ExposedIndex = slices.Index(tiles, c.CalledTile)
		case CandidatePon, CandidateDaiminkan:
			want := 3
			meld.Type = MeldPon
			if c.Type == CandidateDaiminkan {
				want = 4
				meld.Type = MeldMinkan
			}
			if len(tiles) != want || !sameKind(tiles) {
				return b, fmt.Errorf("%w: %v is not a %s", ErrSlotMismatch, tiles, c.Type)
			}
			meld.ExposedIndex, _ = ExposedIndexFor(c.From)
		}
		next.touchMelds(SeatSelf)
		next.Melds[SeatSelf] = append(next.Melds[SeatSelf], meld)

	case c.Type == CandidateAnkan:
		if len(c.Tiles) != 4 || !sameKind(c.Tiles) {
			return b, fmt.Errorf("%w: %v is not a quad", ErrSlotMismatch, c.Tiles)
		}
		tiles := slices.Clone(c.Tiles)
		sortMeldTiles(tiles)
		meld = Meld{
			Type:         MeldAnkan,
			Tiles:        tiles,
			From:         SeatSelf,
			ExposedIndex: -1,
			CalledTile:   NoTile,
			CalledIndex:  -1,
			AddedTile:    NoTile,
		}
		next.touchMelds(SeatSelf)
		next.Melds[SeatSelf] = append(next.Melds[SeatSelf], meld)

	case c.Type == CandidateKakan:
		melds := b.Melds[SeatSelf]
		if c.MeldIndex < 0 || c.MeldIndex >= len(melds) || melds[c.MeldIndex].Type != MeldPon {
			return b, fmt.Errorf("%w: meld %d is not a pon", ErrSlotMismatch, c.MeldIndex)
		}
		if len(c.Tiles) != 1 || Normalize(c.Tiles[0]) != Normalize(melds[c.MeldIndex].Tiles[0]) {
			return b, fmt.Errorf("%w: %v does not match meld %d", ErrSlotMismatch, c.Tiles, c.MeldIndex)
		}
		next.touchMelds(SeatSelf)
		m := &next.Melds[SeatSelf][c.MeldIndex]
		m.Type = MeldMinkan
		m.Tiles = append(m.Tiles, c.Tiles[0])
		m.AddedTile = c.Tiles[0]
		sortMeldTiles(m.Tiles)
		meld = *m

	default:
		return b, fmt.Errorf("%w: %d", ErrUnknownCandidate, c.Type)
	}

	next.sortHand()
	next.LastDiscard = nil
	log.Info("meld committed: %s %v from %s", c.Type, meld.Tiles, meld.From)
	return next, nil
}

// takeConcealed 先从手牌取，手牌没有再取摸牌
func takeConcealed(b *Board, t TileID) bool {
	if i := slices.Index(b.Hand, t); i >= 0 {
		b.Hand = removeAt(b.Hand, i)
		return true
	}
	if b.Drawn == t && t != NoTile {
		b.Drawn = NoTile
		return true
	}
	return false
}

// Break 拆开自家副露，牌回到手牌（摸牌一并并入手牌）
// 鸣来的那张牌退回放铳者的牌河，使 Commit 与 Break 互逆
func Break(b *Board, seat Seat, meldIndex int) (*Board, error) {
	if seat != SeatSelf {
		return b, fmt.Errorf("%w: seat %s", ErrUnsupportedMeldBreak, seat)
	}
	melds := b.Melds[SeatSelf]
	if meldIndex < 0 || meldIndex >= len(melds) {
		return b, fmt.Errorf("%w: no meld %d", ErrSlotMismatch, meldIndex)
	}
	m := melds[meldIndex]
	returned := slices.Clone(m.Tiles)

	next := b.clone()
	if m.IsCalled() {
		if i := slices.Index(returned, m.CalledTile); i >= 0 {
			returned = removeAt(returned, i)
			next.touchDiscards(m.From)
			pile := next.Discards[m.From]
			if m.CalledIndex >= 0 && m.CalledIndex <= len(pile) {
				next.Discards[m.From] = slices.Insert(pile, m.CalledIndex, m.CalledTile)
			} else {
				next.Discards[m.From] = append(pile, m.CalledTile)
			}
		}
	}

	next.touchHand()
	next.Hand = append(next.Hand, returned...)
	if next.HasDrawn() {
		next.Hand = append(next.Hand, next.Drawn)
		next.Drawn = NoTile
	}
	next.sortHand()

	next.touchMelds(SeatSelf)
	next.Melds[SeatSelf] = append(next.Melds[SeatSelf][:meldIndex], next.Melds[SeatSelf][meldIndex+1:]...)
	next.LastDiscard = nil
	log.Info("meld broken: %s %v", m.Type, m.Tiles)
	return next, nil
}
