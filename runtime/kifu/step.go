package kifu

import (
	"time"

	"mahjong-rtsim/core/domain/entity"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

// StepOf 把牌面压成一帧，只保留自家副露
func StepOf(b *mahjong.Board, at time.Time) entity.KifuStep {
	step := entity.KifuStep{
		Turn:           b.Turn,
		RoundWind:      int(b.RoundWind),
		SelfWind:       int(b.SelfWind),
		DoraIndicators: toInts(b.DoraIndicators),
		HandTiles:      toInts(b.ConcealedTiles()),
		Melds:          make([][]int, 0, len(b.Melds[mahjong.SeatSelf])),
		CreatedAt:      at,
	}
	for _, m := range b.Melds[mahjong.SeatSelf] {
		step.Melds = append(step.Melds, toInts(m.Tiles))
	}
	for seat := range step.Discards {
		step.Discards[seat] = toInts(b.Discards[seat])
	}
	return step
}

// StepSnapshot 帧转回快照；14 张手牌在载入时拆出摸牌
func StepSnapshot(step entity.KifuStep) *mahjong.Snapshot {
	s := &mahjong.Snapshot{
		HandTiles:      toTiles(step.HandTiles),
		DoraIndicators: toTiles(step.DoraIndicators),
		Turn:           step.Turn,
		RoundWind:      mahjong.NoTile,
		SelfWind:       mahjong.NoTile,
	}
	if step.RoundWind > 0 {
		s.RoundWind = mahjong.TileID(step.RoundWind)
	}
	if step.SelfWind > 0 {
		s.SelfWind = mahjong.TileID(step.SelfWind)
	}
	for _, m := range step.Melds {
		s.Melds[mahjong.SeatSelf] = append(s.Melds[mahjong.SeatSelf], toTiles(m))
	}
	for seat := range step.Discards {
		s.Discards[seat] = toTiles(step.Discards[seat])
	}
	return s
}

func toInts(tiles []mahjong.TileID) []int {
	out := make([]int, len(tiles))
	for i, t := range tiles {
		out[i] = int(t)
	}
	return out
}

func toTiles(ids []int) []mahjong.TileID {
	out := make([]mahjong.TileID, len(ids))
	for i, id := range ids {
		out[i] = mahjong.TileID(id)
	}
	return out
}
