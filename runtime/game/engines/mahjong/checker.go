package mahjong

import "fmt"

// Rules 牌面校验规则
type Rules struct {
	RedFives bool // 每种花色有一张赤五，普通五最多 3 张
}

var DefaultRules = Rules{RedFives: true}

// tileCounts 按编号统计场上的牌，exclude 所指位置上的牌不计入
func tileCounts(b *Board, exclude Selection) [TileIDCount]int {
	var counts [TileIDCount]int
	for _, t := range b.AllTiles() {
		if IsValid(t) {
			counts[Canonical(t)]++
		}
	}
	if t, ok := exclude.Tile(b); ok && IsValid(t) {
		counts[Canonical(t)]--
	}
	return counts
}

// CanPlace 检查把 tile 放到 slot 上是否会让同种牌超过 4 张或赤五重复
func CanPlace(b *Board, rules Rules, tile TileID, slot Selection) error {
	if !IsValid(tile) {
		return fmt.Errorf("%w: %d", ErrInvalidTile, tile)
	}
	c := Canonical(tile)
	n := Normalize(c)
	counts := tileCounts(b, slot)

	rank := counts[n]
	red, hasRed := RedOf(n)
	if hasRed {
		rank += counts[red]
	}

	switch {
	case IsRedFive(c):
		if !rules.RedFives {
			return fmt.Errorf("%w: red fives are disabled", ErrInvariantViolation)
		}
		if counts[c] >= 1 {
			return fmt.Errorf("%w: %s already on the board", ErrInvariantViolation, c)
		}
	case hasRed && rules.RedFives:
		if counts[n] >= 3 {
			return fmt.Errorf("%w: only 3 plain %s exist", ErrInvariantViolation, n)
		}
	}
	if rank >= 4 {
		return fmt.Errorf("%w: 4 copies of %s already on the board", ErrInvariantViolation, n)
	}
	return nil
}

// Violation 牌面上一处不合法的地方
type Violation struct {
	Tile   TileID `json:"tile"`
	Reason string `json:"reason"`
}

// Validate 检查整个牌面，列出所有问题，不修改牌面
func Validate(b *Board, rules Rules) []Violation {
	var out []Violation
	var counts [TileIDCount]int
	for _, t := range b.AllTiles() {
		if !IsValid(t) {
			out = append(out, Violation{Tile: t, Reason: "invalid tile id"})
			continue
		}
		counts[Canonical(t)]++
	}

	for n := TileID(0); n < TileKinds; n++ {
		total := counts[n]
		if red, ok := RedOf(n); ok {
			total += counts[red]
			if rules.RedFives && counts[n] > 3 {
				out = append(out, Violation{Tile: n, Reason: fmt.Sprintf("%d plain fives, at most 3", counts[n])})
			}
		}
		if total > 4 {
			out = append(out, Violation{Tile: n, Reason: fmt.Sprintf("%d copies, at most 4", total)})
		}
	}
	for _, red := range []TileID{RedMan5, RedPin5, RedSo5} {
		switch {
		case !rules.RedFives && counts[red] > 0:
			out = append(out, Violation{Tile: red, Reason: "red fives are disabled"})
		case counts[red] > 1:
			out = append(out, Violation{Tile: red, Reason: fmt.Sprintf("%d copies, at most 1", counts[red])})
		}
	}

	if size := len(b.ConcealedTiles()) + 3*len(b.Melds[SeatSelf]); size > FullHandTiles {
		out = append(out, Violation{Tile: NoTile, Reason: fmt.Sprintf("self holds %d tiles, at most %d", size, FullHandTiles)})
	}
	if len(b.DoraIndicators) > MaxDoraIndicators {
		out = append(out, Violation{Tile: NoTile, Reason: fmt.Sprintf("%d dora indicators, at most %d", len(b.DoraIndicators), MaxDoraIndicators)})
	}
	for _, s := range allSeats {
		for i, m := range b.Melds[s] {
			if m.Type == MeldUnknown {
				out = append(out, Violation{Tile: NoTile, Reason: fmt.Sprintf("%s meld %d is not a valid set", s, i)})
			}
		}
	}
	return out
}
