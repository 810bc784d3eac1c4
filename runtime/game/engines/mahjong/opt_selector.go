package mahjong

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type CandidateType int

const (
	CandidatePon CandidateType = iota
	CandidateChi
	CandidateDaiminkan
	CandidateAnkan
	CandidateKakan
)

var candidateTypeNames = [...]string{"pon", "chi", "daiminkan", "ankan", "kakan"}

func (t CandidateType) String() string {
	if t < 0 || int(t) >= len(candidateTypeNames) {
		return "unknown"
	}
	return candidateTypeNames[t]
}

func (t CandidateType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CandidateType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range candidateTypeNames {
		if n == name {
			*t = CandidateType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCandidate, name)
}

// reactive 鸣他家舍牌
func (t CandidateType) reactive() bool {
	return t == CandidatePon || t == CandidateChi || t == CandidateDaiminkan
}

// Candidate 可执行的副露
type Candidate struct {
	Type       CandidateType `json:"type"`
	Tiles      []TileID      `json:"tiles"` // 从手牌（含摸牌）拿出的牌
	From       Seat          `json:"from"`
	CalledTile TileID        `json:"called_tile"` // 暗杠、加杠为 NoTile
	MeldIndex  int           `json:"meld_index"`  // 加杠对应的碰，其余为 -1
}

func (c Candidate) signature() string {
	tiles := slices.Clone(c.Tiles)
	slices.Sort(tiles)
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = strconv.Itoa(int(t))
	}
	meld, called := "", ""
	if c.MeldIndex >= 0 {
		meld = strconv.Itoa(c.MeldIndex)
	}
	if c.CalledTile != NoTile {
		called = strconv.Itoa(int(c.CalledTile))
	}
	return fmt.Sprintf("%s:%s:%s:%s", c.Type, meld, called, strings.Join(parts, ","))
}

// FindCandidates 列出当前牌面可执行的副露，不修改牌面
//
// 有 lastDiscard 时列出碰、大明杠、吃（只能吃上家）；否则列出暗杠与加杠
func FindCandidates(b *Board) []Candidate {
	groups := groupByKind(b.ConcealedTiles())
	seen := make(map[string]struct{})
	out := make([]Candidate, 0)
	add := func(c Candidate) {
		sig := c.signature()
		if _, ok := seen[sig]; ok {
			return
		}
		seen[sig] = struct{}{}
		out = append(out, c)
	}

	if ld := b.LastDiscard; ld != nil {
		if !ld.From.Valid() || ld.From == SeatSelf || !IsValid(ld.Tile) {
			return out
		}
		for _, c := range reactiveOptions(groups, *ld) {
			add(c)
		}
		return out
	}

	for _, c := range ankanOptions(groups) {
		add(c)
	}
	for _, c := range kakanOptions(b, groups) {
		add(c)
	}
	return out
}

// groupByKind 按牌种分组，保留每张牌的原编号
func groupByKind(tiles []TileID) [TileKinds][]TileID {
	var groups [TileKinds][]TileID
	for _, t := range tiles {
		if !IsValid(t) {
			continue
		}
		n := Normalize(t)
		groups[n] = append(groups[n], Canonical(t))
	}
	return groups
}

func reactiveOptions(groups [TileKinds][]TileID, ld LastDiscard) []Candidate {
	var ops []Candidate
	called := Canonical(ld.Tile)
	matching := groups[Normalize(called)]
	newOp := func(t CandidateType, tiles ...TileID) Candidate {
		return Candidate{Type: t, Tiles: tiles, From: ld.From, CalledTile: called, MeldIndex: -1}
	}

	// 碰：任取两张
	for i := 0; i < len(matching); i++ {
		for j := i + 1; j < len(matching); j++ {
			ops = append(ops, newOp(CandidatePon, matching[i], matching[j]))
		}
	}

	// 大明杠：任取三张
	for i := 0; i < len(matching); i++ {
		for j := i + 1; j < len(matching); j++ {
			for k := j + 1; k < len(matching); k++ {
				ops = append(ops, newOp(CandidateDaiminkan, matching[i], matching[j], matching[k]))
			}
		}
	}

	if ld.From != SeatKamicha {
		return ops
	}
	sr, ok := SuitRankOf(called)
	if !ok {
		return ops
	}
	base := TileID(sr.Suit) * 9
	r := sr.Rank - 1
	// 包含打出牌的三个窗口：(r-2,r-1) (r-1,r+1) (r+1,r+2)
	windows := [][2]int{{r - 2, r - 1}, {r - 1, r + 1}, {r + 1, r + 2}}
	for _, w := range windows {
		if w[0] < 0 || w[1] > 8 {
			continue
		}
		first, second := groups[base+TileID(w[0])], groups[base+TileID(w[1])]
		for _, a := range first {
			for _, b := range second {
				ops = append(ops, newOp(CandidateChi, a, b))
			}
		}
	}
	return ops
}

func ankanOptions(groups [TileKinds][]TileID) []Candidate {
	var ops []Candidate
	for _, g := range groups {
		if len(g) != 4 {
			continue
		}
		ops = append(ops, Candidate{
			Type:       CandidateAnkan,
			Tiles:      slices.Clone(g),
			From:       SeatSelf,
			CalledTile: NoTile,
			MeldIndex:  -1,
		})
	}
	return ops
}

func kakanOptions(b *Board, groups [TileKinds][]TileID) []Candidate {
	var ops []Candidate
	for i, m := range b.Melds[SeatSelf] {
		if m.Type != MeldPon || len(m.Tiles) == 0 {
			continue
		}
		for _, t := range groups[Normalize(m.Tiles[0])] {
			ops = append(ops, Candidate{
				Type:       CandidateKakan,
				Tiles:      []TileID{t},
				From:       SeatSelf,
				CalledTile: NoTile,
				MeldIndex:  i,
			})
		}
	}
	return ops
}
