package mahjong

import "slices"

// MeldView 副露的展示形式，Display 中暗杠里侧两张为 TileBack
type MeldView struct {
	Type         MeldType `json:"type"`
	Tiles        []TileID `json:"tiles"`
	Display      []TileID `json:"display"`
	From         Seat     `json:"from"`
	ExposedIndex *int     `json:"exposed_index"`
}

// View 前端渲染用的牌面
type View struct {
	Turn           int                   `json:"turn"`
	RoundWind      TileID                `json:"round_wind"`
	PlayerWinds    map[string]TileID     `json:"player_winds"`
	HandTiles      []TileID              `json:"hand_tiles"`
	TsumoTile      *TileID               `json:"tsumo_tile"`
	PlayerDiscards map[string][]TileID   `json:"player_discards"`
	Melds          map[string][]MeldView `json:"melds"`
	DoraIndicators []TileID              `json:"dora_indicators"`
	LastDiscard    *LastDiscard          `json:"last_discard"`
	Selection      *Selection            `json:"selection"`
	Candidates     []Candidate           `json:"candidates"`
	Busy           bool                  `json:"busy"`
}

func newMeldView(m Meld) MeldView {
	v := MeldView{
		Type:    m.Type,
		Tiles:   slices.Clone(m.Tiles),
		Display: slices.Clone(m.Tiles),
		From:    m.From,
	}
	if m.ExposedIndex >= 0 {
		idx := m.ExposedIndex
		v.ExposedIndex = &idx
	}
	if m.Type == MeldAnkan && len(v.Display) == 4 {
		v.Display[1], v.Display[2] = TileBack, TileBack
	}
	return v
}

// NewView 生成展示用牌面，不与 b 共享内存
func NewView(b *Board, sel *Selection) View {
	v := View{
		Turn:           b.Turn,
		RoundWind:      b.RoundWind,
		PlayerWinds:    make(map[string]TileID, 4),
		HandTiles:      slices.Clone(b.Hand),
		PlayerDiscards: make(map[string][]TileID, 4),
		Melds:          make(map[string][]MeldView, 4),
		DoraIndicators: slices.Clone(b.DoraIndicators),
		Candidates:     FindCandidates(b),
	}
	if b.HasDrawn() {
		t := b.Drawn
		v.TsumoTile = &t
	}
	winds := b.PlayerWinds()
	for _, s := range allSeats {
		name := s.String()
		v.PlayerWinds[name] = winds[s]
		v.PlayerDiscards[name] = slices.Clone(b.Discards[s])
		melds := make([]MeldView, 0, len(b.Melds[s]))
		for _, m := range b.Melds[s] {
			melds = append(melds, newMeldView(m))
		}
		v.Melds[name] = melds
	}
	if b.LastDiscard != nil {
		ld := *b.LastDiscard
		v.LastDiscard = &ld
	}
	if sel != nil {
		s := *sel
		v.Selection = &s
	}
	return v
}
