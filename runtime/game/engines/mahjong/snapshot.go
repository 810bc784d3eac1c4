package mahjong

import (
	"encoding/json"
	"fmt"
	"slices"

	"mahjong-rtsim/common/log"
)

// Snapshot 识别端给出的一帧牌面
type Snapshot struct {
	HandTiles      []TileID
	Melds          [4][][]TileID
	MeldExposed    [4][]int // 与 Melds 对应，识别到横置牌的位置，-1 表示没有
	Discards       [4][]TileID
	DoraIndicators []TileID
	Turn           int    // 0 表示未给出
	RoundWind      TileID // NoTile 表示未给出
	SelfWind       TileID // NoTile 表示未给出
}

// LoadReport 载入快照时发现的问题；快照整体不会因此被拒绝
type LoadReport struct {
	Malformed  []string    `json:"malformed,omitempty"`
	Suspicious []string    `json:"suspicious,omitempty"`
	Dropped    []string    `json:"dropped,omitempty"`
	HandKept   bool        `json:"hand_kept,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// LoadOptions 载入快照的策略
type LoadOptions struct {
	Rules Rules
	// 识别结果没有手牌时沿用当前手牌
	KeepHandWhenEmpty bool
}

// ParseSnapshot 解析识别端 JSON
// 只有整体不是 JSON 对象时返回 ErrMalformedSnapshot，单个字段出错按默认值处理并记入报告
func ParseSnapshot(data []byte) (*Snapshot, *LoadReport, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if raw == nil {
		return nil, nil, fmt.Errorf("%w: empty document", ErrMalformedSnapshot)
	}

	p := &snapshotParser{raw: raw, report: &LoadReport{}}
	s := &Snapshot{
		HandTiles:      p.tiles("hand_tiles"),
		DoraIndicators: p.tiles("dora_indicators"),
		Turn:           p.turn(),
		RoundWind:      p.wind("bakaze", "round_wind"),
		SelfWind:       p.wind("zikaze", "self_wind"),
	}
	p.discards(s)
	p.melds(s)
	return s, p.report, nil
}

type snapshotParser struct {
	raw    map[string]json.RawMessage
	report *LoadReport
}

func (p *snapshotParser) malformed(field string, err error) {
	p.report.Malformed = append(p.report.Malformed, fmt.Sprintf("%s: %v", field, err))
}

// convert 去掉识别区段，丢弃非法编号
func (p *snapshotParser) convert(field string, ids []int) []TileID {
	out := make([]TileID, 0, len(ids))
	for i, id := range ids {
		t := TileID(id)
		loc := fmt.Sprintf("%s[%d]", field, i)
		if !IsValid(t) {
			p.report.Dropped = append(p.report.Dropped, fmt.Sprintf("%s=%d", loc, id))
			continue
		}
		if IsSuspicious(t) {
			p.report.Suspicious = append(p.report.Suspicious, loc)
		}
		out = append(out, Canonical(t))
	}
	return out
}

func (p *snapshotParser) ints(field string, data json.RawMessage) ([]int, bool) {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		p.malformed(field, err)
		return nil, false
	}
	return ids, true
}

func (p *snapshotParser) tiles(field string) []TileID {
	data, ok := p.raw[field]
	if !ok || string(data) == "null" {
		return []TileID{}
	}
	ids, ok := p.ints(field, data)
	if !ok {
		return []TileID{}
	}
	return p.convert(field, ids)
}

func (p *snapshotParser) turn() int {
	data, ok := p.raw["turn"]
	if !ok || string(data) == "null" {
		return 0
	}
	var turn int
	if err := json.Unmarshal(data, &turn); err != nil {
		p.malformed("turn", err)
		return 0
	}
	if turn < 1 || turn > MaxTurn {
		p.malformed("turn", fmt.Errorf("%d out of 1..%d", turn, MaxTurn))
		return 0
	}
	return turn
}

func (p *snapshotParser) wind(fields ...string) TileID {
	for _, field := range fields {
		data, ok := p.raw[field]
		if !ok || string(data) == "null" {
			continue
		}
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			p.malformed(field, err)
			return NoTile
		}
		w := Canonical(TileID(id))
		if w < East || w > North {
			p.malformed(field, fmt.Errorf("%d is not a wind", id))
			return NoTile
		}
		return w
	}
	return NoTile
}

// discards 支持 discard_tiles_<位置>、discard_tiles{位置: [...]}，
// 以及不分座位的一维列表（按 下右上左 轮流分配）
func (p *snapshotParser) discards(s *Snapshot) {
	for _, seat := range allSeats {
		s.Discards[seat] = []TileID{}
	}
	if data, ok := p.raw["discard_tiles"]; ok && string(data) != "null" {
		var bySeat map[string][]int
		if err := json.Unmarshal(data, &bySeat); err == nil {
			for name, ids := range bySeat {
				seat, err := ParseSeat(name)
				if err != nil {
					p.malformed("discard_tiles", err)
					continue
				}
				s.Discards[seat] = p.convert("discard_tiles."+name, ids)
			}
			return
		}
		if ids, ok := p.ints("discard_tiles", data); ok {
			for i, t := range p.convert("discard_tiles", ids) {
				seat := allSeats[i%4]
				s.Discards[seat] = append(s.Discards[seat], t)
			}
		}
		return
	}
	for _, seat := range allSeats {
		s.Discards[seat] = p.tiles("discard_tiles_" + seat.Position())
	}
}

// melds 支持 melded_tiles_<位置>、melded_tiles{位置: ...}，melded_blocks 视为自家
func (p *snapshotParser) melds(s *Snapshot) {
	if data, ok := p.raw["melded_tiles"]; ok && string(data) != "null" {
		var bySeat map[string]json.RawMessage
		if err := json.Unmarshal(data, &bySeat); err != nil {
			p.malformed("melded_tiles", err)
		}
		for name, v := range bySeat {
			seat, err := ParseSeat(name)
			if err != nil {
				p.malformed("melded_tiles", err)
				continue
			}
			s.Melds[seat], s.MeldExposed[seat] = p.meldSets("melded_tiles."+name, v)
		}
		return
	}
	for _, seat := range allSeats {
		field := "melded_tiles_" + seat.Position()
		if data, ok := p.raw[field]; ok {
			s.Melds[seat], s.MeldExposed[seat] = p.meldSets(field, data)
		}
	}
	if data, ok := p.raw["melded_blocks"]; ok && len(s.Melds[SeatSelf]) == 0 {
		s.Melds[SeatSelf], s.MeldExposed[SeatSelf] = p.meldSets("melded_blocks", data)
	}
}

// meldSets 接受二维数组（已分好组）或一维数组（按 x 坐标排列，需要切分）
func (p *snapshotParser) meldSets(field string, data json.RawMessage) ([][]TileID, []int) {
	if string(data) == "null" {
		return nil, nil
	}
	var out [][]TileID
	var exposed []int
	var sets [][]int
	if err := json.Unmarshal(data, &sets); err == nil {
		for i, set := range sets {
			tiles := p.convert(fmt.Sprintf("%s[%d]", field, i), set)
			if len(tiles) > 0 {
				out = append(out, tiles)
				exposed = append(exposed, rotatedIndex(set))
			}
		}
		return out, exposed
	}
	ids, ok := p.ints(field, data)
	if !ok {
		return nil, nil
	}
	run := make([]TileID, 0, len(ids))
	for _, id := range ids {
		run = append(run, TileID(id))
	}
	for i, set := range SplitMeldRun(run) {
		raw := make([]int, len(set))
		for j, t := range set {
			raw[j] = int(t)
		}
		if tiles := p.convert(fmt.Sprintf("%s{%d}", field, i), raw); len(tiles) > 0 {
			out = append(out, tiles)
			exposed = append(exposed, rotatedIndex(raw))
		}
	}
	return out, exposed
}

// rotatedIndex 横置牌在保留下来的牌中的位置，非法编号不计
func rotatedIndex(ids []int) int {
	pos := 0
	for _, id := range ids {
		t := TileID(id)
		if !IsValid(t) {
			continue
		}
		if IsRotated(t) {
			return pos
		}
		pos++
	}
	return -1
}

// Board 用快照整体替换牌面，current 只用于补全快照没有给出的场风、自风和手牌
func (s *Snapshot) Board(current *Board, opts LoadOptions, report *LoadReport) *Board {
	if report == nil {
		report = &LoadReport{}
	}
	next := NewBoard()

	for _, seat := range allSeats {
		for i, tiles := range s.Melds[seat] {
			m := ClassifyMeld(tiles)
			if seat == SeatSelf {
				m.From = SeatSelf
			}
			// 同种牌的副露排序不改变位置，横置牌位置可以直接沿用；四张带横置即为明杠
			if i < len(s.MeldExposed[seat]) && (m.Type == MeldPon || m.Type == MeldAnkan) {
				if idx := s.MeldExposed[seat][i]; idx >= 0 && idx < len(m.Tiles) {
					m.ExposedIndex = idx
					if m.Type == MeldAnkan {
						m.Type = MeldMinkan
					}
				}
			}
			next.Melds[seat] = append(next.Melds[seat], m)
		}
		next.Discards[seat] = slices.Clone(s.Discards[seat])
		if next.Discards[seat] == nil {
			next.Discards[seat] = []TileID{}
		}
	}

	hand := slices.Clone(s.HandTiles)
	switch {
	case len(hand) == 0 && opts.KeepHandWhenEmpty && current != nil:
		next.Hand = slices.Clone(current.Hand)
		next.Drawn = current.Drawn
		report.HandKept = true
	default:
		// 第 14 张（含副露折算）是摸牌
		if n := len(hand); n > 0 && (n == FullHandTiles || n+3*len(next.Melds[SeatSelf]) == FullHandTiles) {
			next.Drawn = hand[n-1]
			hand = hand[:n-1]
		}
		next.Hand = hand
	}
	if next.Hand == nil {
		next.Hand = []TileID{}
	}
	next.sortHand()

	next.DoraIndicators = slices.Clone(s.DoraIndicators)
	if next.DoraIndicators == nil {
		next.DoraIndicators = []TileID{}
	}
	if s.Turn >= 1 && s.Turn <= MaxTurn {
		next.Turn = s.Turn
	}
	switch {
	case s.RoundWind != NoTile:
		next.RoundWind = s.RoundWind
	case current != nil:
		next.RoundWind = current.RoundWind
	}
	switch {
	case s.SelfWind != NoTile:
		next.SelfWind = s.SelfWind
	case current != nil:
		next.SelfWind = current.SelfWind
	}

	report.Violations = Validate(next, opts.Rules)
	if len(report.Violations) > 0 {
		log.Warn("snapshot loaded with %d violations", len(report.Violations))
	}
	return next
}
