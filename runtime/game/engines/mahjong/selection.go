package mahjong

import (
	"encoding/json"
	"fmt"

	"mahjong-rtsim/common/log"
)

// SlotKind 选中位置的种类，add* 表示空位
type SlotKind int

const (
	SlotHand SlotKind = iota
	SlotTsumo
	SlotDiscard
	SlotDora
	SlotMeld
	SlotAddHand
	SlotAddTsumo
	SlotAddDiscard
	SlotAddDora
)

var slotKindNames = [...]string{
	"hand", "tsumo", "discard", "dora", "meld",
	"add_hand", "add_tsumo", "add_discard", "add_dora",
}

func (k SlotKind) String() string {
	if k < 0 || int(k) >= len(slotKindNames) {
		return "unknown"
	}
	return slotKindNames[k]
}

func (k SlotKind) IsAdd() bool {
	return k >= SlotAddHand
}

func (k SlotKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *SlotKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range slotKindNames {
		if n == name {
			*k = SlotKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown slot kind %q", name)
}

// Selection 指向牌面上的一个位置
// Seat 用于 discard/meld/add_discard；Index 是该位置上的序号，meld 时为副露内的第几张
type Selection struct {
	Kind      SlotKind `json:"kind"`
	Seat      Seat     `json:"seat"`
	Index     int      `json:"index"`
	MeldIndex int      `json:"meld_index"`
}

// sameMeld 自家同一组副露，不论点的是哪一张
func (s Selection) sameMeld(o Selection) bool {
	return s.Kind == SlotMeld && o.Kind == SlotMeld &&
		s.Seat == SeatSelf && o.Seat == SeatSelf && s.MeldIndex == o.MeldIndex
}

// Tile 该位置上的牌，add* 位置返回 false
func (s Selection) Tile(b *Board) (TileID, bool) {
	if s.check(b) != nil {
		return NoTile, false
	}
	switch s.Kind {
	case SlotHand:
		return b.Hand[s.Index], true
	case SlotTsumo:
		return b.Drawn, true
	case SlotDiscard:
		return b.Discards[s.Seat][s.Index], true
	case SlotDora:
		return b.DoraIndicators[s.Index], true
	case SlotMeld:
		return b.Melds[s.Seat][s.MeldIndex].Tiles[s.Index], true
	}
	return NoTile, false
}

// check 位置是否仍然存在于当前牌面
func (s Selection) check(b *Board) error {
	inRange := func(i, n int) bool { return i >= 0 && i < n }
	ok := true
	switch s.Kind {
	case SlotHand:
		ok = inRange(s.Index, len(b.Hand))
	case SlotTsumo:
		ok = b.HasDrawn()
	case SlotDiscard:
		ok = s.Seat.Valid() && inRange(s.Index, len(b.Discards[s.Seat]))
	case SlotDora:
		ok = inRange(s.Index, len(b.DoraIndicators))
	case SlotMeld:
		ok = s.Seat.Valid() && inRange(s.MeldIndex, len(b.Melds[s.Seat])) &&
			inRange(s.Index, len(b.Melds[s.Seat][s.MeldIndex].Tiles))
	case SlotAddDiscard:
		ok = s.Seat.Valid()
	case SlotAddHand, SlotAddTsumo, SlotAddDora:
	default:
		ok = false
	}
	if !ok {
		return fmt.Errorf("%w: %s seat=%s index=%d meld=%d", ErrSlotMismatch, s.Kind, s.Seat, s.Index, s.MeldIndex)
	}
	return nil
}

// Editor 选择状态机：Idle（selection 为 nil）与 Editing
//
// Editor 本身不持有牌面，每次操作接收当前 Board 并返回新的 Board
type Editor struct {
	rules     Rules
	selection *Selection
}

func NewEditor(rules Rules) *Editor {
	return &Editor{rules: rules}
}

func (e *Editor) Selection() (Selection, bool) {
	if e.selection == nil {
		return Selection{}, false
	}
	return *e.selection, true
}

func (e *Editor) Editing() bool {
	return e.selection != nil
}

func (e *Editor) Deselect() {
	e.selection = nil
}

// Click 点击牌面上的位置
//
// 再次点击当前位置取消选择；再次点击自家同一组副露则拆开该副露。
// 选中他家舍牌会把它记为可鸣的 lastDiscard，选中其他已有位置会清除 lastDiscard。
func (e *Editor) Click(b *Board, target Selection) (*Board, error) {
	if err := target.check(b); err != nil {
		return b, err
	}
	if cur := e.selection; cur != nil {
		if cur.sameMeld(target) {
			next, err := Break(b, SeatSelf, target.MeldIndex)
			if err != nil {
				return b, err
			}
			e.selection = nil
			return next, nil
		}
		if *cur == target {
			e.selection = nil
			return b, nil
		}
	}

	next := b
	switch {
	case target.Kind == SlotDiscard && target.Seat != SeatSelf:
		next = b.clone()
		next.LastDiscard = &LastDiscard{
			Tile:  b.Discards[target.Seat][target.Index],
			From:  target.Seat,
			Index: target.Index,
		}
	case target.Kind.IsAdd():
	case b.LastDiscard != nil:
		next = b.clone()
		next.LastDiscard = nil
	}
	sel := target
	e.selection = &sel
	return next, nil
}

// Pick 从牌池选一张牌填入当前位置
// 校验失败时保持 Editing，允许重新选择
func (e *Editor) Pick(b *Board, tile TileID) (*Board, error) {
	if e.selection == nil {
		return b, ErrNoSelection
	}
	sel := *e.selection
	if sel.Kind == SlotMeld {
		e.selection = nil
		return b, ErrMeldTileReadOnly
	}
	if !IsValid(tile) {
		return b, fmt.Errorf("%w: %d", ErrInvalidTile, tile)
	}
	tile = Canonical(tile)
	if err := sel.check(b); err != nil {
		e.selection = nil
		return b, err
	}
	if err := checkCapacity(b, sel); err != nil {
		return b, err
	}
	if err := CanPlace(b, e.rules, tile, sel); err != nil {
		log.Debug("placement rejected: tile=%s slot=%s: %v", tile, sel.Kind, err)
		return b, err
	}

	next := b.clone()
	switch sel.Kind {
	case SlotHand:
		next.touchHand()
		next.Hand[sel.Index] = tile
	case SlotTsumo, SlotAddTsumo:
		next.Drawn = tile
	case SlotDiscard:
		next.touchDiscards(sel.Seat)
		next.Discards[sel.Seat][sel.Index] = tile
	case SlotDora:
		next.touchDora()
		next.DoraIndicators[sel.Index] = tile
	case SlotAddHand:
		next.touchHand()
		next.Hand = append(next.Hand, tile)
	case SlotAddDiscard:
		next.touchDiscards(sel.Seat)
		next.Discards[sel.Seat] = append(next.Discards[sel.Seat], tile)
	case SlotAddDora:
		next.touchDora()
		next.DoraIndicators = append(next.DoraIndicators, tile)
	}
	next.sortHand()

	ld := next.LastDiscard
	switch {
	case sel.Kind == SlotDiscard && ld != nil && ld.From == sel.Seat && ld.Index == sel.Index:
		ld.Tile = tile
	case sel.Kind == SlotAddDiscard && sel.Seat != SeatSelf:
		next.LastDiscard = &LastDiscard{
			Tile:  tile,
			From:  sel.Seat,
			Index: len(next.Discards[sel.Seat]) - 1,
		}
	default:
		next.LastDiscard = nil
	}

	e.selection = nil
	return next, nil
}

// Remove 移除当前位置上的牌；选中副露时移除整组副露
func (e *Editor) Remove(b *Board) (*Board, error) {
	if e.selection == nil {
		return b, ErrNoSelection
	}
	sel := *e.selection
	if sel.Kind.IsAdd() {
		return b, ErrNothingToRemove
	}
	if err := sel.check(b); err != nil {
		e.selection = nil
		return b, err
	}

	next := b.clone()
	switch sel.Kind {
	case SlotHand:
		next.touchHand()
		next.Hand = removeAt(next.Hand, sel.Index)
	case SlotTsumo:
		next.Drawn = NoTile
	case SlotDiscard:
		next.touchDiscards(sel.Seat)
		next.Discards[sel.Seat] = removeAt(next.Discards[sel.Seat], sel.Index)
	case SlotDora:
		next.touchDora()
		next.DoraIndicators = removeAt(next.DoraIndicators, sel.Index)
	case SlotMeld:
		next.touchMelds(sel.Seat)
		melds := next.Melds[sel.Seat]
		next.Melds[sel.Seat] = append(melds[:sel.MeldIndex], melds[sel.MeldIndex+1:]...)
	}
	next.LastDiscard = nil
	e.selection = nil
	return next, nil
}

func checkCapacity(b *Board, sel Selection) error {
	switch sel.Kind {
	case SlotAddHand:
		if len(b.Hand) >= b.HandCapacity() {
			return fmt.Errorf("%w: hand holds at most %d tiles", ErrSlotFull, b.HandCapacity())
		}
	case SlotAddTsumo:
		if !b.CanDraw() {
			return fmt.Errorf("%w: no room for a drawn tile", ErrSlotFull)
		}
	case SlotAddDora:
		if len(b.DoraIndicators) >= MaxDoraIndicators {
			return fmt.Errorf("%w: at most %d dora indicators", ErrSlotFull, MaxDoraIndicators)
		}
	}
	return nil
}
