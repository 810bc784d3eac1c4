package mahjong

import (
	"errors"
	"slices"
	"testing"
)

func TestEditor_PickOnIdleIsRejected(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := NewBoard()
	next, err := e.Pick(b, Man1)
	if !errors.Is(err, ErrNoSelection) || next != b {
		t.Fatalf("expected ErrNoSelection and untouched board, got %v", err)
	}
}

func TestEditor_AddHandThenIdle(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man9)

	b, err := e.Click(b, Selection{Kind: SlotAddHand})
	if err != nil || !e.Editing() {
		t.Fatalf("click add_hand: err=%v editing=%v", err, e.Editing())
	}
	b, err = e.Pick(b, Man2)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if e.Editing() {
		t.Fatalf("expected idle after pick")
	}
	if !slices.Equal(b.Hand, []TileID{Man2, Man9}) {
		t.Fatalf("expected sorted hand [1 8], got %v", b.Hand)
	}
}

func TestEditor_RejectedPickKeepsSelection(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man2)
	b.Discards[SeatToimen] = []TileID{RedMan5}
	before := b.Copy()

	b, _ = e.Click(b, Selection{Kind: SlotHand, Index: 0})
	next, err := e.Pick(b, RedMan5)
	if !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	if !e.Editing() {
		t.Fatalf("selection should stay active after a rejected pick")
	}
	if !slices.Equal(next.Hand, before.Hand) || !slices.Equal(next.Discards[SeatToimen], before.Discards[SeatToimen]) {
		t.Fatalf("board mutated by rejected pick: %v", next.Hand)
	}

	next, err = e.Pick(next, Man3)
	if err != nil {
		t.Fatalf("retry pick: %v", err)
	}
	if !slices.Equal(next.Hand, []TileID{Man2, Man3}) {
		t.Fatalf("expected [1 2], got %v", next.Hand)
	}
}

func TestEditor_ReclickDeselects(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man2)
	sel := Selection{Kind: SlotHand, Index: 1}

	b, _ = e.Click(b, sel)
	next, err := e.Click(b, sel)
	if err != nil || e.Editing() {
		t.Fatalf("re-click should deselect, err=%v", err)
	}
	if !slices.Equal(next.Hand, b.Hand) {
		t.Fatalf("deselect must not mutate")
	}
}

func TestEditor_ReclickSelfMeldBreaks(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man2)
	b.Melds[SeatSelf] = []Meld{ClassifyMeld([]TileID{East, East, East})}
	b.Melds[SeatSelf][0].From = SeatSelf

	b, _ = e.Click(b, Selection{Kind: SlotMeld, Seat: SeatSelf, MeldIndex: 0, Index: 0})
	next, err := e.Click(b, Selection{Kind: SlotMeld, Seat: SeatSelf, MeldIndex: 0, Index: 2})
	if err != nil {
		t.Fatalf("break via re-click: %v", err)
	}
	if e.Editing() || len(next.Melds[SeatSelf]) != 0 {
		t.Fatalf("expected idle and no melds, got %d melds", len(next.Melds[SeatSelf]))
	}
	if !slices.Equal(next.Hand, []TileID{Man1, Man2, East, East, East}) {
		t.Fatalf("unexpected hand %v", next.Hand)
	}
}

func TestEditor_MeldTileIsReadOnly(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := NewBoard()
	b.Melds[SeatToimen] = []Meld{ClassifyMeld([]TileID{Pin1, Pin2, Pin3})}

	b, _ = e.Click(b, Selection{Kind: SlotMeld, Seat: SeatToimen, MeldIndex: 0, Index: 1})
	if _, err := e.Pick(b, Pin4); !errors.Is(err, ErrMeldTileReadOnly) {
		t.Fatalf("expected ErrMeldTileReadOnly, got %v", err)
	}
	if e.Editing() {
		t.Fatalf("expected idle after rejected meld edit")
	}
}

func TestEditor_OpponentDiscardArmsLastDiscard(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man1)
	b.Discards[SeatKamicha] = []TileID{Pin9, Man1}

	b, _ = e.Click(b, Selection{Kind: SlotDiscard, Seat: SeatKamicha, Index: 1})
	if b.LastDiscard == nil || b.LastDiscard.Tile != Man1 || b.LastDiscard.From != SeatKamicha || b.LastDiscard.Index != 1 {
		t.Fatalf("expected lastDiscard on kamicha[1], got %+v", b.LastDiscard)
	}

	// editing the pending discard's own slot keeps the call pending with the new tile
	b, err := e.Pick(b, Man2)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if b.LastDiscard == nil || b.LastDiscard.Tile != Man2 {
		t.Fatalf("expected lastDiscard to follow the edit, got %+v", b.LastDiscard)
	}

	// any other edit drops it
	b, _ = e.Click(b, Selection{Kind: SlotHand, Index: 0})
	if b.LastDiscard != nil {
		t.Fatalf("selecting a hand slot should clear lastDiscard")
	}
}

func TestEditor_AddOpponentDiscardBecomesPending(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := NewBoard()

	b, _ = e.Click(b, Selection{Kind: SlotAddDiscard, Seat: SeatToimen})
	b, err := e.Pick(b, Green)
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if b.LastDiscard == nil || b.LastDiscard.From != SeatToimen || b.LastDiscard.Tile != Green || b.LastDiscard.Index != 0 {
		t.Fatalf("expected pending toimen discard, got %+v", b.LastDiscard)
	}

	b, _ = e.Click(b, Selection{Kind: SlotAddDiscard, Seat: SeatSelf})
	b, _ = e.Pick(b, Man1)
	if b.LastDiscard != nil {
		t.Fatalf("own discard cannot be called, got %+v", b.LastDiscard)
	}
}

func TestEditor_Remove(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man2, Man3)
	b.Drawn = Pin1

	b, _ = e.Click(b, Selection{Kind: SlotTsumo})
	b, err := e.Remove(b)
	if err != nil || b.HasDrawn() {
		t.Fatalf("expected drawn tile removed, err=%v", err)
	}

	b, _ = e.Click(b, Selection{Kind: SlotHand, Index: 1})
	b, _ = e.Remove(b)
	if !slices.Equal(b.Hand, []TileID{Man1, Man3}) {
		t.Fatalf("unexpected hand %v", b.Hand)
	}

	b, _ = e.Click(b, Selection{Kind: SlotAddDora})
	if _, err := e.Remove(b); !errors.Is(err, ErrNothingToRemove) {
		t.Fatalf("expected ErrNothingToRemove, got %v", err)
	}
}

func TestEditor_HandCapacity(t *testing.T) {
	e := NewEditor(DefaultRules)
	b := boardWithHand(Man1, Man2, Man3, Man4, Man6, Man7, Man8, Man9, Pin1, Pin2)
	b.Melds[SeatSelf] = []Meld{ClassifyMeld([]TileID{East, East, East})}

	b, _ = e.Click(b, Selection{Kind: SlotAddHand})
	if _, err := e.Pick(b, Pin3); !errors.Is(err, ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull with 10 tiles and one meld, got %v", err)
	}

	e.Deselect()
	b, _ = e.Click(b, Selection{Kind: SlotAddTsumo})
	b, err := e.Pick(b, Pin3)
	if err != nil || b.Drawn != Pin3 {
		t.Fatalf("drawn slot should accept a tile, err=%v", err)
	}
}

func TestEditor_StaleSelection(t *testing.T) {
	e := NewEditor(DefaultRules)
	if _, err := e.Click(NewBoard(), Selection{Kind: SlotHand, Index: 3}); !errors.Is(err, ErrSlotMismatch) {
		t.Fatalf("expected ErrSlotMismatch, got %v", err)
	}
}
