package mahjong

import (
	"errors"
	"slices"
	"testing"
)

func sortedCopy(tiles []TileID) []TileID {
	out := slices.Clone(tiles)
	slices.Sort(out)
	return out
}

func TestCommit_PonThenBreakRoundTrip(t *testing.T) {
	b := boardWithHand(Man1, Man1, Pin5, Pin6, So8)
	b.Discards[SeatToimen] = []TileID{Pin9, Man1}
	b.LastDiscard = &LastDiscard{Tile: Man1, From: SeatToimen, Index: 1}
	beforeHand := sortedCopy(b.Hand)
	beforePile := slices.Clone(b.Discards[SeatToimen])

	var pon Candidate
	for _, c := range FindCandidates(b) {
		if c.Type == CandidatePon {
			pon = c
		}
	}
	committed, err := Commit(b, pon)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(committed.Melds[SeatSelf]) != 1 || committed.LastDiscard != nil {
		t.Fatalf("expected one meld and cleared lastDiscard")
	}
	m := committed.Melds[SeatSelf][0]
	if m.Type != MeldPon || m.ExposedIndex != 1 || m.From != SeatToimen {
		t.Fatalf("unexpected meld %+v", m)
	}
	if !slices.Equal(committed.Discards[SeatToimen], []TileID{Pin9}) {
		t.Fatalf("called tile should leave the toimen pile, got %v", committed.Discards[SeatToimen])
	}
	if !slices.Equal(b.Hand, beforeHand) {
		t.Fatalf("commit mutated the original board")
	}

	broken, err := Break(committed, SeatSelf, 0)
	if err != nil {
		t.Fatalf("break: %v", err)
	}
	if len(broken.Melds[SeatSelf]) != 0 {
		t.Fatalf("meld should be removed")
	}
	if !slices.Equal(sortedCopy(broken.Hand), beforeHand) {
		t.Fatalf("expected hand %v after round trip, got %v", beforeHand, broken.Hand)
	}
	if !slices.Equal(broken.Discards[SeatToimen], beforePile) {
		t.Fatalf("expected pile %v after round trip, got %v", beforePile, broken.Discards[SeatToimen])
	}
}

func TestCommit_ExposedIndexByDonor(t *testing.T) {
	cases := map[Seat]int{SeatKamicha: 0, SeatToimen: 1, SeatShimocha: 2}
	for donor, want := range cases {
		b := boardWithHand(Red, Red, Man1)
		b.Discards[donor] = []TileID{Red}
		c := Candidate{Type: CandidatePon, Tiles: []TileID{Red, Red}, From: donor, CalledTile: Red, MeldIndex: -1}
		next, err := Commit(b, c)
		if err != nil {
			t.Fatalf("commit from %s: %v", donor, err)
		}
		if got := next.Melds[SeatSelf][0].ExposedIndex; got != want {
			t.Fatalf("donor %s expected exposed index %d, got %d", donor, want, got)
		}
	}
}

func TestCommit_ChiExposedIsCalledPosition(t *testing.T) {
	b := boardWithHand(Man3, Man4, Pin1)
	b.Discards[SeatKamicha] = []TileID{RedMan5}
	c := Candidate{Type: CandidateChi, Tiles: []TileID{Man3, Man4}, From: SeatKamicha, CalledTile: RedMan5, MeldIndex: -1}

	next, err := Commit(b, c)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	m := next.Melds[SeatSelf][0]
	if m.Type != MeldChi || !slices.Equal(m.Tiles, []TileID{Man3, Man4, RedMan5}) || m.ExposedIndex != 2 {
		t.Fatalf("unexpected chi %+v", m)
	}
	if !slices.Equal(next.Hand, []TileID{Pin1}) {
		t.Fatalf("unexpected hand %v", next.Hand)
	}
}

func TestCommit_MissingTileIsSlotMismatch(t *testing.T) {
	b := boardWithHand(Man1)
	b.Discards[SeatToimen] = []TileID{Man1}
	c := Candidate{Type: CandidatePon, Tiles: []TileID{Man1, Man1}, From: SeatToimen, CalledTile: Man1, MeldIndex: -1}

	next, err := Commit(b, c)
	if !errors.Is(err, ErrSlotMismatch) {
		t.Fatalf("expected ErrSlotMismatch, got %v", err)
	}
	if next != b || len(b.Hand) != 1 {
		t.Fatalf("failed commit must leave the board untouched")
	}
}

func TestCommit_MissingDiscardIsSlotMismatch(t *testing.T) {
	b := boardWithHand(Man1, Man1)
	c := Candidate{Type: CandidatePon, Tiles: []TileID{Man1, Man1}, From: SeatToimen, CalledTile: Man1, MeldIndex: -1}
	if _, err := Commit(b, c); !errors.Is(err, ErrSlotMismatch) {
		t.Fatalf("expected ErrSlotMismatch, got %v", err)
	}
}

func TestCommit_CalledTileTakesMostRecentCopy(t *testing.T) {
	b := boardWithHand(Pin2, Pin2)
	b.Discards[SeatShimocha] = []TileID{Pin2, Man9, Pin2, Man8}
	c := Candidate{Type: CandidatePon, Tiles: []TileID{Pin2, Pin2}, From: SeatShimocha, CalledTile: Pin2, MeldIndex: -1}

	next, err := Commit(b, c)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !slices.Equal(next.Discards[SeatShimocha], []TileID{Pin2, Man9, Man8}) {
		t.Fatalf("expected the later 2p removed, got %v", next.Discards[SeatShimocha])
	}
}

func TestCommit_AnkanUsesDrawnTile(t *testing.T) {
	b := boardWithHand(North, North, North, Man1)
	b.Drawn = North

	cs := FindCandidates(b)
	if len(cs) != 1 {
		t.Fatalf("expected one ankan, got %+v", cs)
	}
	next, err := Commit(b, cs[0])
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	m := next.Melds[SeatSelf][0]
	if m.Type != MeldAnkan || m.From != SeatSelf || m.ExposedIndex != -1 || len(m.Tiles) != 4 {
		t.Fatalf("unexpected ankan %+v", m)
	}
	if next.HasDrawn() || !slices.Equal(next.Hand, []TileID{Man1}) {
		t.Fatalf("expected hand [0] and no drawn tile, got %v drawn=%s", next.Hand, next.Drawn)
	}
}

func TestCommit_DaiminkanFromEachDonor(t *testing.T) {
	cases := []struct {
		donor   Seat
		exposed int
	}{
		{SeatKamicha, 0},
		{SeatToimen, 1},
		{SeatShimocha, 2},
	}
	for _, c := range cases {
		b := boardWithHand(Pin7, Pin7, Pin7, Man1)
		b.Discards[c.donor] = []TileID{Man9, Pin7, So1}
		beforeHand := sortedCopy(b.Hand)
		beforePile := slices.Clone(b.Discards[c.donor])

		kan := Candidate{Type: CandidateDaiminkan, Tiles: []TileID{Pin7, Pin7, Pin7}, From: c.donor, CalledTile: Pin7, MeldIndex: -1}
		next, err := Commit(b, kan)
		if err != nil {
			t.Fatalf("%s: commit: %v", c.donor, err)
		}
		m := next.Melds[SeatSelf][0]
		if m.Type != MeldMinkan || !slices.Equal(m.Tiles, []TileID{Pin7, Pin7, Pin7, Pin7}) || m.From != c.donor {
			t.Fatalf("%s: unexpected meld %+v", c.donor, m)
		}
		if m.ExposedIndex != c.exposed {
			t.Fatalf("%s: expected exposed index %d, got %d", c.donor, c.exposed, m.ExposedIndex)
		}
		if !slices.Equal(next.Discards[c.donor], []TileID{Man9, So1}) {
			t.Fatalf("%s: donor pile should lose one tile, got %v", c.donor, next.Discards[c.donor])
		}
		if !slices.Equal(next.Hand, []TileID{Man1}) {
			t.Fatalf("%s: expected hand [0], got %v", c.donor, next.Hand)
		}
		if block := meldBlockOf(m); block.Type != calcMeldMinkan || block.DiscardedTile != Pin7 || len(block.Tiles) != 4 {
			t.Fatalf("%s: unexpected calc block %+v", c.donor, block)
		}

		broken, err := Break(next, SeatSelf, 0)
		if err != nil {
			t.Fatalf("%s: break: %v", c.donor, err)
		}
		if !slices.Equal(sortedCopy(broken.Hand), beforeHand) {
			t.Fatalf("%s: expected hand %v, got %v", c.donor, beforeHand, broken.Hand)
		}
		if !slices.Equal(broken.Discards[c.donor], beforePile) {
			t.Fatalf("%s: expected pile %v, got %v", c.donor, beforePile, broken.Discards[c.donor])
		}
	}
}

func TestBreak_CalledTileReturnsToItsSlot(t *testing.T) {
	b := boardWithHand(Pin2, Pin2, So5)
	b.Discards[SeatKamicha] = []TileID{Pin2, Man9, Pin2, Man8}
	beforePile := slices.Clone(b.Discards[SeatKamicha])

	pon := Candidate{Type: CandidatePon, Tiles: []TileID{Pin2, Pin2}, From: SeatKamicha, CalledTile: Pin2, MeldIndex: -1}
	next, err := Commit(b, pon)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if m := next.Melds[SeatSelf][0]; m.CalledIndex != 2 {
		t.Fatalf("expected the most recent copy at 2 to be called, got %d", m.CalledIndex)
	}
	if !slices.Equal(next.Discards[SeatKamicha], []TileID{Pin2, Man9, Man8}) {
		t.Fatalf("unexpected pile after call %v", next.Discards[SeatKamicha])
	}

	broken, err := Break(next, SeatSelf, 0)
	if err != nil {
		t.Fatalf("break: %v", err)
	}
	if !slices.Equal(broken.Discards[SeatKamicha], beforePile) {
		t.Fatalf("expected pile %v restored in place, got %v", beforePile, broken.Discards[SeatKamicha])
	}
}

func TestCommit_KakanUpgradesPon(t *testing.T) {
	b := boardWithHand(Man1, Man2)
	b.Drawn = Green
	pon := ClassifyMeld([]TileID{Green, Green, Green})
	pon.From = SeatKamicha
	pon.ExposedIndex = 0
	pon.CalledTile = Green
	b.Melds[SeatSelf] = []Meld{pon}

	cs := FindCandidates(b)
	if len(cs) != 1 || cs[0].Type != CandidateKakan {
		t.Fatalf("expected one kakan, got %+v", cs)
	}
	next, err := Commit(b, cs[0])
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	m := next.Melds[SeatSelf][0]
	if m.Type != MeldMinkan || len(m.Tiles) != 4 || m.AddedTile != Green {
		t.Fatalf("unexpected meld after kakan %+v", m)
	}
	if len(b.Melds[SeatSelf][0].Tiles) != 3 {
		t.Fatalf("kakan mutated the original meld")
	}
}

func TestBreak_NonSelfUnsupported(t *testing.T) {
	b := NewBoard()
	b.Melds[SeatToimen] = []Meld{ClassifyMeld([]TileID{Pin1, Pin2, Pin3})}
	next, err := Break(b, SeatToimen, 0)
	if !errors.Is(err, ErrUnsupportedMeldBreak) || next != b {
		t.Fatalf("expected ErrUnsupportedMeldBreak, got %v", err)
	}
}

func TestBreak_FoldsDrawnTile(t *testing.T) {
	b := boardWithHand(Man1)
	b.Drawn = Man2
	m := ClassifyMeld([]TileID{So7, So8, So9})
	m.From = SeatSelf
	b.Melds[SeatSelf] = []Meld{m}

	next, err := Break(b, SeatSelf, 0)
	if err != nil {
		t.Fatalf("break: %v", err)
	}
	if next.HasDrawn() || !slices.Equal(next.Hand, []TileID{Man1, Man2, So7, So8, So9}) {
		t.Fatalf("unexpected hand %v drawn=%s", next.Hand, next.Drawn)
	}
}
