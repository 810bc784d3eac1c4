package mahjong

import (
	"slices"
	"testing"
)

func countType(cs []Candidate, typ CandidateType) int {
	n := 0
	for _, c := range cs {
		if c.Type == typ {
			n++
		}
	}
	return n
}

func TestFindCandidates_PonWithoutCrossSuitChi(t *testing.T) {
	b := boardWithHand(Man1, Man1, Pin5, Pin6, So8)
	b.Discards[SeatKamicha] = []TileID{Man1}
	b.LastDiscard = &LastDiscard{Tile: Man1, From: SeatKamicha, Index: 0}

	cs := FindCandidates(b)
	if countType(cs, CandidatePon) != 1 {
		t.Fatalf("expected exactly one pon, got %+v", cs)
	}
	for _, c := range cs {
		if c.Type == CandidatePon && !slices.Equal(c.Tiles, []TileID{Man1, Man1}) {
			t.Fatalf("pon should use the two 1m, got %v", c.Tiles)
		}
	}
	if n := countType(cs, CandidateChi); n != 0 {
		t.Fatalf("expected no chi, got %d", n)
	}
}

func TestFindCandidates_DeclarativeAnkan(t *testing.T) {
	b := boardWithHand(East, East, East, Man1, Man2)
	b.Drawn = East

	cs := FindCandidates(b)
	if len(cs) != 1 || cs[0].Type != CandidateAnkan {
		t.Fatalf("expected exactly one ankan, got %+v", cs)
	}
	if len(cs[0].Tiles) != 4 || Normalize(cs[0].Tiles[0]) != East {
		t.Fatalf("ankan should take the four easts, got %v", cs[0].Tiles)
	}
}

func TestFindCandidates_ChiWindows(t *testing.T) {
	b := boardWithHand(So2, So3, So5, So6, RedSo5)
	b.LastDiscard = &LastDiscard{Tile: So4, From: SeatKamicha}

	cs := FindCandidates(b)
	// (2,3) (3,5) (3,0) (5,6) (0,6)
	if n := countType(cs, CandidateChi); n != 5 {
		t.Fatalf("expected 5 chi candidates, got %d: %+v", n, cs)
	}
}

func TestFindCandidates_ChiOnlyFromKamicha(t *testing.T) {
	b := boardWithHand(So2, So3)
	b.LastDiscard = &LastDiscard{Tile: So4, From: SeatToimen}
	if cs := FindCandidates(b); len(cs) != 0 {
		t.Fatalf("chi from toimen is not allowed, got %+v", cs)
	}
}

func TestFindCandidates_HonorNeverChi(t *testing.T) {
	b := boardWithHand(East, South)
	b.LastDiscard = &LastDiscard{Tile: West, From: SeatKamicha}
	if cs := FindCandidates(b); len(cs) != 0 {
		t.Fatalf("honors never form chi, got %+v", cs)
	}
}

func TestFindCandidates_DedupIdenticalCopies(t *testing.T) {
	b := boardWithHand(Pin5, Pin5, RedPin5)
	b.LastDiscard = &LastDiscard{Tile: Pin5, From: SeatToimen}

	cs := FindCandidates(b)
	// pon: {5,5} {5,0}; daiminkan: {5,5,0}
	if countType(cs, CandidatePon) != 2 || countType(cs, CandidateDaiminkan) != 1 {
		t.Fatalf("unexpected candidates %+v", cs)
	}
}

func TestFindCandidates_Kakan(t *testing.T) {
	b := boardWithHand(Man1, Man2)
	b.Drawn = White
	pon := ClassifyMeld([]TileID{White, White, White})
	pon.From = SeatToimen
	b.Melds[SeatSelf] = []Meld{ClassifyMeld([]TileID{Pin1, Pin2, Pin3}), pon}

	cs := FindCandidates(b)
	if len(cs) != 1 || cs[0].Type != CandidateKakan || cs[0].MeldIndex != 1 || cs[0].Tiles[0] != White {
		t.Fatalf("expected kakan on meld 1, got %+v", cs)
	}
}

func TestFindCandidates_EmptyBoard(t *testing.T) {
	if cs := FindCandidates(NewBoard()); len(cs) != 0 {
		t.Fatalf("expected no candidates, got %+v", cs)
	}
}
