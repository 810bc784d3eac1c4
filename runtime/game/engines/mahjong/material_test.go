package mahjong

import "testing"

func TestNormalize_FoldsBandsAndRedFives(t *testing.T) {
	cases := []struct {
		in   TileID
		want TileID
	}{
		{Man1, Man1},
		{Man1 + RotatedOffset, Man1},
		{Man1 + SuspiciousOffset, Man1},
		{Man1 + SuspiciousOffset + RotatedOffset, Man1},
		{RedMan5, Man5},
		{RedPin5 + RotatedOffset, Pin5},
		{RedSo5 + SuspiciousOffset, So5},
		{Red, Red},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%d) expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for id := TileID(0); id < TileIDCount; id++ {
		for _, band := range []TileID{0, RotatedOffset, SuspiciousOffset, SuspiciousOffset + RotatedOffset} {
			x := id + band
			n := Normalize(x)
			if Normalize(n) != n {
				t.Fatalf("Normalize not idempotent for %d", x)
			}
			if n != Normalize(id) {
				t.Fatalf("band variant %d normalized to %d, base %d normalizes to %d", x, n, id, Normalize(id))
			}
		}
	}
}

func TestCanonical_KeepsRedIdentity(t *testing.T) {
	if got := Canonical(RedMan5 + SuspiciousOffset); got != RedMan5 {
		t.Fatalf("expected red man five, got %d", got)
	}
	if !IsRedFive(RedPin5 + RotatedOffset) {
		t.Fatalf("rotated red pin five should still be red")
	}
}

func TestSuitRankOf(t *testing.T) {
	sr, ok := SuitRankOf(Pin7)
	if !ok || sr.Suit != SuitPin || sr.Rank != 7 {
		t.Fatalf("Pin7 expected (p,7), got %+v ok=%v", sr, ok)
	}
	sr, ok = SuitRankOf(RedSo5)
	if !ok || sr.Suit != SuitSo || sr.Rank != 5 {
		t.Fatalf("RedSo5 expected (s,5), got %+v ok=%v", sr, ok)
	}
	for _, h := range []TileID{East, North, White, Red} {
		if _, ok := SuitRankOf(h); ok {
			t.Fatalf("honor %d should have no suit rank", h)
		}
	}
	if _, ok := SuitRankOf(TileID(37)); ok {
		t.Fatalf("id 37 is out of range")
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(RedSo5) || !IsValid(Man1+SuspiciousOffset) {
		t.Fatalf("expected valid ids")
	}
	if IsValid(TileID(37)) || IsValid(NoTile) || IsValid(TileID(137)) {
		t.Fatalf("expected invalid ids")
	}
}

func TestTileString(t *testing.T) {
	cases := map[TileID]string{
		Man1:    "1m",
		Pin9:    "9p",
		So5:     "5s",
		RedMan5: "0m",
		East:    "E",
		Red:     "C",
		NoTile:  "-",
	}
	for id, want := range cases {
		if got := id.String(); got != want {
			t.Fatalf("%d expected %q, got %q", int(id), want, got)
		}
	}
}

func TestPlayerWindsFollowSelfWind(t *testing.T) {
	b := NewBoard()
	b.SelfWind = West
	winds := b.PlayerWinds()
	want := [4]TileID{West, North, East, South}
	if winds != want {
		t.Fatalf("expected %v, got %v", want, winds)
	}
}

func TestBoardMetadataEdits(t *testing.T) {
	b := NewBoard()
	b.Turn = MaxTurn
	if next := b.AdvanceTurn(); next.Turn != 1 || b.Turn != MaxTurn {
		t.Fatalf("turn should wrap to 1 without touching the old board, got %d/%d", next.Turn, b.Turn)
	}
	if next := b.ToggleRoundWind(); next.RoundWind != South {
		t.Fatalf("expected south round, got %s", next.RoundWind)
	}
	w := b
	for i := 0; i < 4; i++ {
		w = w.RotateSelfWind()
	}
	if w.SelfWind != East {
		t.Fatalf("four rotations should return to east, got %s", w.SelfWind)
	}
}
